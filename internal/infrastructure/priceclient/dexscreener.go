package priceclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lendboard/internal/app/port"
	"lendboard/internal/config"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var stablecoinSymbols = map[string]struct{}{
	"USDC": {},
	"USDT": {},
	"DAI":  {},
}

// dexScreenerClientImpl implements port.PriceOracle over the DEX Screener token pairs endpoint.
type dexScreenerClientImpl struct {
	client              *fasthttp.Client
	baseURL             string
	chainID             string
	addresses           map[string]string // tracked symbol -> token address
	timeout             time.Duration
	logger              *zap.Logger
	maxTokensPerRequest int
}

// NewDEXScreenerClient creates a DEX Screener price oracle.
func NewDEXScreenerClient(cfg config.DEXScreenerConfig, timeout time.Duration, logger *zap.Logger) port.PriceOracle {
	return &dexScreenerClientImpl{
		client:              &fasthttp.Client{},
		baseURL:             strings.TrimRight(cfg.BaseURL, "/"),
		chainID:             cfg.ChainID,
		addresses:           cfg.TokenAddresses,
		timeout:             timeout,
		logger:              logger.Named("DEXScreenerClient"),
		maxTokensPerRequest: cfg.MaxTokensPerRequest,
	}
}

// GetTokenPairsByAddresses returns every pair DEX Screener lists for the given tokens.
func (c *dexScreenerClientImpl) GetTokenPairsByAddresses(ctx context.Context, tokenAddresses []string) ([]PairData, error) {
	if len(tokenAddresses) == 0 {
		return nil, fmt.Errorf("tokenAddresses cannot be empty")
	}
	if c.maxTokensPerRequest > 0 && len(tokenAddresses) > c.maxTokensPerRequest {
		c.logger.Warn("Number of token addresses exceeds maxTokensPerRequest",
			zap.Int("requestedCount", len(tokenAddresses)),
			zap.Int("maxAllowed", c.maxTokensPerRequest))
		return nil, fmt.Errorf("number of token addresses (%d) exceeds max tokens per request (%d)", len(tokenAddresses), c.maxTokensPerRequest)
	}

	requestURL := fmt.Sprintf("%s/tokens/v1/%s/%s", c.baseURL, c.chainID, strings.Join(tokenAddresses, ","))

	var raw jsoniter.RawMessage
	if err := getJSON(ctx, c.client, c.timeout, requestURL, nil, c.logger, &raw); err != nil {
		return nil, err
	}

	var wrapped DEXTokenPair
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Pairs != nil {
		return wrapped.Pairs, nil
	}
	var direct []PairData
	if err := json.Unmarshal(raw, &direct); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DEX Screener response from %s: %w", requestURL, err)
	}
	if len(direct) == 0 {
		c.logger.Warn("DEXScreener returned 200 OK with an empty array of pairs", zap.String("url", requestURL))
	}
	return direct, nil
}

// FetchPrices picks the best pair for every tracked token. One unpriced token fails the whole fetch.
func (c *dexScreenerClientImpl) FetchPrices(ctx context.Context) (entity.PriceTable, error) {
	addresses := make([]string, 0, len(entity.TrackedSymbols))
	for _, sym := range entity.TrackedSymbols {
		addr, ok := c.addresses[sym]
		if !ok || addr == "" {
			return nil, fmt.Errorf("%w: no DEX Screener token address for %s", entity.ErrPriceFetch, sym)
		}
		addresses = append(addresses, addr)
	}

	var pairs []PairData
	for _, batch := range utils.BatchStrings(addresses, c.maxTokensPerRequest) {
		batchPairs, err := c.GetTokenPairsByAddresses(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrPriceFetch, err)
		}
		pairs = append(pairs, batchPairs...)
	}

	prices := make(entity.PriceTable, len(entity.TrackedSymbols))
	for _, sym := range entity.TrackedSymbols {
		priceStr := c.selectBestPriceFromPairs(pairs, c.addresses[sym])
		if priceStr == "" {
			return nil, fmt.Errorf("%w: no suitable DEX Screener pair for %s", entity.ErrPriceFetch, sym)
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: unparseable price %q for %s", entity.ErrPriceFetch, priceStr, sym)
		}
		if !entity.ValidPrice(price) {
			return nil, fmt.Errorf("%w: invalid price %q for %s", entity.ErrPriceFetch, priceStr, sym)
		}
		prices[sym] = price
	}
	return prices, nil
}

// selectBestPriceFromPairs selects the PriceUsd of the best pair for baseTokenAddress.
// Priority: stablecoin quote with the highest liquidity, then the highest liquidity overall.
func (c *dexScreenerClientImpl) selectBestPriceFromPairs(pairs []PairData, baseTokenAddress string) string {
	var bestOverallPair *PairData
	var bestStablecoinPair *PairData

	for i := range pairs {
		pair := &pairs[i]
		if !sameToken(pair.BaseToken.Address, baseTokenAddress) {
			continue
		}
		if pair.PriceUsd == "" || pair.PriceUsd == "0" {
			continue
		}

		if _, isStablecoin := stablecoinSymbols[strings.ToUpper(pair.QuoteToken.Symbol)]; isStablecoin {
			if bestStablecoinPair == nil || liquidityUSD(pair) > liquidityUSD(bestStablecoinPair) {
				bestStablecoinPair = pair
			}
		}
		if bestOverallPair == nil || liquidityUSD(pair) > liquidityUSD(bestOverallPair) {
			bestOverallPair = pair
		}
	}

	best := bestStablecoinPair
	if best == nil {
		best = bestOverallPair
	}
	if best == nil {
		c.logger.Warn("No suitable price found from pairs",
			zap.String("baseTokenAddress", baseTokenAddress),
			zap.Int("evaluatedPairCount", len(pairs)))
		return ""
	}

	c.logger.Debug("Selected best price",
		zap.String("baseTokenAddress", baseTokenAddress),
		zap.String("pairAddress", best.PairAddress),
		zap.String("priceUsd", best.PriceUsd),
		zap.Float64("liquidityUsd", liquidityUSD(best)),
		zap.String("quoteToken", best.QuoteToken.Symbol),
		zap.Bool("stablecoinQuote", best == bestStablecoinPair))
	return best.PriceUsd
}

func liquidityUSD(p *PairData) float64 {
	return utils.SafeDerefFloat64(p.Liquidity, func(l DEXLiquidity) float64 { return l.Usd })
}

// sameToken compares two Starknet addresses regardless of zero padding and case.
func sameToken(a, b string) bool {
	na, errA := utils.NormalizeAddress(a)
	nb, errB := utils.NormalizeAddress(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(a, b)
	}
	return na == nb
}
