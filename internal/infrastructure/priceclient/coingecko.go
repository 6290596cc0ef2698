package priceclient

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"lendboard/internal/app/port"
	"lendboard/internal/config"
	"lendboard/internal/domain/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const coinGeckoAPIKeyHeader = "x-cg-demo-api-key"

// coinGeckoClientImpl implements port.PriceOracle over the CoinGecko simple/price endpoint.
type coinGeckoClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	ids     map[string]string // tracked symbol -> coin id
	timeout time.Duration
	logger  *zap.Logger
}

// NewCoinGeckoClient creates a CoinGecko price oracle.
func NewCoinGeckoClient(cfg config.CoinGeckoConfig, timeout time.Duration, logger *zap.Logger) port.PriceOracle {
	return &coinGeckoClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		ids:     cfg.IDs,
		timeout: timeout,
		logger:  logger.Named("CoinGeckoClient"),
	}
}

// FetchPrices requests every tracked coin in one call. Any missing or negative price fails the whole fetch.
func (c *coinGeckoClientImpl) FetchPrices(ctx context.Context) (entity.PriceTable, error) {
	ids := make([]string, 0, len(entity.TrackedSymbols))
	for _, sym := range entity.TrackedSymbols {
		id, ok := c.ids[sym]
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: no CoinGecko id for %s", entity.ErrPriceFetch, sym)
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	requestURL := c.baseURL + "/simple/price?" + q.Encode()

	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{coinGeckoAPIKeyHeader: c.apiKey}
	}

	var body map[string]map[string]float64
	if err := getJSON(ctx, c.client, c.timeout, requestURL, headers, c.logger, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrPriceFetch, err)
	}

	prices := make(entity.PriceTable, len(entity.TrackedSymbols))
	for _, sym := range entity.TrackedSymbols {
		quote, ok := body[c.ids[sym]]["usd"]
		if !ok {
			return nil, fmt.Errorf("%w: CoinGecko response has no usd price for %s", entity.ErrPriceFetch, c.ids[sym])
		}
		if !entity.ValidPrice(quote) {
			return nil, fmt.Errorf("%w: invalid price %v for %s", entity.ErrPriceFetch, quote, sym)
		}
		prices[sym] = quote
	}

	c.logger.Debug("Fetched prices from CoinGecko", zap.Any("prices", prices))
	return prices, nil
}
