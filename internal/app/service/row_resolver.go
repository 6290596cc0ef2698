package service

import (
	"fmt"
	"strings"
	"time"

	"lendboard/internal/app/port"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/metrics"
	"lendboard/internal/pkg/utils"
)

// TimestampLayout is the display format of transaction timestamps (UTC).
const TimestampLayout = "Jan 02, 2006 15:04"

// PriceView is the slice of price state the resolver needs.
type PriceView struct {
	State  entity.FetchState
	Prices entity.PriceTable
}

// PriceViewOf derives a PriceView from a price fetch status.
func PriceViewOf(s entity.FetchStatus[entity.PriceTable]) PriceView {
	return PriceView{State: s.State, Prices: s.Value}
}

// RowResolver turns raw on-chain rows into display rows.
type RowResolver struct {
	registry         port.TokenRegistry
	fallbackDecimals uint8
	explorerHost     string
	logger           port.Logger
}

// NewRowResolver creates a RowResolver. fallbackDecimals applies to tokens missing from the registry.
func NewRowResolver(registry port.TokenRegistry, fallbackDecimals uint8, explorerHost string, l port.Logger) *RowResolver {
	return &RowResolver{
		registry:         registry,
		fallbackDecimals: fallbackDecimals,
		explorerHost:     strings.TrimRight(strings.TrimPrefix(strings.TrimPrefix(explorerHost, "https://"), "http://"), "/"),
		logger:           l,
	}
}

// Resolve enriches one raw row. It never fails: each problem only degrades its own field.
func (r *RowResolver) Resolve(raw entity.RawRow, prices PriceView) entity.ResolvedRow {
	var row entity.ResolvedRow

	token, resolved := r.resolveToken(raw.TokenID())
	decimals := r.fallbackDecimals
	if resolved {
		row.DisplaySymbol = token.Symbol
		row.Icon = token.Icon
		row.TokenAddress = token.Address
		decimals = token.Decimals
	}

	quantity := utils.ToQuantity(raw.RawAmount(), decimals)
	row.FormattedQuantity = quantity.StringFixed(utils.DisplayPlaces)

	switch {
	case prices.State == entity.FetchFailed:
		row.FormattedUSDValue = entity.PriceFailureMarker
		row.Valuation = entity.ValuationPriceFailed
	case !resolved:
		row.Valuation = entity.ValuationTokenUnresolved
	case prices.State == entity.FetchPending:
		row.Valuation = entity.ValuationPricePending
	default:
		price, ok := prices.Prices[strings.ToLower(token.Symbol)]
		if !ok || !entity.ValidPrice(price) {
			row.Valuation = entity.ValuationNoPrice
			break
		}
		row.FormattedUSDValue = utils.FormatUSDValue(quantity, price)
		row.Valuation = entity.ValuationOK
	}

	switch v := raw.(type) {
	case entity.RawTransactionRow:
		row.Transaction = &entity.TransactionDetail{
			TypeLabel:   TransactionTypeLabel(v.TransactionType),
			Timestamp:   FormatTimestamp(v.Timestamp),
			ExplorerURL: r.explorerURL(v.TxHash),
		}
	case entity.RawDepositRow:
	}
	return row
}

// ResolveDeposits resolves a page of deposit rows.
func (r *RowResolver) ResolveDeposits(rows []entity.RawDepositRow, prices PriceView) []entity.ResolvedRow {
	out := make([]entity.ResolvedRow, 0, len(rows))
	for _, raw := range rows {
		out = append(out, r.Resolve(raw, prices))
	}
	return out
}

// ResolveTransactions resolves a page of transaction rows.
func (r *RowResolver) ResolveTransactions(rows []entity.RawTransactionRow, prices PriceView) []entity.ResolvedRow {
	out := make([]entity.ResolvedRow, 0, len(rows))
	for _, raw := range rows {
		out = append(out, r.Resolve(raw, prices))
	}
	return out
}

func (r *RowResolver) resolveToken(raw string) (entity.TokenInfo, bool) {
	token, ok, err := r.registry.Resolve(raw)
	if err != nil {
		metrics.TokenResolutionFailures.Inc()
		r.logger.Error("Error converting token to hex", "token", raw, "error", err)
		return entity.TokenInfo{}, false
	}
	if !ok {
		r.logger.Debug("Token not found in registry", "token", raw)
	}
	return token, ok
}

func (r *RowResolver) explorerURL(txHash string) string {
	hash, err := utils.NormalizeAddress(txHash)
	if err != nil {
		r.logger.Warn("Failed to encode transaction hash", "tx_hash", txHash, "error", err)
		return ""
	}
	return fmt.Sprintf("https://%s/tx/%s", r.explorerHost, hash)
}

// FormatTimestamp renders a unix timestamp in seconds. Zero renders empty.
func FormatTimestamp(seconds uint64) string {
	if seconds == 0 {
		return ""
	}
	return time.Unix(int64(seconds), 0).UTC().Format(TimestampLayout)
}
