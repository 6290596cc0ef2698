package entity

// ValuationState explains how FormattedUSDValue was produced.
type ValuationState string

const (
	ValuationOK              ValuationState = "ok"
	ValuationPriceFailed     ValuationState = "price_failed"
	ValuationPricePending    ValuationState = "price_pending"
	ValuationTokenUnresolved ValuationState = "token_unresolved"
	ValuationNoPrice         ValuationState = "no_price"
)

// PriceFailureMarker replaces every USD value while the price feed is in a failed state.
const PriceFailureMarker = "Failed to fetch crypto prices"

// ResolvedRow is a raw row enriched for display. Derived only, never persisted.
type ResolvedRow struct {
	DisplaySymbol     string             `json:"displaySymbol"`
	Icon              string             `json:"icon"`
	TokenAddress      string             `json:"tokenAddress,omitempty"`
	FormattedQuantity string             `json:"formattedQuantity"`
	FormattedUSDValue string             `json:"formattedUsdValue"`
	Valuation         ValuationState     `json:"valuation"`
	Transaction       *TransactionDetail `json:"transaction,omitempty"`
}

// TransactionDetail carries the transaction-only columns.
type TransactionDetail struct {
	TypeLabel   string `json:"typeLabel"`
	Timestamp   string `json:"timestamp"`
	ExplorerURL string `json:"explorerUrl"`
}
