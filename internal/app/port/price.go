package port

import (
	"context"

	"lendboard/internal/domain/entity"
)

// PriceOracle fetches USD prices for entity.TrackedSymbols.
// Implementations return a complete table or an error wrapping entity.ErrPriceFetch.
type PriceOracle interface {
	FetchPrices(ctx context.Context) (entity.PriceTable, error)
}
