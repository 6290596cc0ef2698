package utils

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimal places shown for quantities and USD values.
const DisplayPlaces = 3

// U256FromFelts joins the low and high 128-bit halves of a Cairo u256.
func U256FromFelts(lowRaw, highRaw string) (*big.Int, error) {
	low, err := ParseFelt(lowRaw)
	if err != nil {
		return nil, fmt.Errorf("u256 low half: %w", err)
	}
	high, err := ParseFelt(highRaw)
	if err != nil {
		return nil, fmt.Errorf("u256 high half: %w", err)
	}
	if low.BitLen() > 128 || high.BitLen() > 128 {
		return nil, fmt.Errorf("u256 halves must fit in 128 bits (low=%d bits, high=%d bits)", low.BitLen(), high.BitLen())
	}
	v := new(uint256.Int).Lsh(high, 128)
	v.Or(v, low)
	return v.ToBig(), nil
}

// ToQuantity scales a raw integer amount down by 10^decimals.
// A nil amount is treated as zero.
func ToQuantity(amount *big.Int, decimals uint8) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -int32(decimals))
}

// FormatQuantity renders amount/10^decimals with DisplayPlaces decimal places.
// Example: amount=1234500000000000000, decimals=18 => "1.235"
func FormatQuantity(amount *big.Int, decimals uint8) string {
	return ToQuantity(amount, decimals).StringFixed(DisplayPlaces)
}

// FormatUSDValue multiplies a quantity by a USD price and renders it with DisplayPlaces places.
func FormatUSDValue(quantity decimal.Decimal, priceUSD float64) string {
	return quantity.Mul(decimal.NewFromFloat(priceUSD)).StringFixed(DisplayPlaces)
}
