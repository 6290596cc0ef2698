package entity

import "math"

// Tracked price symbols. PriceTable always carries exactly these keys once ready.
const (
	SymbolETH  = "eth"
	SymbolSTRK = "strk"
)

// TrackedSymbols lists the symbols every price oracle must resolve.
var TrackedSymbols = []string{SymbolETH, SymbolSTRK}

// PriceTable maps a lowercase symbol to its USD price. It is replaced wholesale, never patched.
type PriceTable map[string]float64

// Complete reports whether every tracked symbol has a valid price.
func (p PriceTable) Complete() bool {
	for _, s := range TrackedSymbols {
		v, ok := p[s]
		if !ok || !ValidPrice(v) {
			return false
		}
	}
	return true
}

// ValidPrice reports whether v is a finite, non-negative USD price.
func ValidPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Clone returns a copy that can be handed out without sharing the map.
func (p PriceTable) Clone() PriceTable {
	if p == nil {
		return nil
	}
	out := make(PriceTable, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
