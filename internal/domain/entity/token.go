package entity

// TokenInfo holds the display metadata of a token known to the registry.
type TokenInfo struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	Address  string `json:"address" yaml:"address"` // Normalized 0x-prefixed, 64 hex digits
	Icon     string `json:"icon" yaml:"icon"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}
