package provider

import (
	"lendboard/internal/app/port"
	"lendboard/internal/config"
	"lendboard/internal/domain/entity"
)

// Sepolia deployment of the tracked tokens. Used when the config lists no tokens.
var defaultTokens = []entity.TokenInfo{
	{
		Symbol:   "STRK",
		Address:  "0x04718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d",
		Icon:     "/images/starknet.png",
		Decimals: 18,
	},
	{
		Symbol:   "ETH",
		Address:  "0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7",
		Icon:     "/images/ethereumlogo.svg",
		Decimals: 18,
	},
}

type tokenProviderImpl struct {
	configured []config.TokenConfig
	logger     port.Logger
}

// NewTokenProvider creates a TokenProvider backed by the tokens section of the config.
func NewTokenProvider(tokens []config.TokenConfig, logger port.Logger) port.TokenProvider {
	return &tokenProviderImpl{configured: tokens, logger: logger}
}

// GetTokens returns the configured tokens, or the built-in deployment when none are configured.
func (p *tokenProviderImpl) GetTokens() ([]entity.TokenInfo, error) {
	if len(p.configured) == 0 {
		p.logger.Info("No tokens configured, using built-in Sepolia token list", "count", len(defaultTokens))
		out := make([]entity.TokenInfo, len(defaultTokens))
		copy(out, defaultTokens)
		return out, nil
	}

	tokens := make([]entity.TokenInfo, 0, len(p.configured))
	for _, t := range p.configured {
		tokens = append(tokens, entity.TokenInfo{
			Symbol:   t.Symbol,
			Address:  t.Address,
			Icon:     t.Icon,
			Decimals: t.Decimals,
		})
	}
	p.logger.Debug("Tokens loaded from configuration", "count", len(tokens))
	return tokens, nil
}
