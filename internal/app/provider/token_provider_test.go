package provider_test

import (
	"testing"

	"lendboard/internal/app/provider"
	"lendboard/internal/config"
	"lendboard/internal/pkg/logger"
)

func TestTokenProviderDefaults(t *testing.T) {
	tokens, err := provider.NewTokenProvider(nil, logger.Discard()).GetTokens()
	if err != nil {
		t.Fatalf("GetTokens: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 built-in tokens, got %d", len(tokens))
	}
	if tokens[0].Symbol != "STRK" || tokens[1].Symbol != "ETH" {
		t.Errorf("unexpected symbols %q, %q", tokens[0].Symbol, tokens[1].Symbol)
	}
}

func TestTokenProviderConfigured(t *testing.T) {
	cfg := []config.TokenConfig{{Symbol: "USDC", Address: "0x53c9", Icon: "/images/usdc.png", Decimals: 6}}
	tokens, err := provider.NewTokenProvider(cfg, logger.Discard()).GetTokens()
	if err != nil {
		t.Fatalf("GetTokens: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Symbol != "USDC" || tokens[0].Decimals != 6 {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}
