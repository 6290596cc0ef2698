package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"lendboard/internal/config"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("server:\n  port: \"9090\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Server.Port != ":9090" {
		t.Errorf("port = %s", cfg.Server.Port)
	}
	if cfg.Dashboard.RowsPerPage != 5 || cfg.Dashboard.MaxVisibleButtons != 5 {
		t.Errorf("dashboard = %+v", cfg.Dashboard)
	}
	if cfg.FallbackDecimals() != 18 {
		t.Errorf("fallback decimals = %d", cfg.FallbackDecimals())
	}
	if cfg.PriceOracle.Provider != config.ProviderCoinGecko {
		t.Errorf("provider = %s", cfg.PriceOracle.Provider)
	}
	if cfg.Starknet.ExplorerHost != "sepolia.voyager.online" || cfg.Starknet.HistoryPageSize != 5 {
		t.Errorf("starknet = %+v", cfg.Starknet)
	}
}

func TestParseExplicitZeroFallbackDecimals(t *testing.T) {
	cfg, err := config.Parse([]byte("dashboard:\n  fallbackDecimals: 0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.FallbackDecimals() != 0 {
		t.Errorf("fallback decimals = %d, want 0", cfg.FallbackDecimals())
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown provider":  "priceOracle:\n  provider: binance\n",
		"missing id":        "coinGecko:\n  ids:\n    eth: ethereum\n",
		"decimals range":    "dashboard:\n  fallbackDecimals: 300\n",
		"token without key": "tokens:\n  - symbol: USDC\n",
		"bad yaml":          "server: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Parse([]byte(doc)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "priceOracle:\n  provider: DEXScreener\ntokens:\n  - symbol: ETH\n    address: \"0x49d3\"\n    decimals: 18\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PriceOracle.Provider != config.ProviderDEXScreener {
		t.Errorf("provider = %s", cfg.PriceOracle.Provider)
	}
	if len(cfg.Tokens) != 1 || cfg.Tokens[0].Decimals != 18 {
		t.Errorf("tokens = %+v", cfg.Tokens)
	}

	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
