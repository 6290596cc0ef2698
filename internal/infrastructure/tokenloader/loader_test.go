package tokenloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"lendboard/internal/infrastructure/tokenloader"
	"lendboard/internal/pkg/logger"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tokens.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGetTokens(t *testing.T) {
	path := writeFile(t, `[
	  {"symbol":"USDC","address":"0x53c91253bc9682c04929ca02ed00b3e423f6710d2ee7e0d5ebb06f3ecf368a8","icon":"/images/usdc.svg","decimals":6},
	  {"symbol":"","address":"0x1"}
	]`)

	tokens, err := tokenloader.NewTokenLoader(path, logger.Discard()).GetTokens()
	if err != nil {
		t.Fatalf("GetTokens: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Symbol != "USDC" || tokens[0].Decimals != 6 {
		t.Fatalf("tokens = %+v", tokens)
	}
}

func TestGetTokensErrors(t *testing.T) {
	cases := map[string]string{
		"invalid json": `{"symbol":`,
		"no usable":    `[{"symbol":"X"}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := tokenloader.NewTokenLoader(writeFile(t, body), logger.Discard()).GetTokens(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
	if _, err := tokenloader.NewTokenLoader(filepath.Join(t.TempDir(), "missing.json"), logger.Discard()).GetTokens(); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
