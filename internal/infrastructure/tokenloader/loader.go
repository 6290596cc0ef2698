package tokenloader

import (
	"fmt"
	"os"
	"strings"

	"lendboard/internal/app/port"
	"lendboard/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TokenFileLoader implements port.TokenProvider over a JSON token list,
// the same shape the dashboard frontend ships: [{"symbol","address","icon","decimals"}].
type TokenFileLoader struct {
	path   string
	logger port.Logger
}

// NewTokenLoader creates a TokenFileLoader reading path.
func NewTokenLoader(path string, logger port.Logger) port.TokenProvider {
	return &TokenFileLoader{path: path, logger: logger}
}

// GetTokens reads and validates the token list.
// Записи без символа или адреса пропускаются.
func (l *TokenFileLoader) GetTokens() ([]entity.TokenInfo, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", l.path, err)
	}

	var tokensInFile []entity.TokenInfo
	if err := json.Unmarshal(data, &tokensInFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tokens from %s: %w", l.path, err)
	}

	valid := make([]entity.TokenInfo, 0, len(tokensInFile))
	for i, token := range tokensInFile {
		if strings.TrimSpace(token.Symbol) == "" || strings.TrimSpace(token.Address) == "" {
			l.logger.Warn("Token entry without symbol or address, skipping", "file", l.path, "index", i)
			continue
		}
		valid = append(valid, token)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("token file %s contains no usable tokens", l.path)
	}

	l.logger.Info("Loaded tokens from file", "file", l.path, "count", len(valid))
	return valid, nil
}
