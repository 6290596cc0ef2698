package service

import (
	"fmt"

	"lendboard/internal/app/port"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/utils"
)

// tokenRegistryImpl implements port.TokenRegistry over an immutable address index.
type tokenRegistryImpl struct {
	byAddress map[string]entity.TokenInfo
	ordered   []entity.TokenInfo
}

// NewTokenRegistry loads the tokens from tp and indexes them by normalized address.
func NewTokenRegistry(tp port.TokenProvider, l port.Logger) (port.TokenRegistry, error) {
	tokens, err := tp.GetTokens()
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens: %w", err)
	}

	r := &tokenRegistryImpl{
		byAddress: make(map[string]entity.TokenInfo, len(tokens)),
		ordered:   make([]entity.TokenInfo, 0, len(tokens)),
	}
	for _, t := range tokens {
		addr, err := utils.NormalizeAddress(t.Address)
		if err != nil {
			return nil, fmt.Errorf("token %s: %w", t.Symbol, err)
		}
		if existing, dup := r.byAddress[addr]; dup {
			return nil, fmt.Errorf("%w: %s and %s share %s", entity.ErrDuplicateToken, existing.Symbol, t.Symbol, addr)
		}
		t.Address = addr
		r.byAddress[addr] = t
		r.ordered = append(r.ordered, t)
	}

	l.Info("Token registry initialized", "count", len(r.ordered), "symbols", utils.TokenSymbols(r.ordered))
	return r, nil
}

// Resolve normalizes raw and looks it up.
func (r *tokenRegistryImpl) Resolve(raw string) (entity.TokenInfo, bool, error) {
	addr, err := utils.NormalizeAddress(raw)
	if err != nil {
		return entity.TokenInfo{}, false, err
	}
	t, ok := r.byAddress[addr]
	return t, ok, nil
}

// List returns the registry entries in configuration order.
func (r *tokenRegistryImpl) List() []entity.TokenInfo {
	out := make([]entity.TokenInfo, len(r.ordered))
	copy(out, r.ordered)
	return out
}
