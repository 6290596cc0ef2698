package port

import "lendboard/internal/domain/entity"

// TokenRegistry определяет интерфейс реестра, сопоставляющего ончейн-идентификаторы токенов с их метаданными.
type TokenRegistry interface {
	// Resolve returns ok=false for well-formed but unknown tokens and an error
	// wrapping entity.ErrMalformedIdentifier when raw cannot be normalized.
	Resolve(raw string) (entity.TokenInfo, bool, error)
	List() []entity.TokenInfo
}

// TokenProvider supplies the registry entries.
type TokenProvider interface {
	GetTokens() ([]entity.TokenInfo, error)
}
