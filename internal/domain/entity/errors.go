package entity

import "errors"

var (
	// ErrMalformedIdentifier is returned when a raw on-chain identifier cannot be normalized.
	ErrMalformedIdentifier = errors.New("malformed on-chain identifier")
	// ErrPriceFetch is returned by price oracles when a full price table could not be produced.
	ErrPriceFetch = errors.New("failed to fetch crypto prices")
	// ErrSessionNotFound is returned when a dashboard session id is unknown or expired.
	ErrSessionNotFound = errors.New("dashboard session not found")
	// ErrDuplicateToken is returned when two registry entries normalize to the same address.
	ErrDuplicateToken = errors.New("duplicate token address in registry")
)
