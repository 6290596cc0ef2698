package utils

import (
	"encoding/hex"
	"fmt"
	"strings"

	"lendboard/internal/domain/entity"

	"github.com/holiman/uint256"
)

// feltPrime is the Starknet field modulus 2^251 + 17*2^192 + 1.
var feltPrime = uint256.MustFromHex("0x800000000000011000000000000000000000000000000000000000000000001")

// ParseFelt parses a felt given as a decimal string or a 0x-prefixed hex string.
// Leading zeros are accepted in both forms.
func ParseFelt(raw string) (*uint256.Int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("%w: empty value", entity.ErrMalformedIdentifier)
	}

	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" {
			if len(s) == 2 {
				return nil, fmt.Errorf("%w: %q has no hex digits", entity.ErrMalformedIdentifier, raw)
			}
			return new(uint256.Int), nil
		}
		v, err = uint256.FromHex("0x" + strings.ToLower(digits))
	} else {
		digits := strings.TrimLeft(s, "0")
		if digits == "" {
			return new(uint256.Int), nil
		}
		v, err = uint256.FromDecimal(digits)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", entity.ErrMalformedIdentifier, raw, err)
	}
	if v.Cmp(feltPrime) >= 0 {
		return nil, fmt.Errorf("%w: %q exceeds the field modulus", entity.ErrMalformedIdentifier, raw)
	}
	return v, nil
}

// FeltToHex renders a felt as 0x followed by 64 lowercase hex digits.
func FeltToHex(v *uint256.Int) string {
	b := v.Bytes32()
	return "0x" + hex.EncodeToString(b[:])
}

// NormalizeAddress converts a raw on-chain identifier into the registry's address format.
func NormalizeAddress(raw string) (string, error) {
	v, err := ParseFelt(raw)
	if err != nil {
		return "", err
	}
	return FeltToHex(v), nil
}

// FeltToDecimal renders a felt as a base-10 string.
func FeltToDecimal(raw string) (string, error) {
	v, err := ParseFelt(raw)
	if err != nil {
		return "", err
	}
	return v.Dec(), nil
}
