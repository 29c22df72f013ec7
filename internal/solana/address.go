// Package solana builds unsigned SPL token transfer transactions.
package solana

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAddress is returned for strings that are not base58 public keys.
	ErrInvalidAddress = errors.New("invalid solana address")
	// ErrInvalidAmount is returned for amounts that cannot be transferred.
	ErrInvalidAmount = errors.New("invalid amount")
)

// ParseAddress decodes a base58 Solana public key.
func ParseAddress(s string) (solana.PublicKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return solana.PublicKey{}, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return pk, nil
}

// ToBaseUnits converts a human amount to the token's integer base units,
// rounding half away from zero at the last decimal place.
func ToBaseUnits(amount float64, decimals int32) (uint64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	units := decimal.NewFromFloat(amount).Shift(decimals).Round(0)
	if !units.IsPositive() {
		return 0, fmt.Errorf("%w: %v is below the smallest unit", ErrInvalidAmount, amount)
	}
	if units.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, fmt.Errorf("%w: %v is too large", ErrInvalidAmount, amount)
	}
	return uint64(units.IntPart()), nil
}
