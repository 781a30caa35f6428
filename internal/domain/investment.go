package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// AssetClass represents the class of an investment position
type AssetClass string

const (
	AssetClassStock  AssetClass = "Stock"
	AssetClassCrypto AssetClass = "Crypto"
	AssetClassMetal  AssetClass = "Metal"
)

// Valid reports whether the asset class is one of the defined values
func (a AssetClass) Valid() bool {
	return a == AssetClassStock || a == AssetClassCrypto || a == AssetClassMetal
}

// Investment represents a held position.
//
// Holdings and CurrentValue move together under buy/sell but are NOT derived
// from each other: each trade adjusts holdings by units at a freshly sampled
// price and adjusts value by the traded USD amount, so the two can drift from
// a mark-to-market figure over repeated trades. That additive-ledger behavior
// is intentional and must not be "corrected" to holdings x price.
type Investment struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	Holdings     decimal.Decimal `json:"holdings"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	Change24h    float64         `json:"change24h"`
	Type         AssetClass      `json:"type"`
}

// Validate ensures the investment adheres to domain rules
func (i *Investment) Validate() error {
	if i.ID == "" {
		return errors.New("investment id cannot be empty")
	}
	if !i.Type.Valid() {
		return errors.New("investment type must be Stock, Crypto or Metal")
	}
	if i.Holdings.IsNegative() {
		return errors.New("investment holdings cannot be negative")
	}
	if i.CurrentValue.IsNegative() {
		return errors.New("investment value cannot be negative")
	}
	return nil
}
