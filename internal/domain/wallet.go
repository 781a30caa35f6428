package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Currency represents a supported wallet currency
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyBTC Currency = "BTC"
	CurrencyETH Currency = "ETH"
)

// Valid reports whether the currency is one of the supported codes
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyBTC, CurrencyETH:
		return true
	}
	return false
}

// Wallet represents a single-currency balance held by an identity
type Wallet struct {
	ID       string          `json:"id"`
	Currency Currency        `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	Symbol   string          `json:"symbol"`
	Color    string          `json:"color"`
}

// Validate ensures the wallet adheres to domain rules
// Returns an error if validation fails
func (w *Wallet) Validate() error {
	if w.ID == "" {
		return errors.New("wallet id cannot be empty")
	}
	if !w.Currency.Valid() {
		return errors.New("wallet currency must be a supported code")
	}
	if w.Balance.IsNegative() {
		return errors.New("wallet balance cannot be negative")
	}
	return nil
}

// UniqueCurrencies reports whether each currency appears at most once in the
// wallet set. The store does not enforce this on wholesale replacement; it is
// a caller-held invariant.
func UniqueCurrencies(wallets []Wallet) bool {
	seen := make(map[Currency]bool, len(wallets))
	for _, w := range wallets {
		if seen[w.Currency] {
			return false
		}
		seen[w.Currency] = true
	}
	return true
}
