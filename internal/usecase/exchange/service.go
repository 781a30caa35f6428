// Package exchange converts wallets between currencies at fixed demo rates.
package exchange

import (
	"github.com/shopspring/decimal"

	"github.com/aurafin/aura-backend/internal/domain"
)

// Rates to EUR per unit of the source currency. Anything outside the fiat
// pairs is treated as crypto and gets the flat crypto rate.
var (
	rateUSDToEUR     = decimal.NewFromFloat(0.92)
	rateGBPToEUR     = decimal.NewFromFloat(1.17)
	rateDefaultToEUR = decimal.NewFromInt(62000)
)

// ToEuro returns a copy of wallets with the wallet matching walletID
// converted to EUR in place. Wallets already denominated in EUR and wallets
// with other ids pass through untouched.
func ToEuro(wallets []domain.Wallet, walletID string) []domain.Wallet {
	converted := make([]domain.Wallet, len(wallets))
	copy(converted, wallets)

	for i := range converted {
		w := &converted[i]
		if w.ID != walletID || w.Currency == domain.CurrencyEUR {
			continue
		}

		rate := rateDefaultToEUR
		switch w.Currency {
		case domain.CurrencyUSD:
			rate = rateUSDToEUR
		case domain.CurrencyGBP:
			rate = rateGBPToEUR
		}

		w.Balance = w.Balance.Mul(rate)
		w.Currency = domain.CurrencyEUR
		w.Symbol = "€"
		w.Color = "bg-indigo-600"
	}

	return converted
}
