package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurafin/aura-backend/internal/domain"
)

func TestToEuro(t *testing.T) {
	tests := []struct {
		name        string
		wallet      domain.Wallet
		wantBalance decimal.Decimal
	}{
		{
			name:        "USD converts at 0.92",
			wallet:      domain.Wallet{ID: "w1", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(100), Symbol: "$", Color: "bg-blue-600"},
			wantBalance: decimal.NewFromInt(92),
		},
		{
			name:        "GBP converts at 1.17",
			wallet:      domain.Wallet{ID: "w1", Currency: domain.CurrencyGBP, Balance: decimal.NewFromInt(100), Symbol: "£", Color: "bg-purple-600"},
			wantBalance: decimal.NewFromInt(117),
		},
		{
			name:        "crypto converts at the flat rate",
			wallet:      domain.Wallet{ID: "w1", Currency: domain.CurrencyBTC, Balance: decimal.NewFromFloat(0.5), Symbol: "₿", Color: "bg-orange-500"},
			wantBalance: decimal.NewFromInt(31000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToEuro([]domain.Wallet{tt.wallet}, "w1")
			require.Len(t, got, 1)
			assert.True(t, got[0].Balance.Equal(tt.wantBalance), "balance %s", got[0].Balance)
			assert.Equal(t, domain.CurrencyEUR, got[0].Currency)
			assert.Equal(t, "€", got[0].Symbol)
			assert.Equal(t, "bg-indigo-600", got[0].Color)
		})
	}
}

func TestToEuro_LeavesOtherWalletsAlone(t *testing.T) {
	wallets := []domain.Wallet{
		{ID: "w1", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(100), Symbol: "$"},
		{ID: "w2", Currency: domain.CurrencyGBP, Balance: decimal.NewFromInt(50), Symbol: "£"},
	}

	got := ToEuro(wallets, "w2")
	assert.Equal(t, domain.CurrencyUSD, got[0].Currency)
	assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.CurrencyEUR, got[1].Currency)

	// The input slice is never mutated.
	assert.Equal(t, domain.CurrencyGBP, wallets[1].Currency)
}

func TestToEuro_EuroWalletIsUntouched(t *testing.T) {
	wallets := []domain.Wallet{
		{ID: "w1", Currency: domain.CurrencyEUR, Balance: decimal.NewFromInt(100), Symbol: "€"},
	}

	got := ToEuro(wallets, "w1")
	assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(100)))
}

func TestToEuro_UnknownIDIsNoOp(t *testing.T) {
	wallets := []domain.Wallet{
		{ID: "w1", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(100), Symbol: "$"},
	}

	got := ToEuro(wallets, "nope")
	assert.Equal(t, wallets, got)
}
