// Package seeder holds the fixed demo fixtures used to populate a fresh
// identity's financial state when no persisted snapshot exists.
package seeder

import (
	"github.com/shopspring/decimal"

	"github.com/aurafin/aura-backend/internal/domain"
)

// MasterIdentityID is the one designated identity that gets the full demo
// fixture set instead of the minimal default.
const MasterIdentityID = "master-robert"

// MasterIdentity returns the authorized demo profile.
func MasterIdentity() *domain.Identity {
	return &domain.Identity{
		ID:                MasterIdentityID,
		Name:              "Robert J. White",
		Email:             "RobertJWhite@dayrep.com",
		Phone:             "937-604-1246",
		Address:           "3171 Harter Street, Dayton, OH 45402",
		Avatar:            "https://i.pravatar.cc/150?u=RobertJWhite@dayrep.com",
		IsAddressVerified: true,
		RewardPoints:      75000,
		Password:          "quoong9Aox",
		Username:          "Wayearty",
		Birthday:          "March 17, 1988",
	}
}

// Wallets returns the seed wallet set for the master identity.
func Wallets() []domain.Wallet {
	return []domain.Wallet{
		{ID: "usd-wallet", Currency: domain.CurrencyUSD, Balance: decimal.NewFromFloat(12450.50), Symbol: "$", Color: "bg-blue-600"},
		{ID: "gbp-wallet", Currency: domain.CurrencyGBP, Balance: decimal.NewFromFloat(850.25), Symbol: "£", Color: "bg-purple-600"},
		{ID: "crypto-wallet", Currency: domain.CurrencyBTC, Balance: decimal.NewFromFloat(0.12), Symbol: "₿", Color: "bg-orange-500"},
	}
}

// DefaultWallets returns the minimal wallet set for any identity that is not
// the master and has no snapshot.
func DefaultWallets() []domain.Wallet {
	return []domain.Wallet{
		{ID: "usd-wallet", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(2500), Symbol: "$", Color: "bg-blue-600"},
		{ID: "gbp-wallet", Currency: domain.CurrencyGBP, Balance: decimal.NewFromInt(100), Symbol: "£", Color: "bg-purple-600"},
		{ID: "crypto-wallet", Currency: domain.CurrencyBTC, Balance: decimal.Zero, Symbol: "₿", Color: "bg-orange-500"},
	}
}

// Transactions returns the seed transaction history, newest first.
func Transactions() []domain.Transaction {
	return []domain.Transaction{
		{ID: "1", Title: "Apple Store", Amount: decimal.NewFromFloat(-1299.00), Currency: domain.CurrencyUSD, Date: "2024-05-15", Category: domain.CategoryShopping, Type: domain.EntryTypeDebit},
		{ID: "2", Title: "Starbucks Coffee", Amount: decimal.NewFromFloat(-5.50), Currency: domain.CurrencyUSD, Date: "2024-05-14", Category: domain.CategoryFood, Type: domain.EntryTypeDebit},
		{ID: "3", Title: "Salary Deposit", Amount: decimal.NewFromFloat(4500.00), Currency: domain.CurrencyUSD, Date: "2024-05-01", Category: domain.CategoryTransfer, Type: domain.EntryTypeCredit},
		{ID: "4", Title: "Netflix Subscription", Amount: decimal.NewFromFloat(-15.99), Currency: domain.CurrencyUSD, Date: "2024-05-10", Category: domain.CategorySubscription, Type: domain.EntryTypeDebit},
		{ID: "5", Title: "Uber Trip", Amount: decimal.NewFromFloat(-24.50), Currency: domain.CurrencyUSD, Date: "2024-05-12", Category: domain.CategoryTransport, Type: domain.EntryTypeDebit},
	}
}

// Investments returns the seed investment positions.
func Investments() []domain.Investment {
	return []domain.Investment{
		{ID: "1", Name: "Nvidia Corp", Symbol: "NVDA", Holdings: decimal.NewFromInt(10), CurrentValue: decimal.NewFromFloat(9200.00), Change24h: 2.4, Type: domain.AssetClassStock},
		{ID: "2", Name: "Bitcoin", Symbol: "BTC", Holdings: decimal.NewFromFloat(0.12), CurrentValue: decimal.NewFromFloat(7800.00), Change24h: -1.2, Type: domain.AssetClassCrypto},
		{ID: "3", Name: "Tesla Inc", Symbol: "TSLA", Holdings: decimal.NewFromInt(15), CurrentValue: decimal.NewFromFloat(2500.00), Change24h: 0.8, Type: domain.AssetClassStock},
		{ID: "4", Name: "Ethereum", Symbol: "ETH", Holdings: decimal.NewFromInt(2), CurrentValue: decimal.NewFromFloat(6000.00), Change24h: 1.5, Type: domain.AssetClassCrypto},
	}
}

// ZeroedInvestments returns the investment fixtures with holdings and value
// zeroed out, used for non-master identities.
func ZeroedInvestments() []domain.Investment {
	investments := Investments()
	for i := range investments {
		investments[i].Holdings = decimal.Zero
		investments[i].CurrentValue = decimal.Zero
	}
	return investments
}

// Cards returns the seed card set for the master identity.
func Cards() []domain.Card {
	return []domain.Card{
		{ID: "1", CardNumber: "4291 5562 1190 4291", LastFour: "4291", Expiry: "08/27", Type: domain.CardTypeVirtual, Status: domain.CardStatusActive, Color: "from-blue-500 to-indigo-600"},
		{ID: "2", CardNumber: "8812 3344 0098 8812", LastFour: "8812", Expiry: "12/26", Type: domain.CardTypePhysical, Status: domain.CardStatusFrozen, Color: "from-slate-700 to-slate-900"},
	}
}

// Rewards returns the seed reward set. Every fresh state starts from these,
// whatever the identity.
func Rewards() []domain.Reward {
	return []domain.Reward{
		{ID: "r1", Brand: "Apple", Deal: "5% Cashback on Macs", Logo: "🍎", Color: "bg-slate-800", Cost: 2500, Claimed: false},
		{ID: "r2", Brand: "Airbnb", Deal: "Up to 10% back on bookings", Logo: "🏠", Color: "bg-rose-500", Cost: 1200, Claimed: false},
		{ID: "r3", Brand: "Uber", Deal: "Free delivery for 3 months", Logo: "🚗", Color: "bg-black", Cost: 800, Claimed: false},
		{ID: "r4", Brand: "Amazon", Deal: "2% back on all orders", Logo: "📦", Color: "bg-orange-400", Cost: 500, Claimed: false},
		{ID: "r5", Brand: "Spotify", Deal: "6 months Premium Free", Logo: "🎵", Color: "bg-emerald-500", Cost: 1500, Claimed: false},
	}
}
