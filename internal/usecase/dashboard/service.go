// Package dashboard derives aggregate figures from the raw financial state.
// The functions are pure so the same numbers can feed the CLI views and the
// assistant prompts.
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/aurafin/aura-backend/internal/domain"
)

// Summary holds the aggregate view of an identity's finances
type Summary struct {
	// TotalSpent is the sum of absolute amounts across debit entries only
	TotalSpent decimal.Decimal

	// ByCategory sums absolute amounts per category across ALL entries,
	// credits included. Deposits therefore inflate their category, matching
	// the spending breakdown as presented.
	ByCategory map[domain.Category]decimal.Decimal

	// InvestmentValue is the sum of recorded position values
	InvestmentValue decimal.Decimal
}

// Summarize aggregates transactions and investments into a Summary
func Summarize(transactions []domain.Transaction, investments []domain.Investment) Summary {
	summary := Summary{
		TotalSpent:      decimal.Zero,
		ByCategory:      make(map[domain.Category]decimal.Decimal),
		InvestmentValue: decimal.Zero,
	}

	for _, tx := range transactions {
		abs := tx.Amount.Abs()
		if tx.Type == domain.EntryTypeDebit {
			summary.TotalSpent = summary.TotalSpent.Add(abs)
		}
		summary.ByCategory[tx.Category] = summary.ByCategory[tx.Category].Add(abs)
	}

	for _, inv := range investments {
		summary.InvestmentValue = summary.InvestmentValue.Add(inv.CurrentValue)
	}

	return summary
}
