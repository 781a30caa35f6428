package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType represents the direction of a transaction
type EntryType string

const (
	EntryTypeDebit  EntryType = "debit"
	EntryTypeCredit EntryType = "credit"
)

// Valid reports whether the entry type is debit or credit
func (t EntryType) Valid() bool {
	return t == EntryTypeDebit || t == EntryTypeCredit
}

// Category represents a transaction category
type Category string

const (
	CategoryShopping     Category = "Shopping"
	CategoryFood         Category = "Food"
	CategoryTransport    Category = "Transport"
	CategorySubscription Category = "Subscription"
	CategoryTransfer     Category = "Transfer"
	CategoryInvestment   Category = "Investment"
)

// Valid reports whether the category is one of the defined values
func (c Category) Valid() bool {
	switch c {
	case CategoryShopping, CategoryFood, CategoryTransport,
		CategorySubscription, CategoryTransfer, CategoryInvestment:
		return true
	}
	return false
}

// DateLayout is the day-granularity date format used on transactions
const DateLayout = "2006-01-02"

// Transaction represents an immutable ledger entry.
// Amount is signed (negative for debits) but Type is the source of truth:
// the sign is derived from Type at construction and the two never disagree.
type Transaction struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  Currency        `json:"currency"`
	Date      string          `json:"date"`
	Category  Category        `json:"category"`
	Type      EntryType       `json:"type"`
	Narrative string          `json:"narrative,omitempty"`
}

// NewTransaction builds a transaction from an absolute amount and an entry
// type, deriving the signed amount from the type.
func NewTransaction(title string, amount decimal.Decimal, currency Currency, date time.Time, category Category, entryType EntryType, narrative string) Transaction {
	signed := amount.Abs()
	if entryType == EntryTypeDebit {
		signed = signed.Neg()
	}
	return Transaction{
		ID:        uuid.New().String(),
		Title:     title,
		Amount:    signed,
		Currency:  currency,
		Date:      date.Format(DateLayout),
		Category:  category,
		Type:      entryType,
		Narrative: narrative,
	}
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return errors.New("transaction id cannot be empty")
	}
	if t.Title == "" {
		return errors.New("transaction title cannot be empty")
	}
	if !t.Currency.Valid() {
		return errors.New("transaction currency must be a supported code")
	}
	if !t.Category.Valid() {
		return errors.New("transaction category must be a defined value")
	}
	if !t.Type.Valid() {
		return errors.New("transaction type must be debit or credit")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return errors.New("transaction date must use YYYY-MM-DD")
	}
	if t.Type == EntryTypeDebit && t.Amount.IsPositive() {
		return errors.New("debit transaction cannot carry a positive amount")
	}
	if t.Type == EntryTypeCredit && t.Amount.IsNegative() {
		return errors.New("credit transaction cannot carry a negative amount")
	}
	return nil
}
