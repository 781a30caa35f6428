package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTransaction_DerivesSignFromType(t *testing.T) {
	date := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

	debit := NewTransaction("Sent via Aura Tag", decimal.NewFromInt(150), CurrencyUSD, date, CategoryTransfer, EntryTypeDebit, "rent")
	assert.True(t, debit.Amount.Equal(decimal.NewFromInt(-150)), "debit amount should be negative, got %s", debit.Amount)
	assert.Equal(t, EntryTypeDebit, debit.Type)
	assert.Equal(t, "2024-05-15", debit.Date)
	assert.Equal(t, "rent", debit.Narrative)
	assert.NotEmpty(t, debit.ID)

	credit := NewTransaction("Deposit via Bank", decimal.NewFromInt(150), CurrencyUSD, date, CategoryTransfer, EntryTypeCredit, "")
	assert.True(t, credit.Amount.Equal(decimal.NewFromInt(150)), "credit amount should be positive, got %s", credit.Amount)
	assert.Equal(t, EntryTypeCredit, credit.Type)
}

func TestNewTransaction_NormalizesSignedInput(t *testing.T) {
	date := time.Now()

	// Callers may pass an already-negative amount; the type still wins.
	tx := NewTransaction("Refund", decimal.NewFromInt(-25), CurrencyEUR, date, CategoryShopping, EntryTypeCredit, "")
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(25)))
}

func TestTransaction_Validate(t *testing.T) {
	valid := NewTransaction("Apple Store", decimal.NewFromFloat(1299), CurrencyUSD, time.Now(), CategoryShopping, EntryTypeDebit, "")

	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr bool
	}{
		{name: "valid debit passes", mutate: func(tx *Transaction) {}, wantErr: false},
		{name: "empty id fails", mutate: func(tx *Transaction) { tx.ID = "" }, wantErr: true},
		{name: "empty title fails", mutate: func(tx *Transaction) { tx.Title = "" }, wantErr: true},
		{name: "unknown currency fails", mutate: func(tx *Transaction) { tx.Currency = "JPY" }, wantErr: true},
		{name: "unknown category fails", mutate: func(tx *Transaction) { tx.Category = "Gambling" }, wantErr: true},
		{name: "unknown type fails", mutate: func(tx *Transaction) { tx.Type = "refund" }, wantErr: true},
		{name: "bad date fails", mutate: func(tx *Transaction) { tx.Date = "15/05/2024" }, wantErr: true},
		{name: "debit with positive amount fails", mutate: func(tx *Transaction) { tx.Amount = decimal.NewFromInt(10) }, wantErr: true},
		{
			name: "credit with negative amount fails",
			mutate: func(tx *Transaction) {
				tx.Type = EntryTypeCredit
				tx.Amount = decimal.NewFromInt(-10)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
