package receipt

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/aurafin/aura-backend/internal/domain"
)

// Display symbols for currencies that the money library has no useful
// formatting for.
var cryptoSymbols = map[domain.Currency]string{
	domain.CurrencyBTC: "₿",
	domain.CurrencyETH: "Ξ",
}

// FormatAmount renders a signed amount in its currency. Fiat currencies get
// locale-style formatting from the money library; crypto currencies keep
// their full precision with a plain symbol prefix.
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	if symbol, ok := cryptoSymbols[currency]; ok {
		sign := ""
		if amount.IsNegative() {
			sign = "-"
		}
		return sign + symbol + amount.Abs().String()
	}

	cur := money.GetCurrency(string(currency))
	if cur == nil {
		return amount.String() + " " + string(currency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// Render produces the printable text form of a receipt.
func Render(tx domain.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Receipt %s\n", Reference(tx))
	fmt.Fprintf(&b, "%s\n", tx.Title)
	fmt.Fprintf(&b, "Amount:   %s\n", FormatAmount(tx.Amount, tx.Currency))
	fmt.Fprintf(&b, "Date:     %s\n", tx.Date)
	fmt.Fprintf(&b, "Category: %s\n", tx.Category)
	fmt.Fprintf(&b, "Type:     %s\n", tx.Type)
	if tx.Narrative != "" {
		fmt.Fprintf(&b, "Note:     %s\n", tx.Narrative)
	}
	return b.String()
}
