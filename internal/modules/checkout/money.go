package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// AmountInput is a raw text field (cash tendered, discount) together
// with its parse result. Keeping the raw text lets the register allow
// free typing while the parse rule stays centralized and testable.
type AmountInput struct {
	Raw   string
	Value decimal.Decimal
	Valid bool
}

// ParseAmount parses a non-negative monetary amount from raw user
// input. Anything non-numeric or negative is invalid, never an error.
func ParseAmount(raw string) AmountInput {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || v.IsNegative() {
		return AmountInput{Raw: raw}
	}
	return AmountInput{Raw: raw, Value: v, Valid: true}
}

// ParseDiscount parses a discount percentage from raw user input,
// clamped to [0, 100]. Unparseable or negative input is treated as 0 so
// bad typing can never corrupt totals.
func ParseDiscount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(oneHundred) {
		return oneHundred
	}
	return d
}

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// clampPrice guards against malformed catalog data: a missing or
// negative price is priced at zero rather than blocking checkout.
func clampPrice(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}
