package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// maxAmount keeps user input inside a sane ledger range.
var maxAmount = decimal.RequireFromString("1000000000")

// ParseAmount parses a user-entered decimal amount ("1234.56"). Amounts are
// positive; direction lives on the transaction, not the number. Values are
// rounded to cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return validate(d)
}

// FromFloat converts a float amount, for JSON payloads that send numbers.
func FromFloat(v float64) (decimal.Decimal, error) {
	return validate(decimal.NewFromFloat(v))
}

func validate(d decimal.Decimal) (decimal.Decimal, error) {
	d = d.Round(2)
	if d.IsNegative() || d.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	if d.GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return d, nil
}

// FormatPlain renders an amount with two decimals and no symbol: "1234.56".
func FormatPlain(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Signed renders an amount with a leading sign for statements: expenses
// negative, income positive.
func Signed(d decimal.Decimal, expense bool) string {
	if expense {
		return "-" + d.StringFixed(2)
	}
	return "+" + d.StringFixed(2)
}
