// Package money wraps shopspring/decimal with the small set of helpers the
// invoicing engine needs. All monetary amounts in the system are decimals;
// float64 only appears at the API boundary.
package money

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Hundred is used as the percentage divisor
var Hundred = decimal.NewFromInt(100)

// FromInt creates a decimal from an int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromFloat creates a decimal from a float, rounded to 2 places
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FromString parses a decimal from a string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal from a string, panics on error.
// Intended for constants and tests.
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Round2 rounds to 2 decimal places (EUR cents)
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent computes amount * (rate/100) without intermediate rounding.
// Rounding happens once, at invoice totals.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(Hundred)
}

// IsPositive returns true if d is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}

// ClampZero returns d, or zero when d is negative
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return Zero
	}
	return d
}
