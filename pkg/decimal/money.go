package decimal

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO code used for display when none is given.
const DefaultCurrency = "USD"

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// String returns the string representation with proper formatting
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount in DefaultCurrency with grouping, e.g. "$50,000.00"
func (m Money) Format() string {
	return m.FormatIn(DefaultCurrency)
}

// FormatIn renders the amount with the display rules of an ISO currency code.
// Unknown codes fall back to the plain two-decimal string.
func (m Money) FormatIn(code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return m.String()
	}
	minor := m.Decimal.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatWhole renders the amount rounded to whole currency units, e.g. "$50,037"
func (m Money) FormatWhole() string {
	cur := money.GetCurrency(DefaultCurrency)
	f := cur.Formatter()
	f.Fraction = 0
	return f.Format(m.Decimal.Round(0).IntPart())
}
