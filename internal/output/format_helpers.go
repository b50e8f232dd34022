package output

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	money "github.com/rpgo/networth-projection/pkg/decimal"
)

// FormatCurrency formats a decimal as grouped USD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatCurrencyWhole formats a decimal as grouped USD currency rounded to whole dollars.
func FormatCurrencyWhole(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatWhole()
}

// FormatFloatCurrency formats a simulated float value as currency.
func FormatFloatCurrency(amount float64) string { return money.NewMoney(amount).Format() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fraction (0.072) as a percentage ("7.20%").
func FormatRate(fraction decimal.Decimal) string {
	return FormatPercentage(fraction.Mul(decimal.NewFromInt(100)))
}

// FormatCount formats a count with thousands separators.
func FormatCount(n int) string { return humanize.Comma(int64(n)) }

// formatFloat renders a sample for machine-readable output.
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
