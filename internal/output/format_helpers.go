package output

import (
	"github.com/gemelfund/provident-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatNIS formats a decimal as shekel currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatNIS(amount decimal.Decimal) string { return money.FromDecimal(amount).Round().Format() }

// FormatPercentage formats a decimal fraction as a percentage with 2 decimals.
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
