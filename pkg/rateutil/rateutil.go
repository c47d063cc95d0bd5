// Package rateutil converts between annual and monthly rates and provides
// compounding helpers shared by the accumulation engine and the cap resolver.
package rateutil

import (
	"math"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// MonthlyCompoundRate converts an annual rate to its compounding monthly
// equivalent: r_m = (1+R)^(1/12) - 1. Returns and inflation use this form.
func MonthlyCompoundRate(annual decimal.Decimal) decimal.Decimal {
	if annual.IsZero() {
		return decimal.Zero
	}
	f := annual.InexactFloat64()
	return decimal.NewFromFloat(math.Pow(1+f, 1.0/12) - 1)
}

// MonthlyLinearRate spreads an annual fraction evenly across 12 months.
// AUM fees are charged this way: f_m = F_a / 12.
func MonthlyLinearRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(decimal.NewFromInt(12))
}

// CompoundFactor returns (1+rate)^periods for a whole number of periods.
func CompoundFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	if periods == 0 {
		return one
	}
	return one.Add(rate).Pow(decimal.NewFromInt(int64(periods)))
}
