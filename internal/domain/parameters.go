package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Regulatory limits for Investment Provident Funds. The annual contribution
// cap itself is deliberately not a constant here; it changes every year and is
// supplied externally through CapSchedule.
var (
	// MaxFeeAUM is the legal ceiling on the annual management fee (1.05%).
	MaxFeeAUM = decimal.NewFromFloat(0.0105)
	// MaxFeeDeposit is the legal ceiling on the deposit fee (4%).
	MaxFeeDeposit = decimal.NewFromFloat(0.04)
	// DefaultCapitalGainsTax is the statutory rate on real gains (25%).
	DefaultCapitalGainsTax = decimal.NewFromFloat(0.25)
)

// AnnuityMinAge is the minimum withdrawal age for a tax-free recognized annuity.
const AnnuityMinAge = 60

// WithdrawalMode selects how the accumulated balance is taken out.
type WithdrawalMode string

const (
	ModeLumpSum WithdrawalMode = "lump_sum"
	ModeAnnuity WithdrawalMode = "annuity"
)

// Valid reports whether the mode is one of the supported variants.
func (m WithdrawalMode) Valid() bool {
	switch m {
	case ModeLumpSum, ModeAnnuity:
		return true
	}
	return false
}

// CapSchedule maps calendar years to the legal annual contribution ceiling.
// Years beyond the table are projected from the latest known year by
// compounding ProjectionGrowth; the zero value means carry-forward.
type CapSchedule struct {
	ByYear           map[int]decimal.Decimal `yaml:"by_year" json:"by_year"`
	ProjectionGrowth decimal.Decimal         `yaml:"projection_growth" json:"projection_growth"`
}

// ParameterSet is the immutable description of a single simulation scenario.
// Construct it once, call Validate, then treat it as read-only.
type ParameterSet struct {
	Name                string          `yaml:"name" json:"name"`
	StartAge            int             `yaml:"start_age" json:"start_age"`
	WithdrawAge         int             `yaml:"withdraw_age" json:"withdraw_age"`
	StartYear           int             `yaml:"start_year" json:"start_year"`
	StartMonth          time.Month      `yaml:"start_month" json:"start_month"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	CapSchedule         CapSchedule     `yaml:"cap_schedule" json:"cap_schedule"`
	AnnualReturn        decimal.Decimal `yaml:"annual_return" json:"annual_return"`
	Inflation           decimal.Decimal `yaml:"inflation" json:"inflation"`
	AUMFee              decimal.Decimal `yaml:"aum_fee" json:"aum_fee"`
	DepositFee          decimal.Decimal `yaml:"deposit_fee" json:"deposit_fee"`
	ExtraExpenseDrag    decimal.Decimal `yaml:"extra_expense_drag" json:"extra_expense_drag"`
	CapitalGainsTax     decimal.Decimal `yaml:"capital_gains_tax" json:"capital_gains_tax"`
	WithdrawalMode      WithdrawalMode  `yaml:"withdrawal_mode" json:"withdrawal_mode"`
}

// Years returns the number of contribution years.
func (p ParameterSet) Years() int {
	return p.WithdrawAge - p.StartAge
}

// Months returns the simulated horizon in months.
func (p ParameterSet) Months() int {
	return p.Years() * 12
}

// startMonthIndex normalizes StartMonth: the zero value means January.
func (p ParameterSet) startMonthIndex() int {
	if p.StartMonth == 0 {
		return 0
	}
	return int(p.StartMonth) - 1
}

// CalendarYear maps a month index (0-based from the first contribution) to the
// calendar year it falls in.
func (p ParameterSet) CalendarYear(monthIndex int) int {
	return p.StartYear + (p.startMonthIndex()+monthIndex)/12
}

// AgeAt returns the saver's age in whole years after monthsElapsed months.
func (p ParameterSet) AgeAt(monthsElapsed int) int {
	return p.StartAge + monthsElapsed/12
}

// IsAnnuityEligible reports whether the withdrawal age qualifies for a
// tax-free annuity conversion.
func (p ParameterSet) IsAnnuityEligible() bool {
	return p.WithdrawAge >= AnnuityMinAge
}

var minusOne = decimal.NewFromInt(-1)

// Validate checks the semantic constraints on the parameter set. It returns an
// *InvalidParameterError for the first violation found. Fee levels above the
// legal maxima are not an error; see ValidateFees.
func (p ParameterSet) Validate() error {
	if p.StartAge <= 0 {
		return &InvalidParameterError{Field: "start_age", Reason: "must be positive"}
	}
	if p.WithdrawAge < p.StartAge {
		return &InvalidParameterError{Field: "withdraw_age", Reason: fmt.Sprintf("must be >= start_age (%d)", p.StartAge)}
	}
	if p.StartYear <= 0 {
		return &InvalidParameterError{Field: "start_year", Reason: "must be a calendar year"}
	}
	if p.StartMonth < 0 || p.StartMonth > time.December {
		return &InvalidParameterError{Field: "start_month", Reason: "must be between 1 and 12"}
	}
	if p.MonthlyContribution.IsNegative() {
		return &InvalidParameterError{Field: "monthly_contribution", Reason: "must be non-negative"}
	}
	if p.AnnualReturn.LessThan(minusOne) {
		return &InvalidParameterError{Field: "annual_return", Reason: "cannot be below -100%"}
	}
	if p.Inflation.LessThan(minusOne) {
		return &InvalidParameterError{Field: "inflation", Reason: "cannot be below -100%"}
	}
	for _, f := range []struct {
		name string
		rate decimal.Decimal
	}{
		{"aum_fee", p.AUMFee},
		{"deposit_fee", p.DepositFee},
		{"extra_expense_drag", p.ExtraExpenseDrag},
		{"capital_gains_tax", p.CapitalGainsTax},
	} {
		if f.rate.IsNegative() || f.rate.GreaterThan(decimal.NewFromInt(1)) {
			return &InvalidParameterError{Field: f.name, Reason: "must be between 0 and 1"}
		}
	}
	if !p.WithdrawalMode.Valid() {
		return &InvalidParameterError{Field: "withdrawal_mode", Reason: fmt.Sprintf("unknown mode %q", string(p.WithdrawalMode))}
	}
	return nil
}

// ValidateFees compares the configured fees against the legal maxima and
// returns a warning per breach. Breaches are informational: intentionally
// non-compliant fee levels are legitimate inputs for sensitivity analysis.
func (p ParameterSet) ValidateFees() []FeeComplianceWarning {
	var warnings []FeeComplianceWarning
	if p.AUMFee.GreaterThan(MaxFeeAUM) {
		warnings = append(warnings, FeeComplianceWarning{Fee: "aum_fee", Rate: p.AUMFee, LegalMax: MaxFeeAUM})
	}
	if p.DepositFee.GreaterThan(MaxFeeDeposit) {
		warnings = append(warnings, FeeComplianceWarning{Fee: "deposit_fee", Rate: p.DepositFee, LegalMax: MaxFeeDeposit})
	}
	return warnings
}

// FeeComplianceWarning flags a fee input above the legal maximum. It is
// attached to the scenario result, never raised as an error.
type FeeComplianceWarning struct {
	Fee      string          `json:"fee"`
	Rate     decimal.Decimal `json:"rate"`
	LegalMax decimal.Decimal `json:"legal_max"`
}

func (w FeeComplianceWarning) String() string {
	return fmt.Sprintf("%s %s%% exceeds legal maximum %s%%",
		w.Fee,
		w.Rate.Mul(decimal.NewFromInt(100)).StringFixed(2),
		w.LegalMax.Mul(decimal.NewFromInt(100)).StringFixed(2))
}
