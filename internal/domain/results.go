package domain

import (
	"github.com/shopspring/decimal"
)

// AccountState is an immutable snapshot of the account at the end of one
// simulated month. The engine produces a new state per month and never
// mutates earlier ones.
type AccountState struct {
	MonthIndex   int `json:"month_index"`
	CalendarYear int `json:"calendar_year"`

	// GrossBalance is the balance after this month's deposit, return and fees.
	GrossBalance decimal.Decimal `json:"gross_balance"`
	// Contribution is the deposit actually applied this month, after any cap
	// truncation and before the deposit fee.
	Contribution decimal.Decimal `json:"contribution"`
	// CumulativeContributions is the running sum of applied deposits.
	CumulativeContributions decimal.Decimal `json:"cumulative_contributions"`
	// IndexedBasis is the running sum of deposits, each projected forward by
	// inflation to the terminal valuation month.
	IndexedBasis decimal.Decimal `json:"indexed_basis"`
	// YearToDateContributions resets at each calendar-year boundary and is
	// what the annual cap is enforced against.
	YearToDateContributions decimal.Decimal `json:"year_to_date_contributions"`
	// CapBinding is true when this month's deposit was truncated by the cap.
	CapBinding bool `json:"cap_binding"`
}

// YearlyState aggregates the monthly series at calendar-year boundaries
// (the last simulated month of each calendar year).
type YearlyState struct {
	Year                    int             `json:"year"` // 1-indexed simulation year
	CalendarYear            int             `json:"calendar_year"`
	Age                     int             `json:"age"`
	Balance                 decimal.Decimal `json:"balance"`
	YTDContributions        decimal.Decimal `json:"ytd_contributions"`
	CumulativeContributions decimal.Decimal `json:"cumulative_contributions"`
	IndexedBasis            decimal.Decimal `json:"indexed_basis"`
}

// WithdrawalResult is the tax evaluation of a terminal account state.
type WithdrawalResult struct {
	Mode            WithdrawalMode  `json:"mode"`
	AgeAtWithdrawal int             `json:"age_at_withdrawal"`
	SplitFraction   decimal.Decimal `json:"split_fraction"` // annuity share; 1 for pure annuity, 0 for pure lump sum
	GrossBalance    decimal.Decimal `json:"gross_balance"`
	RealBasis       decimal.Decimal `json:"real_basis"`
	RealGain        decimal.Decimal `json:"real_gain"`
	TaxOwed         decimal.Decimal `json:"tax_owed"`
	NetBalance      decimal.Decimal `json:"net_balance"`
}

// ScenarioResult bundles everything produced for a single parameter set.
type ScenarioResult struct {
	Name       string           `json:"name"`
	Params     ParameterSet     `json:"params"`
	States     []AccountState   `json:"states"`
	Yearly     []YearlyState    `json:"yearly"`
	Withdrawal WithdrawalResult `json:"withdrawal"`

	// Derived metrics.
	TotalContributions    decimal.Decimal `json:"total_contributions"`
	CapBindingMonths      int             `json:"cap_binding_months"`
	CapLimitedAmount      decimal.Decimal `json:"cap_limited_amount"` // requested but not applied due to the cap
	EffectiveTaxRate      decimal.Decimal `json:"effective_tax_rate"` // tax over nominal gain
	TaxSavingsFromAnnuity decimal.Decimal `json:"tax_savings_from_annuity"`

	Warnings []FeeComplianceWarning `json:"warnings,omitempty"`
}

// FinalState returns the last account state, or the zero state for an empty
// horizon (start age equal to withdrawal age).
func (sr *ScenarioResult) FinalState() AccountState {
	if len(sr.States) == 0 {
		return AccountState{}
	}
	return sr.States[len(sr.States)-1]
}

// ScenarioComparison holds the results of multiple scenarios, in input order,
// plus a ranking by net balance.
type ScenarioComparison struct {
	BaselineName string           `json:"baseline_name,omitempty"`
	Scenarios    []ScenarioResult `json:"scenarios"`
	// Ranking lists scenario names ordered by net balance, best first.
	Ranking []string `json:"ranking"`
	// NetDeltas maps scenario name to net balance difference vs the baseline.
	NetDeltas map[string]decimal.Decimal `json:"net_deltas,omitempty"`
}

// SensitivityMatrix is a two-parameter grid of one output metric.
type SensitivityMatrix struct {
	RowParam  string              `json:"row_param"`
	ColParam  string              `json:"col_param"`
	Metric    string              `json:"metric"`
	RowValues []decimal.Decimal   `json:"row_values"`
	ColValues []decimal.Decimal   `json:"col_values"`
	Cells     [][]decimal.Decimal `json:"cells"`
}
