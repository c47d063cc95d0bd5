package calculation

import (
	"fmt"

	"github.com/gemelfund/provident-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultComparisonAges are the start ages compared when none are given.
var DefaultComparisonAges = []int{30, 40, 50, 59}

// DefaultComparisonFees are the AUM fee levels compared when none are given:
// a negotiated low fee, the market average, and the legal maximum.
var DefaultComparisonFees = []decimal.Decimal{
	decimal.NewFromFloat(0.004),
	decimal.NewFromFloat(0.0065),
	decimal.NewFromFloat(0.0105),
}

// CompareStartAges runs the base scenario once per start age. Ages at or
// beyond the withdrawal age are skipped; the earliest age is the baseline
// for the net-balance deltas.
func (r *Runner) CompareStartAges(base domain.ParameterSet, ages []int) (*domain.ScenarioComparison, error) {
	if len(ages) == 0 {
		ages = DefaultComparisonAges
	}

	var sets []domain.ParameterSet
	earliest := 0
	for _, age := range ages {
		if age >= base.WithdrawAge {
			continue
		}
		p := base
		p.StartAge = age
		p.Name = fmt.Sprintf("Age %d", age)
		sets = append(sets, p)
		if earliest == 0 || age < earliest {
			earliest = age
		}
	}
	if len(sets) == 0 {
		return nil, &domain.InvalidParameterError{Field: "ages", Reason: "no start age below the withdrawal age"}
	}

	comparison, err := r.CompareScenarios(sets)
	if err != nil {
		return nil, err
	}
	comparison.BaselineName = fmt.Sprintf("Age %d", earliest)
	comparison.NetDeltas = netDeltas(comparison.Scenarios, comparison.BaselineName)
	return comparison, nil
}

// CompareWithdrawalModes runs the base scenario as a lump sum and as an
// annuity, leaving every other parameter untouched.
func (r *Runner) CompareWithdrawalModes(base domain.ParameterSet) (*domain.ScenarioComparison, error) {
	lump := base
	lump.WithdrawalMode = domain.ModeLumpSum
	lump.Name = "Lump Sum"

	annuity := base
	annuity.WithdrawalMode = domain.ModeAnnuity
	annuity.Name = "Annuity"

	return r.CompareScenarios([]domain.ParameterSet{lump, annuity})
}

// CompareFees runs the base scenario across AUM fee levels.
func (r *Runner) CompareFees(base domain.ParameterSet, fees []decimal.Decimal) (*domain.ScenarioComparison, error) {
	if len(fees) == 0 {
		fees = DefaultComparisonFees
	}

	sets := make([]domain.ParameterSet, len(fees))
	for i, fee := range fees {
		p := base
		p.AUMFee = fee
		p.Name = fmt.Sprintf("%s%% AUM Fee", fee.Mul(decimal.NewFromInt(100)).StringFixed(2))
		sets[i] = p
	}
	return r.CompareScenarios(sets)
}

// SensitivityAxis names a parameter and the values to sweep it over.
type SensitivityAxis struct {
	Param  string
	Values []decimal.Decimal
}

// SensitivityMatrix sweeps two parameters and records one output metric per
// cell. Supported params: annual_return, inflation, aum_fee, deposit_fee,
// monthly_contribution, start_age. Supported metrics: net_balance, tax_owed,
// gross_balance.
func (r *Runner) SensitivityMatrix(base domain.ParameterSet, rows, cols SensitivityAxis, metric string) (*domain.SensitivityMatrix, error) {
	if len(rows.Values) == 0 || len(cols.Values) == 0 {
		return nil, &domain.InvalidParameterError{Field: "sensitivity_axis", Reason: "both axes need at least one value"}
	}

	matrix := &domain.SensitivityMatrix{
		RowParam:  rows.Param,
		ColParam:  cols.Param,
		Metric:    metric,
		RowValues: rows.Values,
		ColValues: cols.Values,
		Cells:     make([][]decimal.Decimal, len(rows.Values)),
	}

	for i, rv := range rows.Values {
		matrix.Cells[i] = make([]decimal.Decimal, len(cols.Values))
		for j, cv := range cols.Values {
			p := base
			if err := applyParam(&p, rows.Param, rv); err != nil {
				return nil, err
			}
			if err := applyParam(&p, cols.Param, cv); err != nil {
				return nil, err
			}
			res, err := r.RunScenario(p)
			if err != nil {
				return nil, err
			}
			cell, err := extractMetric(res, metric)
			if err != nil {
				return nil, err
			}
			matrix.Cells[i][j] = cell
		}
	}
	return matrix, nil
}

func applyParam(p *domain.ParameterSet, param string, value decimal.Decimal) error {
	switch param {
	case "annual_return":
		p.AnnualReturn = value
	case "inflation":
		p.Inflation = value
	case "aum_fee":
		p.AUMFee = value
	case "deposit_fee":
		p.DepositFee = value
	case "monthly_contribution":
		p.MonthlyContribution = value
	case "start_age":
		p.StartAge = int(value.IntPart())
	default:
		return &domain.InvalidParameterError{Field: "sensitivity_axis", Reason: "unknown parameter " + param}
	}
	return nil
}

func extractMetric(res *domain.ScenarioResult, metric string) (decimal.Decimal, error) {
	switch metric {
	case "net_balance":
		return res.Withdrawal.NetBalance, nil
	case "tax_owed":
		return res.Withdrawal.TaxOwed, nil
	case "gross_balance":
		return res.Withdrawal.GrossBalance, nil
	default:
		return decimal.Zero, &domain.InvalidParameterError{Field: "metric", Reason: "unknown metric " + metric}
	}
}
