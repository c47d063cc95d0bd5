package calculation

import (
	"fmt"
	"testing"

	"github.com/gemelfund/provident-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScenarioEndToEnd(t *testing.T) {
	runner := NewRunner()
	params := testParams()

	res, err := runner.RunScenario(params)
	require.NoError(t, err)

	assert.Len(t, res.States, params.Months())
	assert.Len(t, res.Yearly, params.Years())
	assert.True(t, res.Withdrawal.TaxOwed.IsZero(), "eligible annuity must be tax free")
	assert.True(t, res.Withdrawal.GrossBalance.GreaterThan(res.TotalContributions))
	assert.Equal(t, 0, res.CapBindingMonths)
	assert.Empty(t, res.Warnings)
	assert.True(t, res.TaxSavingsFromAnnuity.IsPositive(),
		"a positive real gain means the annuity election saved tax")
}

func TestRunScenarioCapMetrics(t *testing.T) {
	runner := NewRunner()
	params := testParams()
	params.StartAge = 59
	params.WithdrawAge = 60
	params.MonthlyContribution = decimal.NewFromInt(10000)

	res, err := runner.RunScenario(params)
	require.NoError(t, err)

	// Month 9 truncated plus three fully blocked months.
	assert.Equal(t, 4, res.CapBindingMonths)
	// 6,359 lost in month 9 and 10,000 in each of the last three months.
	assert.Equal(t, "36359.00", res.CapLimitedAmount.StringFixed(2))
	assert.Equal(t, "83641.00", res.TotalContributions.StringFixed(2))
}

func TestRunScenarioFlagsNonCompliantFees(t *testing.T) {
	runner := NewRunner()
	params := testParams()
	params.AUMFee = decimal.NewFromFloat(0.02) // above the 1.05% legal maximum

	res, err := runner.RunScenario(params)
	require.NoError(t, err, "non-compliant fees must warn, not fail")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "aum_fee", res.Warnings[0].Fee)
}

func TestRunScenarioEffectiveTaxRate(t *testing.T) {
	runner := NewRunner()
	params := testParams()
	params.WithdrawalMode = domain.ModeLumpSum
	params.Inflation = decimal.Zero

	res, err := runner.RunScenario(params)
	require.NoError(t, err)

	// With zero inflation the real gain equals the nominal gain, so the
	// effective rate equals the statutory rate.
	diff := res.EffectiveTaxRate.Sub(params.CapitalGainsTax).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(1e-9)),
		"effective rate %s vs statutory %s", res.EffectiveTaxRate, params.CapitalGainsTax)
}

func TestCompareScenariosPreservesOrderAndMatchesSequential(t *testing.T) {
	runner := NewRunner()
	base := testParams()

	var sets []domain.ParameterSet
	for _, age := range []int{30, 40, 50} {
		p := base
		p.StartAge = age
		p.Name = fmt.Sprintf("Age %d", age)
		sets = append(sets, p)
	}

	comparison, err := runner.CompareScenarios(sets)
	require.NoError(t, err)
	require.Len(t, comparison.Scenarios, 3)

	for i, sc := range comparison.Scenarios {
		assert.Equal(t, sets[i].Name, sc.Name, "input order must be preserved")

		sequential, err := runner.RunScenario(sets[i])
		require.NoError(t, err)
		assert.True(t, sc.Withdrawal.NetBalance.Equal(sequential.Withdrawal.NetBalance),
			"parallel and sequential runs must agree for %s", sc.Name)
	}

	// Earlier start compounds longer, so the ranking is by start age.
	assert.Equal(t, []string{"Age 30", "Age 40", "Age 50"}, comparison.Ranking)
}

func TestCompareScenariosRejectsEmptyInput(t *testing.T) {
	runner := NewRunner()

	var invalid *domain.InvalidParameterError
	_, err := runner.CompareScenarios(nil)
	require.ErrorAs(t, err, &invalid)
}

func TestCompareScenariosPropagatesFailure(t *testing.T) {
	runner := NewRunner()
	good := testParams()
	bad := testParams()
	bad.Name = "bad"
	bad.StartAge = 0

	_, err := runner.CompareScenarios([]domain.ParameterSet{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestYearlyAggregation(t *testing.T) {
	runner := NewRunner()
	params := testParams()
	params.StartAge = 58
	params.WithdrawAge = 60

	res, err := runner.RunScenario(params)
	require.NoError(t, err)
	require.Len(t, res.Yearly, 2)

	first, second := res.Yearly[0], res.Yearly[1]
	assert.Equal(t, 1, first.Year)
	assert.Equal(t, 2026, first.CalendarYear)
	assert.Equal(t, 59, first.Age)
	assert.Equal(t, "36000.00", first.YTDContributions.StringFixed(2))
	assert.Equal(t, 2027, second.CalendarYear)
	assert.Equal(t, 60, second.Age)
	assert.Equal(t, "72000.00", second.CumulativeContributions.StringFixed(2))
	assert.True(t, second.Balance.Equal(res.FinalState().GrossBalance))
}
