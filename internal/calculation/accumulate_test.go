package calculation

import (
	"testing"
	"time"

	"github.com/gemelfund/provident-calculator/internal/domain"
	"github.com/gemelfund/provident-calculator/pkg/rateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testParams is a realistic base scenario: a 30 year old contributing 3000
// NIS a month until 60 under the 2026 cap.
func testParams() domain.ParameterSet {
	return domain.ParameterSet{
		Name:                "base",
		StartAge:            30,
		WithdrawAge:         60,
		StartYear:           2026,
		MonthlyContribution: decimal.NewFromInt(3000),
		CapSchedule: domain.CapSchedule{
			ByYear: capTable(map[int]float64{2026: 83641}),
		},
		AnnualReturn:    decimal.NewFromFloat(0.05),
		Inflation:       decimal.NewFromFloat(0.025),
		AUMFee:          decimal.NewFromFloat(0.0065),
		CapitalGainsTax: decimal.NewFromFloat(0.25),
		WithdrawalMode:  domain.ModeAnnuity,
	}
}

func TestCapTruncationExactness(t *testing.T) {
	// 10,000/month against an 83,641 cap: month 9 of the first year must be
	// truncated to exactly 83,641 - 80,000 = 3,641, later months to zero.
	params := testParams()
	params.StartAge = 59
	params.WithdrawAge = 60
	params.MonthlyContribution = decimal.NewFromInt(10000)

	states, err := NewEngine().Accumulate(params)
	require.NoError(t, err)
	require.Len(t, states, 12)

	for m := 0; m < 8; m++ {
		assert.Equal(t, "10000.00", states[m].Contribution.StringFixed(2), "month %d", m)
		assert.False(t, states[m].CapBinding, "month %d", m)
	}
	assert.Equal(t, "3641.00", states[8].Contribution.StringFixed(2))
	assert.True(t, states[8].CapBinding)
	for m := 9; m < 12; m++ {
		assert.True(t, states[m].Contribution.IsZero(), "month %d", m)
		assert.True(t, states[m].CapBinding, "month %d", m)
	}
	assert.Equal(t, "83641.00", states[11].CumulativeContributions.StringFixed(2))
}

func TestYearToDateNeverExceedsCap(t *testing.T) {
	params := testParams()
	params.MonthlyContribution = decimal.NewFromInt(10000)
	params.CapSchedule.ProjectionGrowth = decimal.NewFromFloat(0.02)

	resolver := NewCapResolver(params.CapSchedule)
	states, err := NewEngine().Accumulate(params)
	require.NoError(t, err)
	require.Len(t, states, params.Months())

	for _, s := range states {
		cap, err := resolver.CapFor(s.CalendarYear)
		require.NoError(t, err)
		assert.True(t, s.YearToDateContributions.LessThanOrEqual(cap),
			"month %d: ytd %s exceeds cap %s", s.MonthIndex, s.YearToDateContributions, cap)
	}
}

func TestContributionSumWithZeroFees(t *testing.T) {
	// With zero fees the cumulative contributions equal the requested sum
	// when the cap never binds.
	params := testParams()
	params.AUMFee = decimal.Zero
	params.DepositFee = decimal.Zero

	states, err := NewEngine().Accumulate(params)
	require.NoError(t, err)

	months := int64(params.Months())
	want := decimal.NewFromInt(3000 * months)
	final := states[len(states)-1]
	assert.True(t, final.CumulativeContributions.Equal(want),
		"got %s want %s", final.CumulativeContributions, want)
}

func TestFirstMonthBalanceFormula(t *testing.T) {
	// B_1 = D_0 * (1 - F_d) * (1 + r_m) * (1 - f_m): the deposit fee applies
	// before growth, the AUM fee after.
	params := testParams()
	params.MonthlyContribution = decimal.NewFromInt(1000)
	params.DepositFee = decimal.NewFromFloat(0.04)

	states, err := NewEngine().Accumulate(params)
	require.NoError(t, err)

	one := decimal.NewFromInt(1)
	rm := rateutil.MonthlyCompoundRate(params.AnnualReturn)
	fm := rateutil.MonthlyLinearRate(params.AUMFee)
	want := decimal.NewFromInt(1000).
		Mul(one.Sub(params.DepositFee)).
		Mul(one.Add(rm)).
		Mul(one.Sub(fm))
	assert.True(t, states[0].GrossBalance.Equal(want),
		"got %s want %s", states[0].GrossBalance, want)
}

func TestIndexedBasisTracksInflation(t *testing.T) {
	t.Run("zero inflation equals nominal contributions", func(t *testing.T) {
		params := testParams()
		params.Inflation = decimal.Zero

		states, err := NewEngine().Accumulate(params)
		require.NoError(t, err)
		final := states[len(states)-1]
		assert.True(t, final.IndexedBasis.Equal(final.CumulativeContributions))
	})

	t.Run("positive inflation grows the basis and keeps it monotone", func(t *testing.T) {
		params := testParams()

		states, err := NewEngine().Accumulate(params)
		require.NoError(t, err)

		prev := decimal.Zero
		for _, s := range states {
			assert.True(t, s.IndexedBasis.GreaterThanOrEqual(prev), "month %d", s.MonthIndex)
			prev = s.IndexedBasis
		}
		final := states[len(states)-1]
		assert.True(t, final.IndexedBasis.GreaterThan(final.CumulativeContributions))
	})
}

func TestDeterministicReplay(t *testing.T) {
	params := testParams()

	first, err := NewEngine().Accumulate(params)
	require.NoError(t, err)
	second, err := NewEngine().Accumulate(params)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i], "month %d diverged", i)
	}
}

func TestNegativeReturnCompounds(t *testing.T) {
	params := testParams()
	params.AnnualReturn = decimal.NewFromFloat(-0.10)
	params.Inflation = decimal.Zero
	params.AUMFee = decimal.Zero

	states, err := NewEngine().Accumulate(params)
	require.NoError(t, err)

	final := states[len(states)-1]
	assert.True(t, final.GrossBalance.IsPositive())
	assert.True(t, final.GrossBalance.LessThan(final.CumulativeContributions),
		"negative return must erode below contributions: %s vs %s",
		final.GrossBalance, final.CumulativeContributions)
}

func TestMidYearStartKeepsFullAnnualCap(t *testing.T) {
	// Starting in November still leaves the whole 83,641 cap for the two
	// remaining months of that calendar year, and January resets the count.
	params := testParams()
	params.StartAge = 59
	params.WithdrawAge = 60
	params.StartMonth = time.November
	params.MonthlyContribution = decimal.NewFromInt(50000)
	params.CapSchedule.ByYear[2027] = decimal.NewFromInt(83641)

	states, err := NewEngine().Accumulate(params)
	require.NoError(t, err)

	assert.Equal(t, "50000.00", states[0].Contribution.StringFixed(2)) // November
	assert.Equal(t, "33641.00", states[1].Contribution.StringFixed(2)) // December, truncated
	assert.True(t, states[1].CapBinding)
	assert.Equal(t, 2027, states[2].CalendarYear)
	assert.Equal(t, "50000.00", states[2].Contribution.StringFixed(2)) // January, fresh cap
	assert.Equal(t, "50000.00", states[2].YearToDateContributions.StringFixed(2))
}

func TestEarlierStartNeverTrailsLaterStart(t *testing.T) {
	// Positive return, zero fees: starting earlier can only help.
	base := testParams()
	base.AUMFee = decimal.Zero
	base.Inflation = decimal.Zero

	var prevFinal decimal.Decimal
	for i, age := range []int{30, 40, 50, 59} {
		params := base
		params.StartAge = age
		states, err := NewEngine().Accumulate(params)
		require.NoError(t, err)
		final := states[len(states)-1].GrossBalance
		if i > 0 {
			assert.True(t, prevFinal.GreaterThanOrEqual(final),
				"start age %d final %s beat the earlier start %s", age, final, prevFinal)
		}
		prevFinal = final
	}
}

func TestAccumulateRejectsInvalidParameters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.ParameterSet)
		field  string
	}{
		{"start after withdrawal", func(p *domain.ParameterSet) { p.StartAge = 65 }, "withdraw_age"},
		{"zero start age", func(p *domain.ParameterSet) { p.StartAge = 0 }, "start_age"},
		{"negative contribution", func(p *domain.ParameterSet) { p.MonthlyContribution = decimal.NewFromInt(-1) }, "monthly_contribution"},
		{"return below -100%", func(p *domain.ParameterSet) { p.AnnualReturn = decimal.NewFromFloat(-1.5) }, "annual_return"},
		{"aum fee above 1", func(p *domain.ParameterSet) { p.AUMFee = decimal.NewFromInt(2) }, "aum_fee"},
		{"negative deposit fee", func(p *domain.ParameterSet) { p.DepositFee = decimal.NewFromFloat(-0.01) }, "deposit_fee"},
		{"bad mode", func(p *domain.ParameterSet) { p.WithdrawalMode = "monthly" }, "withdrawal_mode"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			params := testParams()
			c.mutate(&params)

			_, err := NewEngine().Accumulate(params)
			var invalid *domain.InvalidParameterError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, c.field, invalid.Field)
		})
	}
}

func TestAccumulateFailsOnEmptyCapSchedule(t *testing.T) {
	params := testParams()
	params.CapSchedule = domain.CapSchedule{}

	_, err := NewEngine().Accumulate(params)
	var confErr *domain.ConfigurationError
	require.ErrorAs(t, err, &confErr)
}
