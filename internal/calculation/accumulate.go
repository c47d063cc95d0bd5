package calculation

import (
	"github.com/gemelfund/provident-calculator/internal/domain"
	"github.com/gemelfund/provident-calculator/pkg/rateutil"
	"github.com/shopspring/decimal"
)

// Engine produces the month-by-month account state sequence for one
// parameter set. It is pure computation: no I/O, no shared state, identical
// inputs always produce the identical sequence.
type Engine struct {
	Logger Logger
}

// NewEngine creates an accumulation engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger. Nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// simRates are the per-month rates derived once from the annual figures.
type simRates struct {
	ret        decimal.Decimal // (1+R)^(1/12) - 1
	fee        decimal.Decimal // F_a/12 + drag/12
	inflation  decimal.Decimal // (1+pi)^(1/12) - 1
	depositFee decimal.Decimal // F_d, charged per deposit
}

func deriveSimRates(params domain.ParameterSet) simRates {
	return simRates{
		ret:        rateutil.MonthlyCompoundRate(params.AnnualReturn),
		fee:        rateutil.MonthlyLinearRate(params.AUMFee).Add(rateutil.MonthlyLinearRate(params.ExtraExpenseDrag)),
		inflation:  rateutil.MonthlyCompoundRate(params.Inflation),
		depositFee: params.DepositFee,
	}
}

// Accumulate runs the simulation from month 0 to the withdrawal month and
// returns one immutable state per month. The parameter set is validated
// first; after that the run cannot fail except on an unresolvable cap year.
func (e *Engine) Accumulate(params domain.ParameterSet) ([]domain.AccountState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	months := params.Months()
	rates := deriveSimRates(params)
	resolver := NewCapResolver(params.CapSchedule)

	states := make([]domain.AccountState, 0, months)
	prev := domain.AccountState{MonthIndex: -1}

	for m := 0; m < months; m++ {
		year := params.CalendarYear(m)
		cap, err := resolver.CapFor(year)
		if err != nil {
			return nil, err
		}
		// The indexed basis is anchored to the final month of the series, so
		// a deposit made now is inflated over the periods still to come.
		remaining := months - 1 - m
		next := advanceMonth(prev, params.MonthlyContribution, cap, rates, m, year, remaining)
		states = append(states, next)
		prev = next
	}

	if n := len(states); n > 0 {
		last := states[n-1]
		e.Logger.Debugf("accumulated %d months: gross=%s contributions=%s basis=%s",
			n, last.GrossBalance.StringFixed(2), last.CumulativeContributions.StringFixed(2), last.IndexedBasis.StringFixed(2))
	}
	return states, nil
}

var one = decimal.NewFromInt(1)

// advanceMonth computes one month's transition as a pure function of the
// prior state. The step order is load-bearing: cap headroom is measured
// before the deposit, the deposit fee applies to the truncated deposit, the
// basis records the gross (pre-fee) deposit, and return plus AUM fee apply
// to the post-deposit balance. Unused headroom never rolls into later
// months; the cap is a hard annual ceiling.
func advanceMonth(prev domain.AccountState, requested, cap decimal.Decimal, rates simRates, monthIndex, calendarYear, remainingPeriods int) domain.AccountState {
	ytd := prev.YearToDateContributions
	if calendarYear != prev.CalendarYear {
		ytd = decimal.Zero
	}

	allowed := cap.Sub(ytd)
	if allowed.IsNegative() {
		allowed = decimal.Zero
	}
	deposit := requested
	capBinding := false
	if deposit.GreaterThan(allowed) {
		deposit = allowed
		capBinding = true
	}

	netDeposit := deposit.Mul(one.Sub(rates.depositFee))

	indexedDeposit := deposit.Mul(rateutil.CompoundFactor(rates.inflation, remainingPeriods))

	balance := prev.GrossBalance.Add(netDeposit).
		Mul(one.Add(rates.ret)).
		Mul(one.Sub(rates.fee))

	return domain.AccountState{
		MonthIndex:              monthIndex,
		CalendarYear:            calendarYear,
		GrossBalance:            balance,
		Contribution:            deposit,
		CumulativeContributions: prev.CumulativeContributions.Add(deposit),
		IndexedBasis:            prev.IndexedBasis.Add(indexedDeposit),
		YearToDateContributions: ytd.Add(deposit),
		CapBinding:              capBinding,
	}
}
