package calculation

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gemelfund/provident-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Runner orchestrates the accumulation engine and the withdrawal evaluator
// across one or more parameter sets. Each run is an independent pure
// computation, so multi-scenario comparisons execute concurrently.
type Runner struct {
	Engine *Engine
	Logger Logger
}

// NewRunner creates a runner with a fresh engine and a no-op logger.
func NewRunner() *Runner {
	return &Runner{Engine: NewEngine(), Logger: NopLogger{}}
}

// SetLogger sets the logger on the runner and its engine. Nil restores the
// no-op logger.
func (r *Runner) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	r.Logger = l
	r.Engine.SetLogger(l)
}

// RunScenario simulates one parameter set end to end: monthly accumulation,
// yearly aggregation, withdrawal taxation and derived metrics. Fee levels
// above the legal maxima surface as warnings on the result, never as errors.
func (r *Runner) RunScenario(params domain.ParameterSet) (*domain.ScenarioResult, error) {
	states, err := r.Engine.Accumulate(params)
	if err != nil {
		return nil, err
	}

	result := &domain.ScenarioResult{
		Name:     params.Name,
		Params:   params,
		States:   states,
		Yearly:   aggregateYearly(params, states),
		Warnings: params.ValidateFees(),
	}

	final := result.FinalState()
	withdrawal, err := EvaluateWithdrawal(final, params)
	if err != nil {
		return nil, err
	}
	result.Withdrawal = withdrawal

	result.TotalContributions = final.CumulativeContributions
	for _, s := range states {
		if s.CapBinding {
			result.CapBindingMonths++
			result.CapLimitedAmount = result.CapLimitedAmount.Add(params.MonthlyContribution.Sub(s.Contribution))
		}
	}

	nominalGain := withdrawal.GrossBalance.Sub(result.TotalContributions)
	if nominalGain.IsPositive() {
		result.EffectiveTaxRate = withdrawal.TaxOwed.Div(nominalGain)
	}
	if params.WithdrawalMode == domain.ModeAnnuity && params.IsAnnuityEligible() {
		result.TaxSavingsFromAnnuity = PotentialLumpSumTax(final, params)
	}

	r.Logger.Infof("scenario %q: gross=%s tax=%s net=%s capBindingMonths=%d",
		params.Name, withdrawal.GrossBalance.StringFixed(2), withdrawal.TaxOwed.StringFixed(2),
		withdrawal.NetBalance.StringFixed(2), result.CapBindingMonths)
	return result, nil
}

// maxConcurrentScenarios bounds the goroutines used by CompareScenarios.
const maxConcurrentScenarios = 8

// CompareScenarios runs every parameter set and assembles the results in
// input order. Scenarios share no mutable state, so they run in parallel.
func (r *Runner) CompareScenarios(sets []domain.ParameterSet) (*domain.ScenarioComparison, error) {
	if len(sets) == 0 {
		return nil, &domain.InvalidParameterError{Field: "scenarios", Reason: "at least one scenario is required"}
	}

	results := make([]*domain.ScenarioResult, len(sets))
	errs := make([]error, len(sets))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentScenarios)
	for i := range sets {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			results[idx], errs[idx] = r.RunScenario(sets[idx])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("scenario %q failed: %w", sets[i].Name, err)
		}
	}

	comparison := &domain.ScenarioComparison{
		Scenarios: make([]domain.ScenarioResult, len(results)),
	}
	for i, res := range results {
		comparison.Scenarios[i] = *res
	}
	comparison.Ranking = rankByNetBalance(comparison.Scenarios)
	return comparison, nil
}

// rankByNetBalance orders scenario names best-first, ties broken by name for
// a stable ranking.
func rankByNetBalance(scenarios []domain.ScenarioResult) []string {
	ranked := append([]domain.ScenarioResult(nil), scenarios...)
	sort.SliceStable(ranked, func(i, j int) bool {
		ni, nj := ranked[i].Withdrawal.NetBalance, ranked[j].Withdrawal.NetBalance
		if !ni.Equal(nj) {
			return ni.GreaterThan(nj)
		}
		return ranked[i].Name < ranked[j].Name
	})
	names := make([]string, len(ranked))
	for i, sc := range ranked {
		names[i] = sc.Name
	}
	return names
}

// aggregateYearly collapses the monthly series into one record per calendar
// year, taken at the last simulated month of that year.
func aggregateYearly(params domain.ParameterSet, states []domain.AccountState) []domain.YearlyState {
	var yearly []domain.YearlyState
	for i, s := range states {
		last := i == len(states)-1 || states[i+1].CalendarYear != s.CalendarYear
		if !last {
			continue
		}
		yearly = append(yearly, domain.YearlyState{
			Year:                    len(yearly) + 1,
			CalendarYear:            s.CalendarYear,
			Age:                     params.AgeAt(s.MonthIndex + 1),
			Balance:                 s.GrossBalance,
			YTDContributions:        s.YearToDateContributions,
			CumulativeContributions: s.CumulativeContributions,
			IndexedBasis:            s.IndexedBasis,
		})
	}
	return yearly
}

// netDelta is a small helper shared by the comparison constructors.
func netDeltas(scenarios []domain.ScenarioResult, baseline string) map[string]decimal.Decimal {
	var base *domain.ScenarioResult
	for i := range scenarios {
		if scenarios[i].Name == baseline {
			base = &scenarios[i]
			break
		}
	}
	if base == nil {
		return nil
	}
	deltas := make(map[string]decimal.Decimal, len(scenarios))
	for _, sc := range scenarios {
		deltas[sc.Name] = sc.Withdrawal.NetBalance.Sub(base.Withdrawal.NetBalance)
	}
	return deltas
}
