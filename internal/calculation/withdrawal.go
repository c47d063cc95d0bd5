package calculation

import (
	"github.com/gemelfund/provident-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// EvaluateWithdrawal converts an account state into a withdrawal result
// under the parameter set's mode and tax rate.
//
// Tax branching:
//   - annuity at or after the eligibility age: no tax.
//   - annuity before the eligibility age: *domain.IneligibleAnnuityError.
//     There is no silent fallback to lump-sum treatment.
//   - lump sum: capital gains tax on the real (inflation-adjusted) gain.
func EvaluateWithdrawal(state domain.AccountState, params domain.ParameterSet) (domain.WithdrawalResult, error) {
	switch params.WithdrawalMode {
	case domain.ModeAnnuity:
		return EvaluateSplitWithdrawal(state, params, decimal.NewFromInt(1))
	case domain.ModeLumpSum:
		return EvaluateSplitWithdrawal(state, params, decimal.Zero)
	default:
		return domain.WithdrawalResult{}, &domain.InvalidParameterError{
			Field: "withdrawal_mode", Reason: "unknown mode " + string(params.WithdrawalMode),
		}
	}
}

// EvaluateSplitWithdrawal taxes a partial withdrawal: the fraction p of the
// balance is converted to an annuity and the remaining (1-p) is taken as a
// lump sum, with the basis pro-rated the same way. p=1 with an eligible age
// owes no tax; p=0 matches a pure lump-sum evaluation.
func EvaluateSplitWithdrawal(state domain.AccountState, params domain.ParameterSet, p decimal.Decimal) (domain.WithdrawalResult, error) {
	if p.IsNegative() || p.GreaterThan(one) {
		return domain.WithdrawalResult{}, &domain.InvalidParameterError{
			Field: "split_fraction", Reason: "must be between 0 and 1",
		}
	}

	age := params.AgeAt(state.MonthIndex + 1)
	if p.IsPositive() && age < domain.AnnuityMinAge {
		return domain.WithdrawalResult{}, &domain.IneligibleAnnuityError{Age: age, MinAge: domain.AnnuityMinAge}
	}

	gross := state.GrossBalance
	basis := state.IndexedBasis
	realGain := gross.Sub(basis)
	if realGain.IsNegative() {
		realGain = decimal.Zero
	}

	// The annuity portion is tax-free; only the lump-sum share of the real
	// gain is taxed.
	lumpShare := one.Sub(p)
	taxOwed := params.CapitalGainsTax.Mul(realGain).Mul(lumpShare)

	mode := params.WithdrawalMode
	if mode == "" {
		mode = domain.ModeLumpSum
	}

	return domain.WithdrawalResult{
		Mode:            mode,
		AgeAtWithdrawal: age,
		SplitFraction:   p,
		GrossBalance:    gross,
		RealBasis:       basis,
		RealGain:        realGain,
		TaxOwed:         taxOwed,
		NetBalance:      gross.Sub(taxOwed),
	}, nil
}

// PotentialLumpSumTax returns the tax a lump-sum withdrawal of the same state
// would owe. For an eligible annuity this is the tax saved by the election.
func PotentialLumpSumTax(state domain.AccountState, params domain.ParameterSet) decimal.Decimal {
	realGain := state.GrossBalance.Sub(state.IndexedBasis)
	if realGain.IsNegative() {
		realGain = decimal.Zero
	}
	return params.CapitalGainsTax.Mul(realGain)
}
