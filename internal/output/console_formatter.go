package output

import (
	"bytes"
	"fmt"

	"github.com/gemelfund/provident-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PROVIDENT FUND SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if results.BaselineName != "" {
		fmt.Fprintf(&buf, "Baseline: %s\n", results.BaselineName)
	}
	fmt.Fprintln(&buf)

	for _, sc := range results.Scenarios {
		w := sc.Withdrawal
		fmt.Fprintf(&buf, "%s: Gross=%s Tax=%s Net=%s (%s at %d)\n",
			sc.Name,
			FormatNIS(w.GrossBalance),
			FormatNIS(w.TaxOwed),
			FormatNIS(w.NetBalance),
			string(w.Mode),
			w.AgeAtWithdrawal,
		)
		fmt.Fprintf(&buf, "  Contributions=%s RealBasis=%s RealGain=%s EffectiveTaxRate=%s\n",
			FormatNIS(sc.TotalContributions),
			FormatNIS(w.RealBasis),
			FormatNIS(w.RealGain),
			FormatPercentage(sc.EffectiveTaxRate),
		)
		if sc.CapBindingMonths > 0 {
			fmt.Fprintf(&buf, "  Cap binding in %d months, %s left uninvested\n",
				sc.CapBindingMonths, FormatNIS(sc.CapLimitedAmount))
		}
		if sc.TaxSavingsFromAnnuity.IsPositive() {
			fmt.Fprintf(&buf, "  Annuity election saves %s in tax\n", FormatNIS(sc.TaxSavingsFromAnnuity))
		}
		if delta, ok := results.NetDeltas[sc.Name]; ok && sc.Name != results.BaselineName {
			fmt.Fprintf(&buf, "  Net vs baseline: %s\n", FormatNIS(delta))
		}
		for _, warning := range sc.Warnings {
			fmt.Fprintf(&buf, "  WARNING: %s\n", warning)
		}
	}

	if len(results.Ranking) > 1 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Best net balance: %s\n", results.Ranking[0])
	}
	return buf.Bytes(), nil
}
