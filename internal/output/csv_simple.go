package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/gemelfund/provident-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "StartAge", "WithdrawAge", "Mode",
		"TotalContributions", "GrossBalance", "RealBasis", "RealGain",
		"TaxOwed", "NetBalance", "EffectiveTaxRate",
		"CapBindingMonths", "CapLimitedAmount",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		wd := sc.Withdrawal
		row := []string{
			sc.Name,
			strconv.Itoa(sc.Params.StartAge),
			strconv.Itoa(sc.Params.WithdrawAge),
			string(wd.Mode),
			sc.TotalContributions.StringFixed(2),
			wd.GrossBalance.StringFixed(2),
			wd.RealBasis.StringFixed(2),
			wd.RealGain.StringFixed(2),
			wd.TaxOwed.StringFixed(2),
			wd.NetBalance.StringFixed(2),
			sc.EffectiveTaxRate.StringFixed(4),
			strconv.Itoa(sc.CapBindingMonths),
			sc.CapLimitedAmount.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
