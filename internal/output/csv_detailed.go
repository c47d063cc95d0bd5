package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/gemelfund/provident-calculator/internal/domain"
)

// CSVDetailedExporter writes one row per simulated month for every scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario",
		"MonthIndex",
		"CalendarYear",
		"Age",
		"Contribution",
		"YearToDateContributions",
		"CumulativeContributions",
		"IndexedBasis",
		"GrossBalance",
		"CapBinding",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := range results.Scenarios {
		sc := &results.Scenarios[i]
		for _, st := range sc.States {
			row := []string{
				sc.Name,
				strconv.Itoa(st.MonthIndex),
				strconv.Itoa(st.CalendarYear),
				strconv.Itoa(sc.Params.AgeAt(st.MonthIndex)),
				st.Contribution.StringFixed(2),
				st.YearToDateContributions.StringFixed(2),
				st.CumulativeContributions.StringFixed(2),
				st.IndexedBasis.StringFixed(2),
				st.GrossBalance.StringFixed(2),
				strconv.FormatBool(st.CapBinding),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
