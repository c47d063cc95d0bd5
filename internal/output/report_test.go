package output

import (
	"os"
	"strings"
	"testing"

	"github.com/gemelfund/provident-calculator/internal/domain"
)

func TestGenerateReportUnknownFormat(t *testing.T) {
	err := GenerateReport(&domain.ScenarioComparison{}, "definitely-not-a-format")
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	msg := err.Error()
	if !strings.Contains(msg, "unsupported report format") || !strings.Contains(msg, "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", msg)
	}
}

func TestGenerateReportWritesFile(t *testing.T) {
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() { _ = os.Chdir(orig) }()

	if err := GenerateReport(buildTestComparison(), "csv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	found := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "provident_report_") && strings.HasSuffix(e.Name(), ".csv") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a provident_report_*.csv file in %s", dir)
	}
}
