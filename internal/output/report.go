package output

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gemelfund/provident-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned for format names with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// GenerateReport formats the comparison and writes it to a timestamped file.
// The extension follows the formatter: txt for console, csv for the CSV
// variants, json for JSON.
func GenerateReport(results *domain.ScenarioComparison, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)",
			ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "),
			strings.Join(AvailableFormatAliases(), ", "))
	}
	_, err := WriteFormatted(f, results, extensionFor(f.Name()))
	return err
}

func extensionFor(name string) string {
	switch {
	case strings.Contains(name, "csv"):
		return "csv"
	case name == "json":
		return "json"
	default:
		return "txt"
	}
}

// AvailableFormatAliases returns the recognized format synonyms.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(aliasMap))
	for a := range aliasMap {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	return aliases
}
