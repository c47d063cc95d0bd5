//go:build unit

package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatNIS(t *testing.T) {
	v := decimal.NewFromFloat(1234.567)
	got := FormatNIS(v)
	want := "₪1234.57"
	if got != want {
		t.Errorf("FormatNIS(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(0.123456)
	got := FormatPercentage(v)
	want := "12.35%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}
