package money

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestConstructors(t *testing.T) {
	m := New(12.345)
	if m.String() != "12.35" { // rounded for display
		t.Fatalf("New display mismatch: got %s", m.String())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := FromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("FromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}

	m3, err := FromString("83641.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m3.String() != "83641.00" {
		t.Fatalf("FromString display mismatch: got %s", m3.String())
	}

	if _, err := FromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}
}

func TestRounding(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.355", "2.36"},
	}
	for _, c := range cases {
		m, _ := FromString(c.in)
		got := m.Round().String()
		if got != c.out {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestPeriodConversions(t *testing.T) {
	m := New(1000)
	if got := m.Annual().String(); got != "12000.00" {
		t.Fatalf("Annual got %s", got)
	}
	if got := m.Annual().Monthly().String(); got != "1000.00" {
		t.Fatalf("Monthly after Annual got %s", got)
	}
}

func TestMinMaxAndFormat(t *testing.T) {
	a, b := New(10), New(20)
	if !Min(a, b).Decimal.Equal(a.Decimal) {
		t.Fatalf("Min mismatch")
	}
	if !Max(a, b).Decimal.Equal(b.Decimal) {
		t.Fatalf("Max mismatch")
	}
	if got := Zero().Format(); got != "₪0.00" {
		t.Fatalf("Format got %s", got)
	}
	if got := a.Add(b).Sub(a).String(); got != "20.00" {
		t.Fatalf("arithmetic got %s", got)
	}
}
