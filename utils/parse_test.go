package utils

import (
	"math"
	"testing"
	"time"
)

func TestParseFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.5", 12.5, true},
		{" 12.5 ", 12.5, true},
		{"1,234.5", 1234.5, true},
		{"-3.2", -3.2, true},
		{"-", 0, false},
		{"—", 0, false},
		{"", 0, false},
		{"nan", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseFloat(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseFloat(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	t.Parallel()

	d, ok := ParseDecimal("113.00")
	if !ok || d.String() != "113" {
		t.Fatalf("ParseDecimal(113.00) = %v, %v", d, ok)
	}
	if _, ok := ParseDecimal("-"); ok {
		t.Fatal("placeholder parsed as decimal")
	}
}

func TestParsePercent(t *testing.T) {
	t.Parallel()

	if got, ok := ParsePercent("12.5%"); !ok || got != 12.5 {
		t.Errorf("ParsePercent(12.5%%) = %v, %v", got, ok)
	}
	if got, ok := ParsePercent("-4.38%"); !ok || got != -4.38 {
		t.Errorf("ParsePercent(-4.38%%) = %v, %v", got, ok)
	}
	if got, ok := ParsePercent("30"); !ok || got != 30 {
		t.Errorf("ParsePercent(30) = %v, %v", got, ok)
	}
	if _, ok := ParsePercent("-"); ok {
		t.Error("placeholder parsed as percent")
	}
}

func TestParseYears(t *testing.T) {
	t.Parallel()

	if got, ok := ParseYears("3.2年"); !ok || got != 3.2 {
		t.Errorf("ParseYears(3.2年) = %v, %v", got, ok)
	}
	if got, ok := ParseYears("128天"); !ok || math.Abs(got-128.0/365) > 1e-12 {
		t.Errorf("ParseYears(128天) = %v, %v", got, ok)
	}
	if got, ok := ParseYears("2.26"); !ok || got != 2.26 {
		t.Errorf("ParseYears(2.26) = %v, %v", got, ok)
	}
	if _, ok := ParseYears("-"); ok {
		t.Error("placeholder parsed as years")
	}
}

func TestYearsBetween(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 365)
	if got := YearsBetween(start, end); math.Abs(got-1) > 1e-12 {
		t.Fatalf("YearsBetween = %v, want 1", got)
	}
}
