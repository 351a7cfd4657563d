// Package utils holds small parsing helpers shared by the market-data layer
// and the screener. Exchange exports quote numbers as display text ("12.5%",
// "3.2年", "128天", "-" for missing), so everything here is ok-style: a false
// second return means the field was absent or a placeholder, never an error.
package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// placeholders are the strings jisilu exports use for missing values.
func isPlaceholder(s string) bool {
	switch s {
	case "", "-", "—", "nan", "NaN":
		return true
	}
	return false
}

// ParseFloat parses a plain decimal number, tolerating thousands separators.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if isPlaceholder(s) {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseDecimal parses a quoted money amount into an exact decimal.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if isPlaceholder(s) {
		return decimal.Decimal{}, false
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParsePercent parses "12.5%" (or a bare number) into 12.5.
func ParsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return ParseFloat(s)
}

// ParseYears parses a remaining-tenor field quoted either in years ("3.2年")
// or in days ("128天").
func ParseYears(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if isPlaceholder(s) {
		return 0, false
	}
	if v, ok := ParseFloat(strings.TrimSuffix(s, "年")); ok && strings.HasSuffix(s, "年") {
		return v, true
	}
	if v, ok := ParseFloat(strings.TrimSuffix(s, "天")); ok && strings.HasSuffix(s, "天") {
		return v / 365.0, true
	}
	return ParseFloat(s)
}

// YearsBetween is the ACT/365F year fraction between two dates, used when a
// maturity date is available instead of a quoted tenor.
func YearsBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24 / 365.0
}
