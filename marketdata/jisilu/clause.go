package jisilu

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// Direction is the price comparison in a trigger clause.
type Direction string

const (
	DirectionAbove Direction = "above" // 不低于 / 高于
	DirectionBelow Direction = "below" // 低于
)

// ClauseTerms is the normalized form of one free-text trigger clause: "in
// any WindowDays consecutive trading days, on at least SatisfyDays of them
// the close is above/below TriggerPct% of the conversion price".
type ClauseTerms struct {
	Raw         string
	WindowDays  int    // 0 when the clause did not state one
	SatisfyDays int    // 0 when the clause did not state one
	TriggerPct  int    // 0 when the clause did not state one
	Direction   Direction
	TimeLimit   string // put clauses only, e.g. "最后两个计息年度"
}

// Clause text mixes Arabic and Chinese numerals and optional whitespace.
var (
	reWindowDays  = regexp.MustCompile(`(?:连续|任意连续|任何连续)\s*(\d+|三十|二十|十五)\s*个?交易日`)
	reSatisfyDays = regexp.MustCompile(`至少(?:有)?\s*(\d+|三十|二十|十五|十)\s*个?交易日`)
	reTriggerPct  = regexp.MustCompile(`(\d+)%`)
	reAbove       = regexp.MustCompile(`不低于|高于`)
	reBelow       = regexp.MustCompile(`低于`)
	rePutWindow   = regexp.MustCompile(`最后([一二两三四五六七八九十]+)(?:个)?(?:计息)?年度`)
)

var chineseNumerals = map[string]int{
	"十":  10,
	"十五": 15,
	"二十": 20,
	"三十": 30,
}

func clauseDays(s string) int {
	if n, ok := chineseNumerals[s]; ok {
		return n
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseClause extracts the trigger terms from one legal clause. Fields the
// text does not state stay zero; an empty input yields zero terms.
func ParseClause(text string, kind Kind) ClauseTerms {
	terms := ClauseTerms{Raw: text}
	if text == "" {
		return terms
	}

	if m := reWindowDays.FindStringSubmatch(text); m != nil {
		terms.WindowDays = clauseDays(m[1])
	}
	if m := reSatisfyDays.FindStringSubmatch(text); m != nil {
		terms.SatisfyDays = clauseDays(m[1])
	}
	if m := reTriggerPct.FindStringSubmatch(text); m != nil {
		terms.TriggerPct, _ = strconv.Atoi(m[1])
	}

	// 不低于 contains 低于, so the above-check must run first.
	if reAbove.MatchString(text) {
		terms.Direction = DirectionAbove
	} else if reBelow.MatchString(text) {
		terms.Direction = DirectionBelow
	}

	if kind == KindPut {
		if m := rePutWindow.FindString(text); m != "" {
			terms.TimeLimit = m
		}
	}
	return terms
}

// TriggerPrice maps the parsed ratio onto a conversion price, producing the
// scalar trigger the valuation engine consumes. The ok return is false when
// the clause stated no ratio or the conversion price is missing.
func (c ClauseTerms) TriggerPrice(conversionPrice decimal.Decimal) (decimal.Decimal, bool) {
	if c.TriggerPct == 0 || conversionPrice.IsZero() {
		return decimal.Decimal{}, false
	}
	pct := decimal.New(int64(c.TriggerPct), -2) // 130 -> 1.30
	return conversionPrice.Mul(pct), true
}

// TriggerRatio is the parsed ratio as a fraction (130 -> 1.30), the form the
// reset model's threshold parameter takes.
func (c ClauseTerms) TriggerRatio() (float64, bool) {
	if c.TriggerPct == 0 {
		return 0, false
	}
	return float64(c.TriggerPct) / 100, true
}

var reProgress = regexp.MustCompile(`(\d+)/(\d+)`)

// ParseProgress extracts a "13/15" satisfied/window counter from a trigger
// day-count field; the surrounding text varies and is ignored.
func ParseProgress(s string) (Progress, bool) {
	m := reProgress.FindStringSubmatch(s)
	if m == nil {
		return Progress{}, false
	}
	sat, _ := strconv.Atoi(m[1])
	window, _ := strconv.Atoi(m[2])
	return Progress{Satisfied: sat, Window: window}, true
}
