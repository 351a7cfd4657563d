package jisilu

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		kind Kind
		want ClauseTerms
	}{
		{
			name: "redeem clause with chinese numerals",
			text: "在转股期内，如果公司A股股票连续三十个交易日中至少有十五个交易日的收盘价格不低于当期转股价格的130%（含130%），公司有权赎回",
			kind: KindRedeem,
			want: ClauseTerms{WindowDays: 30, SatisfyDays: 15, TriggerPct: 130, Direction: DirectionAbove},
		},
		{
			name: "adjust clause below direction",
			text: "当公司股票在任意连续三十个交易日中至少有十五个交易日的收盘价低于当期转股价格的85%时，董事会有权提出下修方案",
			kind: KindAdjust,
			want: ClauseTerms{WindowDays: 30, SatisfyDays: 15, TriggerPct: 85, Direction: DirectionBelow},
		},
		{
			name: "arabic day counts with spaces",
			text: "任何连续 20 个交易日中至少有 10 个交易日的收盘价高于当期转股价格的120%",
			kind: KindRedeem,
			want: ClauseTerms{WindowDays: 20, SatisfyDays: 10, TriggerPct: 120, Direction: DirectionAbove},
		},
		{
			name: "put clause with time limit",
			text: "在本次发行的可转换公司债券最后两个计息年度，如果公司股票在任何连续三十个交易日的收盘价格低于当期转股价的70%时，持有人有权回售",
			kind: KindPut,
			want: ClauseTerms{WindowDays: 30, TriggerPct: 70, Direction: DirectionBelow, TimeLimit: "最后两个计息年度"},
		},
		{
			name: "empty clause",
			text: "",
			kind: KindRedeem,
			want: ClauseTerms{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ParseClause(tc.text, tc.kind)
			got.Raw = "" // compared via inputs
			if got != tc.want {
				t.Fatalf("ParseClause = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestClauseTriggerPrice(t *testing.T) {
	t.Parallel()

	terms := ClauseTerms{TriggerPct: 130}
	got, ok := terms.TriggerPrice(decimal.NewFromFloat(10))
	if !ok || got.String() != "13" {
		t.Fatalf("TriggerPrice = %v, %v; want 13", got, ok)
	}

	if _, ok := (ClauseTerms{}).TriggerPrice(decimal.NewFromFloat(10)); ok {
		t.Error("TriggerPrice without a ratio should not resolve")
	}
	if _, ok := terms.TriggerPrice(decimal.Decimal{}); ok {
		t.Error("TriggerPrice without a conversion price should not resolve")
	}

	ratio, ok := ClauseTerms{TriggerPct: 85}.TriggerRatio()
	if !ok || ratio != 0.85 {
		t.Fatalf("TriggerRatio = %v, %v; want 0.85", ratio, ok)
	}
}

func TestParseProgress(t *testing.T) {
	t.Parallel()

	got, ok := ParseProgress("至少还需2天 13/15 | 30")
	if !ok || got.Satisfied != 13 || got.Window != 15 {
		t.Fatalf("ParseProgress = %+v, %v; want 13/15", got, ok)
	}
	if _, ok := ParseProgress("-"); ok {
		t.Error("placeholder parsed as progress")
	}
}
