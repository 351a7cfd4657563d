package jisilu

import (
	"math"
	"path/filepath"
	"testing"
)

const fixtureDate = "2026-01-09"

func loadFixture(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Load("testdata", fixtureDate)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ds
}

func TestReadTableBOM(t *testing.T) {
	t.Parallel()

	tbl, err := ReadTable(filepath.Join("testdata", FileName(KindData, fixtureDate)))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("rows = %d, want 3", tbl.Len())
	}
	// The first header cell is behind a UTF-8 BOM in the export.
	if got := tbl.Field(0, "代码"); got != "123001" {
		t.Fatalf("code = %q, want 123001", got)
	}
	if err := tbl.Require("代码", "转债名称", "纯债价值"); err != nil {
		t.Fatalf("Require: %v", err)
	}
	if err := tbl.Require("不存在的列"); err == nil {
		t.Fatal("Require should fail for an absent column")
	}
}

func TestLatestFile(t *testing.T) {
	t.Parallel()

	path, err := LatestFile("testdata", KindData)
	if err != nil {
		t.Fatalf("LatestFile: %v", err)
	}
	if filepath.Base(path) != FileName(KindData, fixtureDate) {
		t.Fatalf("LatestFile = %s", path)
	}
	if _, err := LatestFile("testdata", Kind("nope")); err == nil {
		t.Fatal("LatestFile should fail for an unknown kind")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	bonds, err := Merge(loadFixture(t))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(bonds) != 3 {
		t.Fatalf("bonds = %d, want 3", len(bonds))
	}

	byCode := map[string]Bond{}
	for _, b := range bonds {
		byCode[b.Code] = b
	}

	b := byCode["123001"]
	if b.Name != "示例转债" || b.Suspended {
		t.Fatalf("unexpected bond: %+v", b)
	}
	if b.Price.String() != "121.35" || b.PureBondValue.String() != "95.2" {
		t.Errorf("quotes: price=%v pure=%v", b.Price, b.PureBondValue)
	}
	if math.Abs(b.PremiumPct+2.92) > 1e-12 {
		t.Errorf("premium = %v, want -2.92", b.PremiumPct)
	}
	if math.Abs(b.StockChangePct-1.52) > 1e-12 {
		t.Errorf("stock change = %v, want 1.52", b.StockChangePct)
	}
	if math.Abs(b.YearsLeft-3.2) > 1e-12 {
		t.Errorf("years left = %v, want 3.2", b.YearsLeft)
	}
	if !b.YTMKnown || math.Abs(b.YTMPreTaxPct+1.25) > 1e-12 {
		t.Errorf("ytm = %v known=%v", b.YTMPreTaxPct, b.YTMKnown)
	}
	if b.RedeemTrigger.String() != "13" || b.RedeemClause.TriggerPct != 130 {
		t.Errorf("redeem: trigger=%v clause=%+v", b.RedeemTrigger, b.RedeemClause)
	}
	if b.AdjustProgress != (Progress{Satisfied: 13, Window: 15}) {
		t.Errorf("adjust progress = %+v", b.AdjustProgress)
	}
	if b.PutTrigger.String() != "7" || b.PutClause.TimeLimit != "最后两个计息年度" {
		t.Errorf("put: trigger=%v clause=%+v", b.PutTrigger, b.PutClause)
	}

	// 123002 has no price quote and placeholder redeem fields; the adjust
	// trigger comes from the table, not the clause fallback.
	s := byCode["123002"]
	if !s.Suspended {
		t.Error("123002 should be suspended")
	}
	if s.StockChangePct != 0 {
		t.Errorf("123002 stock change = %v, want 0 for placeholder", s.StockChangePct)
	}
	if !s.RedeemTrigger.IsZero() {
		t.Errorf("123002 redeem trigger = %v, want none", s.RedeemTrigger)
	}
	if s.AdjustTrigger.String() != "7" || s.AdjustClause.TriggerPct != 90 {
		t.Errorf("123002 adjust: trigger=%v clause=%+v", s.AdjustTrigger, s.AdjustClause)
	}

	// 123003 is absent from every clause table.
	o := byCode["123003"]
	if !o.RedeemTrigger.IsZero() || !o.AdjustTrigger.IsZero() || !o.PutTrigger.IsZero() {
		t.Errorf("123003 should have no triggers: %+v", o)
	}
}

func TestLoadLatest(t *testing.T) {
	t.Parallel()

	ds, err := LoadLatest("testdata")
	if err != nil {
		t.Fatalf("LoadLatest: %v", err)
	}
	if ds.Data.Len() != 3 || ds.Redeem.Len() != 2 || ds.Adjust.Len() != 2 || ds.Put.Len() != 2 {
		t.Fatalf("unexpected table sizes: %d %d %d %d",
			ds.Data.Len(), ds.Redeem.Len(), ds.Adjust.Len(), ds.Put.Len())
	}
}
