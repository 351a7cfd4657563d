// Package jisilu loads the four jisilu convertible-bond CSV exports (main
// quote table plus forced-redemption, downward-revision and put clause
// tables), parses the free-text legal clauses, and merges everything into one
// normalized Bond row per bond.
package jisilu

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind names one of the four export files, jisilu_cb_<kind>_<date>.csv.
type Kind string

const (
	KindData   Kind = "data"   // main quote table
	KindRedeem Kind = "redeem" // forced-redemption clauses
	KindAdjust Kind = "adjust" // downward-revision clauses
	KindPut    Kind = "put"    // put (sell-back) clauses
)

// Column headers as they appear in the exports.
const (
	colCode         = "代码"
	colBondCode     = "转债代码"
	colName         = "转债名称"
	colPrice        = "现价"
	colStockCode    = "正股代码"
	colStockName    = "正股名称"
	colStockPrice   = "正股价"
	colStockPB      = "正股PB"
	colStockChange  = "正股涨跌"
	colConvPrice    = "转股价"
	colConvValue    = "转股价值"
	colPremium      = "转股溢价率"
	colPureBond     = "纯债价值"
	colRating       = "评级"
	colYearsLeft    = "剩余年限"
	colSizeLeft     = "剩余规模(亿元)"
	colYTMPreTax    = "到期税前收益"
	colRedeemPrice  = "强赎价"
	colRedeemTrig   = "强赎触发价"
	colRedeemCount  = "强赎天计数"
	colRedeemClause = "强赎条款"
	colAdjustTrig   = "下修触发价"
	colAdjustCount  = "下修天计数"
	colAdjustClause = "下修条款"
	colPutPrice     = "回售价"
	colPutTrig      = "回售触发价"
	colPutCount     = "回售触及天数"
	colPutClause    = "回售条款"
)

// Table is one loaded CSV export: a header index plus raw rows.
type Table struct {
	header map[string]int
	rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Field returns the named column of row i, or "" when the column is absent
// or the row is ragged.
func (t *Table) Field(i int, col string) string {
	idx, ok := t.header[col]
	if !ok || i < 0 || i >= len(t.rows) || idx >= len(t.rows[i]) {
		return ""
	}
	return t.rows[i][idx]
}

// Require verifies the columns a caller is about to read are present.
func (t *Table) Require(cols ...string) error {
	for _, col := range cols {
		if _, ok := t.header[col]; !ok {
			return fmt.Errorf("missing column %q", col)
		}
	}
	return nil
}

// Dataset bundles the four tables for one export date.
type Dataset struct {
	Data   *Table
	Redeem *Table
	Adjust *Table
	Put    *Table
}

// Progress is a partially satisfied trigger counter, quoted like "13/15".
type Progress struct {
	Satisfied int
	Window    int
}

// Bond is one fully merged row. Quoted money fields are exact decimals; a
// zero decimal means the export had no quote. Percent fields are plain
// numbers (12.5 for "12.5%").
type Bond struct {
	Code       string
	Name       string
	StockCode  string
	StockName  string
	Price      decimal.Decimal // bond price per 100 face
	StockPrice decimal.Decimal
	StockPB    float64
	// StockChangePct is the stock's daily move, 1.5 for "1.50%".
	StockChangePct float64
	Suspended      bool // derived: no tradable price quote

	ConversionPrice decimal.Decimal
	ConversionValue decimal.Decimal
	PremiumPct      float64
	PureBondValue   decimal.Decimal
	Rating          string
	YearsLeft       float64
	SizeRemaining   decimal.Decimal // 1e8 CNY
	YTMPreTaxPct    float64
	YTMKnown        bool

	RedeemPrice    decimal.Decimal
	RedeemTrigger  decimal.Decimal
	RedeemProgress string
	RedeemClause   ClauseTerms

	AdjustTrigger  decimal.Decimal
	AdjustProgress Progress
	AdjustClause   ClauseTerms

	PutPrice   decimal.Decimal
	PutTrigger decimal.Decimal
	PutClause  ClauseTerms
}
