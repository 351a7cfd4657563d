package jisilu

import (
	"fmt"

	"github.com/lokewei/cblib/utils"
)

// Merge left-joins the three clause tables onto the main quote table by bond
// code and normalizes every field. Bonds missing from a clause table keep
// zero-valued clause fields; bonds without a price quote are marked
// Suspended.
func Merge(ds *Dataset) ([]Bond, error) {
	if ds == nil || ds.Data == nil {
		return nil, fmt.Errorf("Merge: main table is required")
	}
	if err := ds.Data.Require(colCode, colName); err != nil {
		return nil, fmt.Errorf("Merge: main table: %w", err)
	}

	redeem := indexByCode(ds.Redeem)
	adjust := indexByCode(ds.Adjust)
	put := indexByCode(ds.Put)

	bonds := make([]Bond, 0, ds.Data.Len())
	for i := 0; i < ds.Data.Len(); i++ {
		b := Bond{
			Code:      ds.Data.Field(i, colCode),
			Name:      ds.Data.Field(i, colName),
			StockCode: ds.Data.Field(i, colStockCode),
			StockName: ds.Data.Field(i, colStockName),
			Rating:    ds.Data.Field(i, colRating),
		}
		if b.Code == "" {
			continue
		}

		b.Price, _ = utils.ParseDecimal(ds.Data.Field(i, colPrice))
		b.Suspended = b.Price.IsZero()
		b.StockPrice, _ = utils.ParseDecimal(ds.Data.Field(i, colStockPrice))
		b.StockPB, _ = utils.ParseFloat(ds.Data.Field(i, colStockPB))
		b.StockChangePct, _ = utils.ParsePercent(ds.Data.Field(i, colStockChange))
		b.ConversionPrice, _ = utils.ParseDecimal(ds.Data.Field(i, colConvPrice))
		b.ConversionValue, _ = utils.ParseDecimal(ds.Data.Field(i, colConvValue))
		b.PremiumPct, _ = utils.ParsePercent(ds.Data.Field(i, colPremium))
		b.PureBondValue, _ = utils.ParseDecimal(ds.Data.Field(i, colPureBond))
		b.YearsLeft, _ = utils.ParseYears(ds.Data.Field(i, colYearsLeft))
		b.SizeRemaining, _ = utils.ParseDecimal(ds.Data.Field(i, colSizeLeft))
		b.YTMPreTaxPct, b.YTMKnown = utils.ParsePercent(ds.Data.Field(i, colYTMPreTax))

		if t, row := redeem.lookup(b.Code); t != nil {
			b.RedeemPrice, _ = utils.ParseDecimal(t.Field(row, colRedeemPrice))
			b.RedeemTrigger, _ = utils.ParseDecimal(t.Field(row, colRedeemTrig))
			b.RedeemProgress = t.Field(row, colRedeemCount)
			b.RedeemClause = ParseClause(t.Field(row, colRedeemClause), KindRedeem)
		}
		if t, row := adjust.lookup(b.Code); t != nil {
			b.AdjustTrigger, _ = utils.ParseDecimal(t.Field(row, colAdjustTrig))
			b.AdjustProgress, _ = ParseProgress(t.Field(row, colAdjustCount))
			b.AdjustClause = ParseClause(t.Field(row, colAdjustClause), KindAdjust)
		}
		if t, row := put.lookup(b.Code); t != nil {
			b.PutPrice, _ = utils.ParseDecimal(t.Field(row, colPutPrice))
			b.PutTrigger, _ = utils.ParseDecimal(t.Field(row, colPutTrig))
			b.PutClause = ParseClause(t.Field(row, colPutClause), KindPut)
		}

		// Fall back to the parsed clause ratio when the export carries no
		// precomputed trigger price.
		if b.RedeemTrigger.IsZero() {
			b.RedeemTrigger, _ = b.RedeemClause.TriggerPrice(b.ConversionPrice)
		}
		if b.AdjustTrigger.IsZero() {
			b.AdjustTrigger, _ = b.AdjustClause.TriggerPrice(b.ConversionPrice)
		}
		if b.PutTrigger.IsZero() {
			b.PutTrigger, _ = b.PutClause.TriggerPrice(b.ConversionPrice)
		}

		bonds = append(bonds, b)
	}
	return bonds, nil
}

// codeIndex maps bond code to row number within one clause table.
type codeIndex struct {
	table *Table
	rows  map[string]int
}

func indexByCode(t *Table) codeIndex {
	idx := codeIndex{table: t, rows: map[string]int{}}
	if t == nil {
		return idx
	}
	for i := 0; i < t.Len(); i++ {
		code := t.Field(i, colBondCode)
		if code == "" {
			code = t.Field(i, colCode)
		}
		if code != "" {
			idx.rows[code] = i
		}
	}
	return idx
}

func (ci codeIndex) lookup(code string) (*Table, int) {
	row, ok := ci.rows[code]
	if !ok {
		return nil, 0
	}
	return ci.table, row
}
