package screener

import (
	"math"
	"testing"

	"github.com/lokewei/cblib/marketdata/jisilu"
)

func pricedBond() jisilu.Bond {
	return jisilu.Bond{
		Code:            "123001",
		StockPrice:      d(10),
		StockPB:         2,
		ConversionPrice: d(10),
		PureBondValue:   d(95),
		YearsLeft:       3,
		RedeemTrigger:   d(13),
		PutTrigger:      d(7),
		AdjustClause:    jisilu.ClauseTerms{TriggerPct: 85, Direction: jisilu.DirectionBelow},
	}
}

func TestContract(t *testing.T) {
	t.Parallel()

	cfg := DefaultValuation()
	cfg.ResetProbability = 0.3
	cfg.ResetMarkup = 1.2

	p, err := cfg.Contract(Metrics{Bond: pricedBond()})
	if err != nil {
		t.Fatalf("Contract() error = %v", err)
	}
	if p.StockPrice != 10 || p.ConversionPrice != 10 || p.PureBondValue != 95 {
		t.Errorf("quotes = %v/%v/%v, want 10/10/95", p.StockPrice, p.ConversionPrice, p.PureBondValue)
	}
	if p.CallTriggerPrice != 13 || p.PutTriggerPrice != 7 {
		t.Errorf("triggers = %v/%v, want 13/7", p.CallTriggerPrice, p.PutTriggerPrice)
	}
	if p.YearsToMaturity != 3 || p.Steps != cfg.Steps || p.RedemptionPrice != cfg.RedemptionPrice {
		t.Errorf("tenor/steps/redemption = %v/%v/%v", p.YearsToMaturity, p.Steps, p.RedemptionPrice)
	}
	if p.Reset == nil {
		t.Fatal("Reset = nil, want terms")
	}
	if p.Reset.TriggerRatio != 0.85 || p.Reset.Probability != 0.3 || p.Reset.Markup != 1.2 {
		t.Errorf("Reset = %+v", p.Reset)
	}
	if math.Abs(p.Reset.NetAssetValue-5) > 1e-12 {
		t.Errorf("NetAssetValue = %v, want 5 (price over PB)", p.Reset.NetAssetValue)
	}
}

func TestContractFallbacks(t *testing.T) {
	t.Parallel()

	b := pricedBond()
	b.RedeemTrigger = d(0)
	b.PutTrigger = d(0)
	b.AdjustClause = jisilu.ClauseTerms{}

	cfg := DefaultValuation()
	p, err := cfg.Contract(Metrics{Bond: b})
	if err != nil {
		t.Fatalf("Contract() error = %v", err)
	}
	if math.Abs(p.CallTriggerPrice-13) > 1e-12 || math.Abs(p.PutTriggerPrice-7) > 1e-12 {
		t.Errorf("fallback triggers = %v/%v, want 13/7", p.CallTriggerPrice, p.PutTriggerPrice)
	}
	if p.Reset != nil {
		t.Error("Reset set with zero probability")
	}
}

func TestContractErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultValuation()

	noStock := pricedBond()
	noStock.StockPrice = d(0)
	if _, err := cfg.Contract(Metrics{Bond: noStock}); err == nil {
		t.Error("Contract() = nil error without a stock quote")
	}

	matured := pricedBond()
	matured.YearsLeft = 0
	if _, err := cfg.Contract(Metrics{Bond: matured}); err == nil {
		t.Error("Contract() = nil error without remaining tenor")
	}
}

func TestFairValues(t *testing.T) {
	t.Parallel()

	halted := pricedBond()
	halted.Code = "123002"
	halted.StockPrice = d(0)

	ms := Compute([]jisilu.Bond{pricedBond(), halted}, Default())

	cfg := DefaultValuation()
	cfg.Steps = 200
	if n := FairValues(ms, cfg); n != 1 {
		t.Fatalf("FairValues() = %d priced, want 1", n)
	}
	// At the money the lattice value sits above both the debt floor and
	// parity conversion value.
	if ms[0].FairValue < 100 {
		t.Errorf("FairValue = %v, want >= 100", ms[0].FairValue)
	}
	if ms[1].FairValue != 0 {
		t.Errorf("unpriceable FairValue = %v, want 0", ms[1].FairValue)
	}
}
