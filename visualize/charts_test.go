package visualize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lokewei/cblib/marketdata/jisilu"
	"github.com/lokewei/cblib/screener"
)

func sampleMetrics() []screener.Metrics {
	d := decimal.NewFromFloat
	bonds := []jisilu.Bond{
		{
			Code: "110001", Price: d(108), StockPrice: d(10), AdjustTrigger: d(11),
			PremiumPct: 8, StockChangePct: 1.9, YearsLeft: 2, SizeRemaining: d(8),
			YTMPreTaxPct: 1.5, YTMKnown: true,
			AdjustProgress: jisilu.Progress{Satisfied: 13, Window: 15},
		},
		{
			Code: "110002", Price: d(135), StockPrice: d(6), AdjustTrigger: d(5),
			PremiumPct: 45, StockChangePct: -2.3, YearsLeft: 4, SizeRemaining: d(3),
			YTMPreTaxPct: -3.1, YTMKnown: true,
		},
	}
	return screener.Compute(bonds, screener.Default())
}

func TestCharts(t *testing.T) {
	t.Parallel()

	ms := sampleMetrics()
	dir := t.TempDir()

	charts := []struct {
		name string
		draw func(string) error
	}{
		{"price_premium.png", func(p string) error { return PricePremium(ms, screener.Default(), p) }},
		{"reset_map.png", func(p string) error { return ResetGamingMap(ms, p) }},
		{"ytm_tenor.png", func(p string) error { return YTMTenor(ms, p) }},
		{"premium_momentum.png", func(p string) error { return PremiumMomentum(ms, p) }},
	}
	for _, c := range charts {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(dir, c.name)
			if err := c.draw(path); err != nil {
				t.Fatalf("draw error = %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if info.Size() == 0 {
				t.Error("empty chart file")
			}
		})
	}
}

func TestChartsEmptyUniverse(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "none.png")
	if err := PricePremium(nil, screener.Default(), path); err == nil {
		t.Error("PricePremium() = nil error on empty universe")
	}
	if err := ResetGamingMap(nil, path); err == nil {
		t.Error("ResetGamingMap() = nil error on empty universe")
	}
	if err := YTMTenor(nil, path); err == nil {
		t.Error("YTMTenor() = nil error on empty universe")
	}
	if err := PremiumMomentum(nil, path); err == nil {
		t.Error("PremiumMomentum() = nil error on empty universe")
	}
}
