package screener

import (
	"fmt"

	"github.com/lokewei/cblib/convertible"
)

// ValuationConfig supplies the market inputs the exports do not carry. One
// volatility for the whole universe is crude but matches how the screens are
// used: the lattice value is a relative-cheapness column, not a trade price.
type ValuationConfig struct {
	RiskFreeRate     float64 `yaml:"risk_free_rate"`
	Volatility       float64 `yaml:"volatility"`
	Steps            int     `yaml:"steps"`
	RedemptionPrice  float64 `yaml:"redemption_price"` // maturity redemption incl. final coupon
	ResetProbability float64 `yaml:"reset_probability"`
	ResetMarkup      float64 `yaml:"reset_markup"`
}

// DefaultValuation mirrors the worked examples: 2.5% rate, 30% vol, 500
// steps, 108 redemption, reset disabled.
func DefaultValuation() ValuationConfig {
	return ValuationConfig{
		RiskFreeRate:    0.025,
		Volatility:      0.30,
		Steps:           500,
		RedemptionPrice: 108,
	}
}

// Contract translates one bond's merged quotes and parsed clause terms into
// engine inputs. Triggers prefer the export's precomputed prices (already
// falling back to clause ratios during the merge); missing triggers default
// to the customary 130%/70% of the conversion price.
func (cfg ValuationConfig) Contract(m Metrics) (convertible.ContractParameters, error) {
	if m.StockPrice.IsZero() || m.ConversionPrice.IsZero() || m.PureBondValue.IsZero() {
		return convertible.ContractParameters{}, fmt.Errorf("Contract %s: missing stock, conversion or pure bond quote", m.Code)
	}
	if m.YearsLeft <= 0 {
		return convertible.ContractParameters{}, fmt.Errorf("Contract %s: no remaining tenor", m.Code)
	}

	k := m.ConversionPrice.InexactFloat64()
	p := convertible.ContractParameters{
		StockPrice:       m.StockPrice.InexactFloat64(),
		ConversionPrice:  k,
		RiskFreeRate:     cfg.RiskFreeRate,
		Volatility:       cfg.Volatility,
		YearsToMaturity:  m.YearsLeft,
		Steps:            cfg.Steps,
		PureBondValue:    m.PureBondValue.InexactFloat64(),
		CallTriggerPrice: k * 1.3,
		PutTriggerPrice:  k * 0.7,
		RedemptionPrice:  cfg.RedemptionPrice,
	}
	if !m.RedeemTrigger.IsZero() {
		p.CallTriggerPrice = m.RedeemTrigger.InexactFloat64()
	}
	if !m.PutTrigger.IsZero() {
		p.PutTriggerPrice = m.PutTrigger.InexactFloat64()
	}

	if cfg.ResetProbability > 0 {
		threshold := 0.85
		if ratio, ok := m.AdjustClause.TriggerRatio(); ok {
			threshold = ratio
		}
		// Approximate per-share net assets from the stock's price-to-book.
		nav := 0.0
		if m.StockPB > 0 {
			nav = p.StockPrice / m.StockPB
		}
		p.Reset = &convertible.ResetTerms{
			TriggerRatio:  threshold,
			Probability:   cfg.ResetProbability,
			NetAssetValue: nav,
			Markup:        cfg.ResetMarkup,
		}
	}
	return p, nil
}

// FairValues fills Metrics.FairValue for every bond the engine can price,
// in place, and returns how many were priced. Bonds with missing inputs are
// left at zero rather than failing the whole batch.
func FairValues(ms []Metrics, cfg ValuationConfig) int {
	priced := 0
	for i := range ms {
		p, err := cfg.Contract(ms[i])
		if err != nil {
			continue
		}
		v, err := convertible.Value(p)
		if err != nil {
			continue
		}
		ms[i].FairValue = v
		priced++
	}
	return priced
}
