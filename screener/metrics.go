package screener

import (
	"github.com/shopspring/decimal"

	"github.com/lokewei/cblib/marketdata/jisilu"
)

// CapClass buckets bonds by remaining issue size.
type CapClass string

const (
	CapSmall   CapClass = "small"
	CapMid     CapClass = "mid"
	CapLarge   CapClass = "large"
	CapUnknown CapClass = "unknown"
)

// Metrics is one bond enriched with the derived quantities the screens and
// the score read. Ratios are zero when the underlying quotes are missing.
type Metrics struct {
	jisilu.Bond

	// OptionValue is the market price of the embedded option, price minus
	// pure bond value; it doubles as the distance above the debt floor.
	OptionValue float64
	HasOption   bool

	// CallRatio is stock price over the forced-call trigger; above 1 the
	// call condition is priced at the money.
	CallRatio float64
	// ResetRatio is stock price over the downward-revision trigger; inside
	// (NearResetLow, NearResetHigh) the reset game is live.
	ResetRatio float64

	CapClass     CapClass
	NearMaturity bool
	DoubleHigh   bool

	// FairValue is the lattice value per 100 face, zero until computed.
	FairValue float64

	Score int
}

// Compute derives Metrics for every bond. Input order is preserved.
func Compute(bonds []jisilu.Bond, r Rules) []Metrics {
	ms := make([]Metrics, len(bonds))
	for i, b := range bonds {
		m := Metrics{Bond: b}

		if !b.Price.IsZero() && !b.PureBondValue.IsZero() {
			m.OptionValue = b.Price.Sub(b.PureBondValue).InexactFloat64()
			m.HasOption = true
		}
		m.CallRatio = ratio(b.StockPrice, b.RedeemTrigger)
		m.ResetRatio = ratio(b.StockPrice, b.AdjustTrigger)
		m.CapClass = capClass(b.SizeRemaining, r)
		m.NearMaturity = b.YearsLeft > 0 && b.YearsLeft < r.NearMaturityYears
		m.DoubleHigh = b.Price.GreaterThan(decimal.NewFromFloat(r.DoubleHighPrice)) &&
			m.PremiumPct > r.DoubleHighPremiumPct

		ms[i] = m
	}
	return ms
}

func ratio(num, den decimal.Decimal) float64 {
	if num.IsZero() || den.IsZero() {
		return 0
	}
	return num.Div(den).InexactFloat64()
}

func capClass(size decimal.Decimal, r Rules) CapClass {
	if size.IsZero() {
		return CapUnknown
	}
	switch {
	case size.LessThan(decimal.NewFromFloat(r.SmallCapMaxSize)):
		return CapSmall
	case size.GreaterThanOrEqual(decimal.NewFromFloat(r.LargeCapMinSize)):
		return CapLarge
	default:
		return CapMid
	}
}

func ratingIn(rating string, set []string) bool {
	for _, s := range set {
		if rating == s {
			return true
		}
	}
	return false
}
