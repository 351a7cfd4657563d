package screener

// Category is one named screen result.
type Category struct {
	Name  string
	Bonds []Metrics
}

// Avoid runs the avoid screens: traps that look cheap or safe but are not.
// Suspended bonds are skipped everywhere; a halted quote can't be acted on.
func Avoid(ms []Metrics, r Rules) []Category {
	var nearNegative, aboveCall, doubleHigh, weak []Metrics
	for _, m := range ms {
		if m.Suspended {
			continue
		}

		// Maturing soon with a negative yield to maturity: guaranteed loss
		// if held to redemption.
		if m.NearMaturity && m.YTMKnown && m.YTMPreTaxPct < 0 {
			nearNegative = append(nearNegative, m)
		}

		// Already through the forced-call line, still carrying premium, big
		// and well rated: the call is credible and the premium evaporates.
		if m.CallRatio > 1.0 && m.PremiumPct > r.Avoid.AboveCallPremiumPct &&
			m.CapClass == CapLarge && ratingIn(m.Rating, r.StrongRatings) {
			aboveCall = append(aboveCall, m)
		}

		// Double-high small caps close to maturity: no time left for the
		// story to work out.
		if m.DoubleHigh && m.CapClass == CapSmall && m.YearsLeft > 0 &&
			m.YearsLeft < r.Avoid.DoubleHighMaxYears {
			doubleHigh = append(doubleHigh, m)
		}

		// Weak quality: low rating, stretched stock valuation, or a thin
		// debt floor.
		if ratingIn(m.Rating, r.WeakRatings) ||
			m.StockPB > r.Avoid.WeakStockPBMin ||
			(m.HasOption && m.PureBondValue.InexactFloat64() < r.Avoid.WeakPureBondMax) {
			weak = append(weak, m)
		}
	}

	return []Category{
		{Name: "near-maturity negative yield", Bonds: nearNegative},
		{Name: "above call line, large cap, high premium", Bonds: aboveCall},
		{Name: "near-maturity double-high small cap", Bonds: doubleHigh},
		{Name: "weak quality", Bonds: weak},
	}
}

// Focus runs the watchlist screens: setups worth tracking.
func Focus(ms []Metrics, r Rules) []Category {
	var nearFloor, lowOption, midTenor []Metrics
	for _, m := range ms {
		if m.Suspended {
			continue
		}

		// Small cap with a rich premium but sitting just above its debt
		// floor: limited downside while the reset game plays out.
		if m.CapClass == CapSmall && m.PremiumPct > r.Focus.HighPremiumPct &&
			m.HasOption && m.OptionValue > 0 && m.OptionValue < r.Focus.NearFloorMaxGap {
			nearFloor = append(nearFloor, m)
		}

		// Months from maturity, option nearly free, strong credit, priced
		// close to par: a cash substitute with a lottery ticket attached.
		if m.YearsLeft > 0 && m.YearsLeft < r.Focus.LowOptionMaxYears &&
			m.HasOption && m.OptionValue < r.Focus.LowOptionMaxValue &&
			ratingIn(m.Rating, r.StrongRatings) &&
			m.Price.InexactFloat64() < r.Focus.LowOptionMaxPrice {
			lowOption = append(lowOption, m)
		}

		// The ~2 year sweet spot with a premium that is not absurd.
		if m.YearsLeft >= r.Focus.MidTenorMinYears && m.YearsLeft <= r.Focus.MidTenorMaxYears &&
			m.PremiumPct < r.Focus.MidTenorMaxPremiumPct {
			midTenor = append(midTenor, m)
		}
	}

	return []Category{
		{Name: "small cap high premium near floor", Bonds: nearFloor},
		{Name: "low option value near maturity", Bonds: lowOption},
		{Name: "two-year tenor", Bonds: midTenor},
	}
}
