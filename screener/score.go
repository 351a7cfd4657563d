package screener

import "sort"

// Score assigns the composite score to every metric, in place, and returns
// the slice for chaining. Positive factors reward cheap optionality, strong
// credit, sensible tenor and a live reset game; negative factors punish the
// classic traps.
func Score(ms []Metrics, r Rules) []Metrics {
	for i := range ms {
		ms[i].Score = scoreOne(&ms[i], r)
	}
	return ms
}

func scoreOne(m *Metrics, r Rules) int {
	score := 0

	// Premium tiers: the lower the conversion premium, the closer the bond
	// tracks its stock.
	tiers := r.Score.PremiumTiersPct
	for i := len(tiers) - 1; i >= 0; i-- {
		if m.PremiumPct < tiers[i] {
			score = len(tiers) - i
		}
	}

	switch {
	case m.Rating == "AAA":
		score += 3
	case ratingIn(m.Rating, []string{"AA+", "AA"}):
		score += 2
	case ratingIn(m.Rating, []string{"AA-", "A+"}):
		score++
	}

	if m.YearsLeft >= r.Score.TenorMinYears && m.YearsLeft <= r.Score.TenorMaxYears {
		score += 2
	}

	if m.StockPB > 0 {
		switch {
		case m.StockPB < r.Score.LowPBMax:
			score += 2
		case m.StockPB < r.Score.MidPBMax:
			score++
		}
	}

	// Stock hovering just above the reset line: the issuer is incentivized
	// to lower the conversion price.
	if m.ResetRatio > r.Score.NearResetLow && m.ResetRatio < r.Score.NearResetHigh {
		score += 2
	}

	if m.DoubleHigh {
		score -= 3
	}
	if m.NearMaturity && m.YTMKnown && m.YTMPreTaxPct < 0 {
		score -= 2
	}
	if m.CallRatio > r.Score.AboveCallRatio && m.PremiumPct > r.Score.AboveCallPremiumPct {
		score -= 2
	}
	if ratingIn(m.Rating, []string{"A", "A-", "BBB+", "BBB"}) {
		score -= 2
	}

	return score
}

// Top returns the n highest-scored, non-suspended bonds, stably ordered by
// score then code.
func Top(ms []Metrics, n int) []Metrics {
	ranked := make([]Metrics, 0, len(ms))
	for _, m := range ms {
		if !m.Suspended {
			ranked = append(ranked, m)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Code < ranked[j].Code
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
