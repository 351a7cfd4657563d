package convertible

import "math"

// resetPriceBuffer reflects that a revised conversion price is set slightly
// above the prevailing stock price (recent-average-price rules), not at it.
const resetPriceBuffer = 1.02

// blend mixes the holding value with the value after a hypothetical reset,
// weighted by the reset probability. It only fires at nodes whose stock price
// is at or below TriggerRatio times the conversion price, and it runs on the
// raw post-expectation value so the contract floors still clamp the result.
func (t *ResetTerms) blend(p ContractParameters, stock, value float64) float64 {
	if stock > p.ConversionPrice*t.TriggerRatio {
		return value
	}

	// The issuer may not revise below per-share net assets.
	kNew := math.Max(stock*resetPriceBuffer, t.NetAssetValue)
	markup := t.Markup
	if markup == 0 {
		markup = 1
	}
	afterReset := FaceValue / kNew * stock * markup

	return (1-t.Probability)*value + t.Probability*afterReset
}
