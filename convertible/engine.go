package convertible

import (
	"fmt"
	"math"
)

// Value prices the bond per 100 face value. It is a pure function of its
// inputs: two calls with identical parameters return bit-identical results.
// Memory stays O(steps); only the current and previous layers are alive.
func Value(p ContractParameters) (float64, error) {
	lat, err := NewLattice(p)
	if err != nil {
		return 0, fmt.Errorf("Value: %w", err)
	}

	values := terminalValues(p, lat)
	for i := p.Steps - 1; i >= 0; i-- {
		values = stepValues(p, lat, values, i)
	}
	return values[0], nil
}

// terminalValues is the maturity payoff vector: at each terminal node the
// holder takes the better of converting or redeeming.
func terminalValues(p ContractParameters, lat Lattice) []float64 {
	ratio := p.ConversionRatio()
	stocks := lat.StockPrices(p.StockPrice, p.Steps)
	values := make([]float64, len(stocks))
	for j, s := range stocks {
		values[j] = math.Max(s*ratio, p.RedemptionPrice)
	}
	return values
}

// stepValues derives layer i from the fully adjusted layer i+1: a discounted
// risk-neutral expectation over each node's two children, then the contract
// rule pipeline per node. The input slice is not modified.
func stepValues(p ContractParameters, lat Lattice, next []float64, i int) []float64 {
	floor := bondFloorAt(p, i)
	stocks := lat.StockPrices(p.StockPrice, i)
	values := make([]float64, i+1)
	for j := range values {
		expectation := (lat.Prob*next[j+1] + (1-lat.Prob)*next[j]) * lat.Discount
		values[j] = overlayNode(p, floor, stocks[j], expectation)
	}
	return values
}
