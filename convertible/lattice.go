package convertible

import (
	"fmt"
	"math"
)

// Lattice holds the derived Cox-Ross-Rubinstein parameters for one valuation.
// It is immutable once built.
type Lattice struct {
	Up       float64 // per-step up factor, exp(sigma*sqrt(dt))
	Down     float64 // per-step down factor, 1/Up
	Prob     float64 // risk-neutral probability of an up move
	Discount float64 // single-step discount factor, exp(-r*dt)
	Dt       float64 // step length in years
	Steps    int
}

// NewLattice derives the lattice parameters from the contract inputs. It
// fails fast on any invariant violation; nothing is clamped.
func NewLattice(p ContractParameters) (Lattice, error) {
	if err := p.Validate(); err != nil {
		return Lattice{}, fmt.Errorf("NewLattice: %w", err)
	}

	dt := p.YearsToMaturity / float64(p.Steps)
	u := math.Exp(p.Volatility * math.Sqrt(dt))
	if math.IsInf(u, 0) {
		return Lattice{}, fmt.Errorf("NewLattice: %w: up factor for sigma=%v dt=%v",
			ErrNumericOverflow, p.Volatility, dt)
	}
	d := 1 / u
	if u == d {
		// sigma*sqrt(dt) underflowed to zero; p below would divide by zero.
		return Lattice{}, fmt.Errorf("NewLattice: %w: up and down factors coincide", ErrDegenerateLattice)
	}

	// The highest terminal node is S0*u^steps; once that leaves float64 range
	// every downstream max/min comparison is meaningless.
	if top := p.StockPrice * math.Pow(u, float64(p.Steps)); math.IsInf(top, 0) || math.IsNaN(top) {
		return Lattice{}, fmt.Errorf("NewLattice: %w: terminal stock price S0*u^%d", ErrNumericOverflow, p.Steps)
	}

	prob := (math.Exp(p.RiskFreeRate*dt) - d) / (u - d)
	if prob <= 0 || prob >= 1 {
		return Lattice{}, fmt.Errorf("NewLattice: %w: risk-neutral probability %v for r=%v sigma=%v dt=%v",
			ErrArbitrageViolation, prob, p.RiskFreeRate, p.Volatility, dt)
	}

	return Lattice{
		Up:       u,
		Down:     d,
		Prob:     prob,
		Discount: math.Exp(-p.RiskFreeRate * dt),
		Dt:       dt,
		Steps:    p.Steps,
	}, nil
}

// StockPrices returns the stock price at every node of time layer i, ordered
// from the all-down node (j=0) to the all-up node (j=i):
//
//	S(i,j) = S0 * Down^(i-j) * Up^j
func (l Lattice) StockPrices(s0 float64, i int) []float64 {
	prices := make([]float64, i+1)
	for j := range prices {
		prices[j] = s0 * math.Pow(l.Down, float64(i-j)) * math.Pow(l.Up, float64(j))
	}
	return prices
}
