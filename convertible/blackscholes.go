package convertible

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BlackScholesInput feeds the closed-form decomposition: a convertible is
// approximated as the pure bond plus 100/K European calls on the stock.
// Embedded call/put/reset rights are ignored, which makes this a fast upper
// sanity bound for the lattice value rather than a replacement for it.
type BlackScholesInput struct {
	StockPrice      float64
	ConversionPrice float64
	RiskFreeRate    float64
	Volatility      float64
	YearsToMaturity float64
	PureBondValue   float64
}

// BlackScholesResult splits the closed-form value into its two legs.
type BlackScholesResult struct {
	Value       float64 // PureBondValue + OptionValue
	OptionValue float64 // (100/K) * BS call premium
}

const (
	impliedVolMaxIterations = 100
	impliedVolTolerance     = 1e-9
)

func (in BlackScholesInput) validate() error {
	if in.StockPrice <= 0 {
		return fmt.Errorf("%w: stock price %v must be positive", ErrInvalidParameter, in.StockPrice)
	}
	if in.ConversionPrice <= 0 {
		return fmt.Errorf("%w: conversion price %v must be positive", ErrInvalidParameter, in.ConversionPrice)
	}
	if in.Volatility <= 0 {
		return fmt.Errorf("%w: volatility %v", ErrDegenerateLattice, in.Volatility)
	}
	if in.YearsToMaturity <= 0 {
		return fmt.Errorf("%w: years to maturity %v", ErrDegenerateLattice, in.YearsToMaturity)
	}
	return nil
}

// BlackScholesValue prices the bond as pure debt plus conversion option.
func BlackScholesValue(in BlackScholesInput) (BlackScholesResult, error) {
	if err := in.validate(); err != nil {
		return BlackScholesResult{}, fmt.Errorf("BlackScholesValue: %w", err)
	}

	call := bsCall(in.StockPrice, in.ConversionPrice, in.RiskFreeRate, in.Volatility, in.YearsToMaturity)
	option := call * FaceValue / in.ConversionPrice
	return BlackScholesResult{
		Value:       in.PureBondValue + option,
		OptionValue: option,
	}, nil
}

// ImpliedVolatility inverts the closed form against an observed market price
// using Newton iteration seeded from in.Volatility. The analytic vega of the
// total value is (100/K)*S0*sqrt(T)*phi(d1).
func ImpliedVolatility(in BlackScholesInput, marketPrice float64) (float64, error) {
	if err := in.validate(); err != nil {
		return 0, fmt.Errorf("ImpliedVolatility: %w", err)
	}
	if marketPrice <= in.PureBondValue {
		return 0, fmt.Errorf("ImpliedVolatility: %w: market price %v does not exceed pure bond value %v",
			ErrInvalidParameter, marketPrice, in.PureBondValue)
	}

	ratio := FaceValue / in.ConversionPrice
	sigma := in.Volatility
	for iter := 0; iter < impliedVolMaxIterations; iter++ {
		value := in.PureBondValue + ratio*bsCall(in.StockPrice, in.ConversionPrice, in.RiskFreeRate, sigma, in.YearsToMaturity)
		diff := value - marketPrice
		if math.Abs(diff) < impliedVolTolerance {
			return sigma, nil
		}

		d1 := bsD1(in.StockPrice, in.ConversionPrice, in.RiskFreeRate, sigma, in.YearsToMaturity)
		vega := ratio * in.StockPrice * math.Sqrt(in.YearsToMaturity) * distuv.UnitNormal.Prob(d1)
		if vega < impliedVolTolerance {
			return 0, fmt.Errorf("ImpliedVolatility: vega vanished at sigma=%v", sigma)
		}

		sigma -= diff / vega
		if sigma <= 0 {
			// Newton overshot below zero; restart from a small positive vol.
			sigma = impliedVolTolerance * 10
		}
	}
	return 0, fmt.Errorf("ImpliedVolatility: no convergence after %d iterations", impliedVolMaxIterations)
}

func bsD1(s, k, r, sigma, t float64) float64 {
	return (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
}

// bsCall is the European call premium per share.
func bsCall(s, k, r, sigma, t float64) float64 {
	norm := distuv.UnitNormal
	d1 := bsD1(s, k, r, sigma, t)
	d2 := d1 - sigma*math.Sqrt(t)
	return s*norm.CDF(d1) - k*math.Exp(-r*t)*norm.CDF(d2)
}
