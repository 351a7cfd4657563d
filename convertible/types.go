// Package convertible prices convertible bonds on a recombining binomial
// lattice of the issuer's stock price, with the bond's embedded corporate
// action rights (forced call, investor put, probabilistic downward
// conversion-price reset) folded in during backward induction.
package convertible

import (
	"errors"
	"fmt"
)

// FaceValue is the par amount all quotes are expressed against. Chinese
// convertible bonds are quoted per 100 CNY of face value.
const FaceValue = 100.0

// FloorPolicy selects how the time-dependent debt floor is computed during
// backward induction.
type FloorPolicy string

const (
	// FloorInterpolated anchors the floor at PureBondValue today and pulls it
	// linearly toward RedemptionPrice at maturity. This is the default.
	FloorInterpolated FloorPolicy = "interpolated"
	// FloorLegacyRamp ramps the floor linearly from zero today to
	// PureBondValue at maturity.
	//
	// Deprecated: kept only to reproduce the behavior of older screeners; the
	// floor should never be zero at time 0. Use FloorInterpolated.
	FloorLegacyRamp FloorPolicy = "legacy-ramp"
)

// ResetTerms models the issuer's discretionary right to lower the conversion
// price once the stock has fallen near TriggerRatio times the conversion
// price. TriggerRatio and Probability are exogenous game-theoretic inputs;
// nothing here calibrates them.
type ResetTerms struct {
	// TriggerRatio is the reset trigger expressed as a fraction of the
	// conversion price (typically 0.85). Must be in (0, 1).
	TriggerRatio float64
	// Probability is the chance the issuer actually resets once triggered.
	// Must be in [0, 1]; zero disables the blend without disabling validation.
	Probability float64
	// NetAssetValue is the per-share net asset floor below which the revised
	// conversion price may not be set.
	NetAssetValue float64
	// Markup scales the post-reset parity value to represent re-rating after
	// a reset. If zero, 1.0 is used. Some screeners use 1.20.
	Markup float64
}

// ContractParameters are the immutable inputs to one valuation. All prices
// share the bond's quote currency; rates and volatility are annualized.
type ContractParameters struct {
	StockPrice      float64 // S0, current price of the underlying stock
	ConversionPrice float64 // K, current conversion price
	RiskFreeRate    float64 // continuous compounding, e.g. 0.02 for 2%
	Volatility      float64 // annualized stock volatility, e.g. 0.25
	YearsToMaturity float64 // remaining life in years
	Steps           int     // lattice step count (500-1000 is typical)

	PureBondValue    float64 // debt floor value per 100 face
	CallTriggerPrice float64 // forced-call trigger (typically 130% of K)
	PutTriggerPrice  float64 // put (sell-back) trigger (typically 70% of K)
	RedemptionPrice  float64 // redemption at maturity incl. final coupon

	// Floor selects the debt-floor policy; empty means FloorInterpolated.
	Floor FloorPolicy

	// Reset enables the downward-revision blend when non-nil.
	Reset *ResetTerms
}

// Failure taxonomy. Every error returned by this package wraps exactly one of
// these sentinels, so callers can branch with errors.Is.
var (
	// ErrInvalidParameter reports a violated input invariant.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDegenerateLattice reports sigma <= 0 or dt <= 0, which collapse the
	// up and down factors onto each other.
	ErrDegenerateLattice = errors.New("degenerate lattice")
	// ErrArbitrageViolation reports a risk-neutral probability outside (0, 1),
	// i.e. mutually inconsistent rate, volatility and step size.
	ErrArbitrageViolation = errors.New("arbitrage violation")
	// ErrNumericOverflow reports terminal stock prices beyond float64 range.
	ErrNumericOverflow = errors.New("numeric overflow")
)

// Validate checks every input invariant. Lattice construction calls this
// first; it is exported so data layers can reject bad rows early.
func (p ContractParameters) Validate() error {
	if p.StockPrice <= 0 {
		return fmt.Errorf("%w: stock price %v must be positive", ErrInvalidParameter, p.StockPrice)
	}
	if p.ConversionPrice <= 0 {
		return fmt.Errorf("%w: conversion price %v must be positive", ErrInvalidParameter, p.ConversionPrice)
	}
	if p.Steps < 1 {
		return fmt.Errorf("%w: steps %d must be at least 1", ErrInvalidParameter, p.Steps)
	}
	if p.Volatility <= 0 {
		return fmt.Errorf("%w: volatility %v", ErrDegenerateLattice, p.Volatility)
	}
	if p.YearsToMaturity <= 0 {
		return fmt.Errorf("%w: years to maturity %v", ErrDegenerateLattice, p.YearsToMaturity)
	}
	// Call and put triggers typically bracket the conversion price (130% and
	// 70% of K); only their relative order is enforced so that stressed
	// configurations (e.g. a put trigger above a lowered K) remain priceable.
	if p.CallTriggerPrice <= p.PutTriggerPrice {
		return fmt.Errorf("%w: call trigger %v must exceed put trigger %v",
			ErrInvalidParameter, p.CallTriggerPrice, p.PutTriggerPrice)
	}
	switch p.Floor {
	case "", FloorInterpolated, FloorLegacyRamp:
	default:
		return fmt.Errorf("%w: unknown floor policy %q", ErrInvalidParameter, p.Floor)
	}
	if r := p.Reset; r != nil {
		if r.TriggerRatio <= 0 || r.TriggerRatio >= 1 {
			return fmt.Errorf("%w: reset trigger ratio %v must be in (0, 1)", ErrInvalidParameter, r.TriggerRatio)
		}
		if r.Probability < 0 || r.Probability > 1 {
			return fmt.Errorf("%w: reset probability %v must be in [0, 1]", ErrInvalidParameter, r.Probability)
		}
		if r.Markup < 0 {
			return fmt.Errorf("%w: reset markup %v must not be negative", ErrInvalidParameter, r.Markup)
		}
	}
	return nil
}

// ConversionRatio is the number of shares per 100 face value, 100/K.
func (p ContractParameters) ConversionRatio() float64 {
	return FaceValue / p.ConversionPrice
}
