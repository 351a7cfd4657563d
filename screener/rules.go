// Package screener derives screening metrics over a merged jisilu universe,
// flags bonds to avoid or to watch, and ranks the rest with a composite
// score. Every numeric threshold lives in Rules so a strategy change is a
// yaml edit, not a code edit.
package screener

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds all screening thresholds. Zero value is not usable; start from
// Default and override via yaml.
type Rules struct {
	// Cap size boundaries on remaining issue size, in 1e8 CNY.
	SmallCapMaxSize float64 `yaml:"small_cap_max_size"`
	LargeCapMinSize float64 `yaml:"large_cap_min_size"`

	// Double-high: price and conversion premium both rich.
	DoubleHighPrice      float64 `yaml:"double_high_price"`
	DoubleHighPremiumPct float64 `yaml:"double_high_premium_pct"`

	NearMaturityYears float64 `yaml:"near_maturity_years"`

	StrongRatings []string `yaml:"strong_ratings"`
	WeakRatings   []string `yaml:"weak_ratings"`

	Avoid AvoidRules `yaml:"avoid"`
	Focus FocusRules `yaml:"focus"`
	Score ScoreRules `yaml:"score"`
}

// AvoidRules parameterize the avoid screens.
type AvoidRules struct {
	// Above the forced-call line with this much premium still priced in.
	AboveCallPremiumPct float64 `yaml:"above_call_premium_pct"`
	// Double-high bonds maturing within this horizon.
	DoubleHighMaxYears float64 `yaml:"double_high_max_years"`
	// Weak-quality cutoffs: any one of these flags the bond.
	WeakStockPBMin  float64 `yaml:"weak_stock_pb_min"`
	WeakPureBondMax float64 `yaml:"weak_pure_bond_max"`
}

// FocusRules parameterize the watchlist screens.
type FocusRules struct {
	// Small cap, high premium, but close above the debt floor.
	HighPremiumPct  float64 `yaml:"high_premium_pct"`
	NearFloorMaxGap float64 `yaml:"near_floor_max_gap"`
	// Near-maturity bonds whose option is nearly free.
	LowOptionMaxYears float64 `yaml:"low_option_max_years"`
	LowOptionMaxValue float64 `yaml:"low_option_max_value"`
	LowOptionMaxPrice float64 `yaml:"low_option_max_price"`
	// The ~2 year sweet spot.
	MidTenorMinYears      float64 `yaml:"mid_tenor_min_years"`
	MidTenorMaxYears      float64 `yaml:"mid_tenor_max_years"`
	MidTenorMaxPremiumPct float64 `yaml:"mid_tenor_max_premium_pct"`
}

// ScoreRules parameterize the composite score tiers.
type ScoreRules struct {
	// Ascending premium tier bounds; lower tiers score higher.
	PremiumTiersPct []float64 `yaml:"premium_tiers_pct"`
	TenorMinYears   float64   `yaml:"tenor_min_years"`
	TenorMaxYears   float64   `yaml:"tenor_max_years"`
	LowPBMax        float64   `yaml:"low_pb_max"`
	MidPBMax        float64   `yaml:"mid_pb_max"`
	// Reset-gaming band: stock between these fractions of the reset line.
	NearResetLow  float64 `yaml:"near_reset_low"`
	NearResetHigh float64 `yaml:"near_reset_high"`
	// Penalty band above the forced-call line.
	AboveCallRatio      float64 `yaml:"above_call_ratio"`
	AboveCallPremiumPct float64 `yaml:"above_call_premium_pct"`
}

// Default returns the thresholds the legacy screener hard-coded.
func Default() Rules {
	return Rules{
		SmallCapMaxSize:      5,
		LargeCapMinSize:      15,
		DoubleHighPrice:      130,
		DoubleHighPremiumPct: 30,
		NearMaturityYears:    0.5,
		StrongRatings:        []string{"AAA", "AA+", "AA"},
		WeakRatings:          []string{"A+", "A", "A-", "BBB+", "BBB"},
		Avoid: AvoidRules{
			AboveCallPremiumPct: 20,
			DoubleHighMaxYears:  1.0,
			WeakStockPBMin:      5,
			WeakPureBondMax:     95,
		},
		Focus: FocusRules{
			HighPremiumPct:        30,
			NearFloorMaxGap:       20,
			LowOptionMaxYears:     0.25,
			LowOptionMaxValue:     5,
			LowOptionMaxPrice:     105,
			MidTenorMinYears:      1.5,
			MidTenorMaxYears:      2.5,
			MidTenorMaxPremiumPct: 50,
		},
		Score: ScoreRules{
			PremiumTiersPct:     []float64{10, 20, 30},
			TenorMinYears:       1.5,
			TenorMaxYears:       3,
			LowPBMax:            2,
			MidPBMax:            3,
			NearResetLow:        0.8,
			NearResetHigh:       1.0,
			AboveCallRatio:      1.1,
			AboveCallPremiumPct: 20,
		},
	}
}

// LoadFile reads a yaml rules file over the defaults, so a file only needs
// the thresholds it changes.
func LoadFile(path string) (Rules, error) {
	r := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("LoadFile: %w", err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("LoadFile %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("LoadFile %s: %w", path, err)
	}
	return r, nil
}

// Validate rejects rule sets that would make the screens vacuous.
func (r Rules) Validate() error {
	if r.SmallCapMaxSize <= 0 || r.LargeCapMinSize <= r.SmallCapMaxSize {
		return fmt.Errorf("Rules: cap boundaries %v/%v must be positive and ordered",
			r.SmallCapMaxSize, r.LargeCapMinSize)
	}
	if r.DoubleHighPrice <= 0 || r.DoubleHighPremiumPct <= 0 {
		return fmt.Errorf("Rules: double-high thresholds must be positive")
	}
	if r.NearMaturityYears <= 0 {
		return fmt.Errorf("Rules: near_maturity_years must be positive")
	}
	if len(r.Score.PremiumTiersPct) == 0 {
		return fmt.Errorf("Rules: score premium tiers are required")
	}
	for i := 1; i < len(r.Score.PremiumTiersPct); i++ {
		if r.Score.PremiumTiersPct[i] <= r.Score.PremiumTiersPct[i-1] {
			return fmt.Errorf("Rules: score premium tiers must be ascending")
		}
	}
	return nil
}
