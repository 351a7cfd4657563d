package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lokewei/cblib/convertible"
)

type valueFixture struct {
	Bonds []bondCase `json:"bonds"`
}

type bondCase struct {
	Name             string  `json:"name"`
	StockPrice       float64 `json:"stock_price"`
	ConversionPrice  float64 `json:"conversion_price"`
	RiskFreeRate     float64 `json:"risk_free_rate"`
	Volatility       float64 `json:"volatility"`
	YearsToMaturity  float64 `json:"years_to_maturity"`
	Steps            int     `json:"steps"`
	PureBondValue    float64 `json:"pure_bond_value"`
	CallTriggerPrice float64 `json:"call_trigger_price"`
	PutTriggerPrice  float64 `json:"put_trigger_price"`
	RedemptionPrice  float64 `json:"redemption_price"`
	// MarketPrice, when positive, additionally backs out an implied vol.
	MarketPrice float64    `json:"market_price"`
	Reset       *resetCase `json:"reset"`
}

type resetCase struct {
	TriggerRatio  float64 `json:"trigger_ratio"`
	Probability   float64 `json:"probability"`
	NetAssetValue float64 `json:"net_asset_value"`
	Markup        float64 `json:"markup"`
}

type valueOutput struct {
	Name              string  `json:"name"`
	LatticeValue      float64 `json:"lattice_value"`
	BlackScholesValue float64 `json:"black_scholes_value"`
	OptionValue       float64 `json:"option_value"`
	ImpliedVolatility float64 `json:"implied_volatility,omitempty"`
}

func main() {
	input := flag.String("input", "", "valuation fixture JSON path")
	flag.Parse()

	path := strings.TrimSpace(*input)
	if path == "" {
		fmt.Fprintf(os.Stderr, "usage: cbvalue -input /path/to/input.json\n")
		os.Exit(2)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	var fixture valueFixture
	if err := json.Unmarshal(raw, &fixture); err != nil {
		fmt.Fprintf(os.Stderr, "parse input: %v\n", err)
		os.Exit(1)
	}
	if len(fixture.Bonds) == 0 {
		fmt.Fprintf(os.Stderr, "input: bonds is required\n")
		os.Exit(1)
	}

	outputs := make([]valueOutput, 0, len(fixture.Bonds))
	for _, tc := range fixture.Bonds {
		p := convertible.ContractParameters{
			StockPrice:       tc.StockPrice,
			ConversionPrice:  tc.ConversionPrice,
			RiskFreeRate:     tc.RiskFreeRate,
			Volatility:       tc.Volatility,
			YearsToMaturity:  tc.YearsToMaturity,
			Steps:            tc.Steps,
			PureBondValue:    tc.PureBondValue,
			CallTriggerPrice: tc.CallTriggerPrice,
			PutTriggerPrice:  tc.PutTriggerPrice,
			RedemptionPrice:  tc.RedemptionPrice,
		}
		if tc.Reset != nil {
			p.Reset = &convertible.ResetTerms{
				TriggerRatio:  tc.Reset.TriggerRatio,
				Probability:   tc.Reset.Probability,
				NetAssetValue: tc.Reset.NetAssetValue,
				Markup:        tc.Reset.Markup,
			}
		}

		lattice, err := convertible.Value(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "name=%s Value: %v\n", tc.Name, err)
			os.Exit(1)
		}

		bs, err := convertible.BlackScholesValue(convertible.BlackScholesInput{
			StockPrice:      tc.StockPrice,
			ConversionPrice: tc.ConversionPrice,
			RiskFreeRate:    tc.RiskFreeRate,
			Volatility:      tc.Volatility,
			YearsToMaturity: tc.YearsToMaturity,
			PureBondValue:   tc.PureBondValue,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "name=%s BlackScholesValue: %v\n", tc.Name, err)
			os.Exit(1)
		}

		out := valueOutput{
			Name:              tc.Name,
			LatticeValue:      lattice,
			BlackScholesValue: bs.Value,
			OptionValue:       lattice - tc.PureBondValue,
		}

		if tc.MarketPrice > 0 {
			iv, err := convertible.ImpliedVolatility(convertible.BlackScholesInput{
				StockPrice:      tc.StockPrice,
				ConversionPrice: tc.ConversionPrice,
				RiskFreeRate:    tc.RiskFreeRate,
				Volatility:      tc.Volatility,
				YearsToMaturity: tc.YearsToMaturity,
				PureBondValue:   tc.PureBondValue,
			}, tc.MarketPrice)
			if err != nil {
				fmt.Fprintf(os.Stderr, "name=%s ImpliedVolatility: %v\n", tc.Name, err)
				os.Exit(1)
			}
			out.ImpliedVolatility = iv
		}

		outputs = append(outputs, out)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outputs); err != nil {
		fmt.Fprintf(os.Stderr, "json encode: %v\n", err)
		os.Exit(1)
	}
}
