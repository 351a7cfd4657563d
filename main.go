package main

import (
	"fmt"

	"github.com/lokewei/cblib/convertible"
)

func main() {
	contract := convertible.ContractParameters{
		StockPrice:       19.78,
		ConversionPrice:  19.34,
		RiskFreeRate:     0.01628,
		Volatility:       0.5784,
		YearsToMaturity:  3.287,
		Steps:            500,
		PureBondValue:    94.25,
		CallTriggerPrice: 25.142,
		PutTriggerPrice:  13.538,
		RedemptionPrice:  113,
	}

	plain, err := convertible.Value(contract)
	if err != nil {
		panic(err)
	}

	contract.Reset = &convertible.ResetTerms{
		TriggerRatio:  0.85,
		Probability:   0.3,
		NetAssetValue: 5,
	}
	withReset, err := convertible.Value(contract)
	if err != nil {
		panic(err)
	}

	bs, err := convertible.BlackScholesValue(convertible.BlackScholesInput{
		StockPrice:      contract.StockPrice,
		ConversionPrice: contract.ConversionPrice,
		RiskFreeRate:    contract.RiskFreeRate,
		Volatility:      contract.Volatility,
		YearsToMaturity: contract.YearsToMaturity,
		PureBondValue:   contract.PureBondValue,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Lattice value:      %.4f\n", plain)
	fmt.Printf("With reset clause:  %.4f\n", withReset)
	fmt.Printf("Black-Scholes:      %.4f\n", bs.Value)
	fmt.Printf("Option value:       %.4f\n", plain-contract.PureBondValue)
}
