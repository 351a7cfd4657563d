package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/lokewei/cblib/marketdata/jisilu"
	"github.com/lokewei/cblib/screener"
)

func main() {
	dataDir := flag.String("data", ".", "directory holding jisilu csv exports")
	date := flag.String("date", "", "export date YYYY-MM-DD (default: newest files)")
	rulesPath := flag.String("rules", "", "screening rules yaml (default: built-in)")
	topN := flag.Int("top", 20, "ranked names to print")
	withValue := flag.Bool("value", false, "compute lattice fair values")
	vol := flag.Float64("vol", 0, "valuation volatility override")
	rate := flag.Float64("rate", 0, "valuation risk-free rate override")
	resetProb := flag.Float64("reset-prob", 0, "downward-revision probability for valuation")
	csvOut := flag.String("csv", "", "write the scored universe to this csv path")
	flag.Parse()

	r := screener.Default()
	if *rulesPath != "" {
		var err error
		if r, err = screener.LoadFile(*rulesPath); err != nil {
			fmt.Fprintf(os.Stderr, "rules: %v\n", err)
			os.Exit(1)
		}
	}

	var (
		ds         *jisilu.Dataset
		err        error
		reportDate = time.Now()
	)
	if *date != "" {
		if reportDate, err = time.Parse("2006-01-02", *date); err != nil {
			fmt.Fprintf(os.Stderr, "date: %v\n", err)
			os.Exit(2)
		}
		ds, err = jisilu.Load(*dataDir, *date)
	} else {
		ds, err = jisilu.LoadLatest(*dataDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		os.Exit(1)
	}

	bonds, err := jisilu.Merge(ds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge: %v\n", err)
		os.Exit(1)
	}

	ms := screener.Compute(bonds, r)

	if *withValue {
		cfg := screener.DefaultValuation()
		if *vol > 0 {
			cfg.Volatility = *vol
		}
		if *rate > 0 {
			cfg.RiskFreeRate = *rate
		}
		cfg.ResetProbability = *resetProb
		priced := screener.FairValues(ms, cfg)
		fmt.Fprintf(os.Stderr, "priced %d/%d bonds\n", priced, len(ms))
	}

	report := screener.BuildReport(ms, r, reportDate, *topN)
	if err := report.WriteText(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		os.Exit(1)
	}

	if *csvOut != "" {
		if err := writeScoredCSV(*csvOut, ms); err != nil {
			fmt.Fprintf(os.Stderr, "csv: %v\n", err)
			os.Exit(1)
		}
	}
}

func writeScoredCSV(path string, ms []screener.Metrics) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"code", "name", "price", "premium_pct", "years_left",
		"option_value", "fair_value", "score",
	}); err != nil {
		return err
	}
	for _, m := range ms {
		fair := ""
		if m.FairValue > 0 {
			fair = strconv.FormatFloat(m.FairValue, 'f', 2, 64)
		}
		row := []string{
			m.Code,
			m.Name,
			m.Price.StringFixed(2),
			strconv.FormatFloat(m.PremiumPct, 'f', 2, 64),
			strconv.FormatFloat(m.YearsLeft, 'f', 2, 64),
			strconv.FormatFloat(m.OptionValue, 'f', 2, 64),
			fair,
			strconv.Itoa(m.Score),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
