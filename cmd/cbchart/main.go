package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lokewei/cblib/marketdata/jisilu"
	"github.com/lokewei/cblib/screener"
	"github.com/lokewei/cblib/visualize"
)

func main() {
	dataDir := flag.String("data", ".", "directory holding jisilu csv exports")
	date := flag.String("date", "", "export date YYYY-MM-DD (default: newest files)")
	outDir := flag.String("outdir", ".", "directory to write png charts into")
	flag.Parse()

	var (
		ds  *jisilu.Dataset
		err error
	)
	if *date != "" {
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

	r := screener.Default()
	ms := screener.Compute(bonds, r)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "outdir: %v\n", err)
		os.Exit(1)
	}

	charts := []struct {
		file string
		draw func(string) error
	}{
		{"price_premium.png", func(p string) error { return visualize.PricePremium(ms, r, p) }},
		{"reset_map.png", func(p string) error { return visualize.ResetGamingMap(ms, p) }},
		{"ytm_tenor.png", func(p string) error { return visualize.YTMTenor(ms, p) }},
		{"premium_momentum.png", func(p string) error { return visualize.PremiumMomentum(ms, p) }},
	}
	for _, c := range charts {
		path := filepath.Join(*outDir, c.file)
		if err := c.draw(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", c.file, err)
			os.Exit(1)
		}
		fmt.Println(path)
	}
}
