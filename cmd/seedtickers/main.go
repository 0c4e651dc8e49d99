// Command seedtickers loads stock ticker reference data into the configured
// document store. Without -file the built-in ticker list is used.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/stockwolf/stockwolf-api/internal/config"
	"github.com/stockwolf/stockwolf-api/internal/di"
	"github.com/stockwolf/stockwolf-api/internal/modules/tickers"
	"github.com/stockwolf/stockwolf-api/pkg/embedded"
	"github.com/stockwolf/stockwolf-api/pkg/logger"
)

func main() {
	seedPath := flag.String("file", "", "path to a YAML ticker seed file (default: built-in list)")
	dryRun := flag.Bool("dry-run", false, "parse and list tickers without writing them")
	all := flag.Bool("all", false, "write every ticker, even symbols already stored")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})

	list, err := readSeed(*seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Parsed %d ticker(s)\n", len(list))

	if *dryRun {
		for _, t := range list {
			fmt.Printf("  %-8s %s (%s, %s)\n", t.Symbol, t.Name, t.Sector, t.Exchange)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container, err := di.InitializeDatabases(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store error: %v\n", err)
		os.Exit(1)
	}
	defer container.Close(ctx)

	repo := tickers.NewRepository(container.Store, log)

	if !*all {
		existing, err := repo.GetAll(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list tickers error: %v\n", err)
			os.Exit(1)
		}
		list = missingTickers(list, existing)
		fmt.Printf("%d ticker(s) not yet stored\n", len(list))
	}

	written, err := tickers.Seed(ctx, repo, list)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seeded %d ticker(s) before failing: %v\n", written, err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d ticker(s) into the %s store\n", written, cfg.Store.Backend)
}

func readSeed(path string) ([]tickers.StockTicker, error) {
	var r io.Reader = embedded.TickersReader()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return tickers.ParseSeed(r)
}

// missingTickers drops entries whose symbol is already stored, case-insensitively
func missingTickers(list, existing []tickers.StockTicker) []tickers.StockTicker {
	stored := make(map[string]bool, len(existing))
	for _, t := range existing {
		stored[strings.ToUpper(t.Symbol)] = true
	}

	var missing []tickers.StockTicker
	for _, t := range list {
		if !stored[strings.ToUpper(t.Symbol)] {
			missing = append(missing, t)
		}
	}
	return missing
}
