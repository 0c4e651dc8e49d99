package tickers

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout of a ticker seed file:
//
//	tickers:
//	  - symbol: AAPL
//	    name: Apple Inc.
//	    sector: Technology
//	    exchange: NASDAQ
type SeedFile struct {
	Tickers []StockTicker `yaml:"tickers"`
}

// ParseSeed reads a YAML seed file
func ParseSeed(r io.Reader) ([]StockTicker, error) {
	var seed SeedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to parse ticker seed: %w", err)
	}

	for i, t := range seed.Tickers {
		if t.Symbol == "" {
			return nil, fmt.Errorf("ticker %d has no symbol", i+1)
		}
	}
	return seed.Tickers, nil
}

// Seed stores every ticker and returns how many were written
func Seed(ctx context.Context, repo Repository, list []StockTicker) (int, error) {
	for i := range list {
		if err := repo.Create(ctx, &list[i]); err != nil {
			return i, fmt.Errorf("failed to seed %s: %w", list[i].Symbol, err)
		}
	}
	return len(list), nil
}
