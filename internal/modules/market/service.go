// Package market serves quotes, market indexes and ticker search.
package market

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stockwolf/stockwolf-api/internal/modules/tickers"
	"golang.org/x/sync/errgroup"
)

// MarketIndexes are the global indexes shown on the markets screen
var MarketIndexes = []string{
	"^GSPC", // S&P 500
	"^IXIC", // NASDAQ Composite
	"^NYA",  // NYSE Composite
	"^RUT",  // Russell 2000
	"^FTSE", // FTSE 100
	"^GDAXI",
	"^FCHI",
	"^N225",
	"^HSI",
}

// QuoteProvider fetches basic and detailed quotes
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (yahoo.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) ([]yahoo.Quote, error)
	GetDetailedQuote(ctx context.Context, symbol string) (yahoo.DetailedQuote, error)
	GetDetailedQuotes(ctx context.Context, symbols []string) ([]yahoo.DetailedQuote, error)
}

// TickerSearcher finds reference tickers by substring
type TickerSearcher interface {
	Search(ctx context.Context, term string) ([]tickers.Match, error)
}

// SearchResult is the body of GET /search/{term}
type SearchResult struct {
	ExactMatchFound bool            `json:"exactMatchFound"`
	StockData       yahoo.Quote     `json:"stockData"`
	StockTickers    []tickers.Match `json:"stockTickers"`
}

// Service combines the quote client and the ticker store
type Service struct {
	quotes  QuoteProvider
	tickers TickerSearcher
	log     zerolog.Logger
}

// NewService creates a market service
func NewService(quotes QuoteProvider, searcher TickerSearcher, log zerolog.Logger) *Service {
	return &Service{
		quotes:  quotes,
		tickers: searcher,
		log:     log.With().Str("service", "market").Logger(),
	}
}

// Markets returns quotes for the fixed index list
func (s *Service) Markets(ctx context.Context) ([]yahoo.Quote, error) {
	return s.quotes.GetQuotes(ctx, MarketIndexes)
}

// Search looks the lowercased term up both as a quote symbol and in the
// ticker store. The two lookups run concurrently; either failing fails the search.
func (s *Service) Search(ctx context.Context, term string) (*SearchResult, error) {
	term = strings.ToLower(term)

	var (
		quote   yahoo.Quote
		matches []tickers.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.tickers.Search(gctx, term)
		return err
	})
	g.Go(func() error {
		var err error
		quote, err = s.quotes.GetQuote(gctx, term)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if matches == nil {
		matches = []tickers.Match{}
	}

	return &SearchResult{
		ExactMatchFound: quote.Name != "",
		StockData:       quote,
		StockTickers:    matches,
	}, nil
}
