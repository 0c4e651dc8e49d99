package tickers

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/database"
)

// Repository is the ticker store
type Repository interface {
	Create(ctx context.Context, t *StockTicker) error
	GetAll(ctx context.Context) ([]StockTicker, error)
	GetByID(ctx context.Context, id string) (*StockTicker, error)
	Search(ctx context.Context, term string) ([]Match, error)
}

// TickerRepository stores tickers in the StockTicker collection
type TickerRepository struct {
	docs    *database.Collection[StockTicker]
	matches *database.Collection[Match]
	log     zerolog.Logger
}

// NewRepository creates a ticker repository
func NewRepository(store database.DocumentStore, log zerolog.Logger) *TickerRepository {
	return &TickerRepository{
		docs:    database.NewCollection[StockTicker](store, database.CollectionTickers),
		matches: database.NewCollection[Match](store, database.CollectionTickers),
		log:     log.With().Str("repo", "tickers").Logger(),
	}
}

// Create stores a ticker, filling in the searchable text when missing
func (r *TickerRepository) Create(ctx context.Context, t *StockTicker) error {
	t.ID = r.docs.NewID()
	if t.Searchable == "" {
		t.Searchable = SearchableText(t.Symbol, t.Name)
	} else {
		t.Searchable = strings.ToLower(t.Searchable)
	}
	return r.docs.Insert(ctx, t.ID, t)
}

// GetAll returns every ticker
func (r *TickerRepository) GetAll(ctx context.Context) ([]StockTicker, error) {
	return r.docs.FindAll(ctx)
}

// GetByID returns one ticker or database.ErrNotFound
func (r *TickerRepository) GetByID(ctx context.Context, id string) (*StockTicker, error) {
	return r.docs.FindByID(ctx, id)
}

// Search returns up to SearchLimit tickers whose searchable text contains term
func (r *TickerRepository) Search(ctx context.Context, term string) ([]Match, error) {
	term = strings.ToLower(term)
	matches, err := r.matches.Search(ctx, "searchable", term, SearchLimit)
	if err != nil {
		return nil, err
	}

	r.log.Debug().Str("term", term).Int("matches", len(matches)).Msg("Ticker search")
	return matches, nil
}
