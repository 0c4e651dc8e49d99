package database

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no document has the requested id
var ErrNotFound = errors.New("document not found")

// Collection names, one per record kind
const (
	CollectionUsers     = "User"
	CollectionWatchlist = "Watchlist"
	CollectionTickers   = "StockTicker"
	CollectionOrders    = "Order"
	CollectionPositions = "PortfolioPosition"
	CollectionPortfolio = "Portfolio"
	CollectionSnapshots = "PortfolioSnapshot"
)

// DocumentStore persists JSON shaped documents grouped into named collections.
// Field names passed to FindBy and Search are the document's serialized field
// names, identical for the JSON and BSON encodings.
type DocumentStore interface {
	NewID() string
	Insert(ctx context.Context, collection, id string, doc interface{}) error
	FindAll(ctx context.Context, collection string, out interface{}) error
	FindByID(ctx context.Context, collection, id string, out interface{}) error
	FindBy(ctx context.Context, collection, field, value string, out interface{}) error
	Search(ctx context.Context, collection, field, term string, limit int, out interface{}) error
	Replace(ctx context.Context, collection, id string, doc interface{}) error
	Close(ctx context.Context) error
}

// Collection gives typed access to one collection of a DocumentStore
type Collection[T any] struct {
	store DocumentStore
	name  string
}

// NewCollection binds a collection name to a document type
func NewCollection[T any](store DocumentStore, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

// Name returns the collection name
func (c *Collection[T]) Name() string {
	return c.name
}

// NewID returns a fresh document id from the underlying store
func (c *Collection[T]) NewID() string {
	return c.store.NewID()
}

// Insert stores doc under id
func (c *Collection[T]) Insert(ctx context.Context, id string, doc *T) error {
	if err := c.store.Insert(ctx, c.name, id, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", c.name, err)
	}
	return nil
}

// FindAll returns every document in insertion order
func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	docs := []T{}
	if err := c.store.FindAll(ctx, c.name, &docs); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.name, err)
	}
	return nonNil(docs), nil
}

// FindByID returns the document with the given id or ErrNotFound
func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	if err := c.store.FindByID(ctx, c.name, id, &doc); err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", c.name, id, err)
	}
	return &doc, nil
}

// FindBy returns the documents whose field equals value
func (c *Collection[T]) FindBy(ctx context.Context, field, value string) ([]T, error) {
	docs := []T{}
	if err := c.store.FindBy(ctx, c.name, field, value, &docs); err != nil {
		return nil, fmt.Errorf("failed to query %s by %s: %w", c.name, field, err)
	}
	return nonNil(docs), nil
}

// Search returns up to limit documents whose field contains term, ignoring case
func (c *Collection[T]) Search(ctx context.Context, field, term string, limit int) ([]T, error) {
	docs := []T{}
	if err := c.store.Search(ctx, c.name, field, term, limit, &docs); err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", c.name, err)
	}
	return nonNil(docs), nil
}

// Replace overwrites the document stored under id
func (c *Collection[T]) Replace(ctx context.Context, id string, doc *T) error {
	if err := c.store.Replace(ctx, c.name, id, doc); err != nil {
		return fmt.Errorf("failed to replace %s %s: %w", c.name, id, err)
	}
	return nil
}

func nonNil[T any](docs []T) []T {
	if docs == nil {
		return []T{}
	}
	return docs
}
