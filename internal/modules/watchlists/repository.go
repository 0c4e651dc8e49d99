package watchlists

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/database"
)

// Repository is the watchlist store
type Repository interface {
	Create(ctx context.Context, w *Watchlist) error
	GetAll(ctx context.Context) ([]Watchlist, error)
	GetByID(ctx context.Context, id string) (*Watchlist, error)
	GetByUserID(ctx context.Context, userID string) ([]Watchlist, error)
	Update(ctx context.Context, w *Watchlist) error
}

// WatchlistRepository stores watchlists in the Watchlist collection
type WatchlistRepository struct {
	docs *database.Collection[Watchlist]
	log  zerolog.Logger
}

// NewRepository creates a watchlist repository
func NewRepository(store database.DocumentStore, log zerolog.Logger) *WatchlistRepository {
	return &WatchlistRepository{
		docs: database.NewCollection[Watchlist](store, database.CollectionWatchlist),
		log:  log.With().Str("repo", "watchlists").Logger(),
	}
}

// Create assigns an id and creation timestamp and stores the watchlist
func (r *WatchlistRepository) Create(ctx context.Context, w *Watchlist) error {
	w.ID = r.docs.NewID()
	w.CreatedOnDate = time.Now().UTC()

	if err := r.docs.Insert(ctx, w.ID, w); err != nil {
		return err
	}

	r.log.Info().Str("watchlist_id", w.ID).Str("user_id", w.UserID).Msg("Watchlist created")
	return nil
}

// GetAll returns every watchlist
func (r *WatchlistRepository) GetAll(ctx context.Context) ([]Watchlist, error) {
	return r.docs.FindAll(ctx)
}

// GetByID returns one watchlist or database.ErrNotFound
func (r *WatchlistRepository) GetByID(ctx context.Context, id string) (*Watchlist, error) {
	return r.docs.FindByID(ctx, id)
}

// GetByUserID returns the watchlists owned by a user
func (r *WatchlistRepository) GetByUserID(ctx context.Context, userID string) ([]Watchlist, error) {
	return r.docs.FindBy(ctx, "userId", userID)
}

// Update replaces the whole record and refreshes its update timestamp
func (r *WatchlistRepository) Update(ctx context.Context, w *Watchlist) error {
	now := time.Now().UTC()
	w.UpdatedOnDate = &now
	return r.docs.Replace(ctx, w.ID, w)
}
