package portfolio

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/database"
)

// PortfolioRepositoryInterface is the portfolio store
type PortfolioRepositoryInterface interface {
	Create(ctx context.Context, p *Portfolio) error
	GetAll(ctx context.Context) ([]Portfolio, error)
	GetByID(ctx context.Context, id string) (*Portfolio, error)
	GetByUserID(ctx context.Context, userID string) ([]Portfolio, error)
	Touch(ctx context.Context, p *Portfolio) error
}

// PositionRepositoryInterface is the completed position store
type PositionRepositoryInterface interface {
	Create(ctx context.Context, p *Position) error
	GetAll(ctx context.Context) ([]Position, error)
	GetByID(ctx context.Context, id string) (*Position, error)
	GetByPortfolioID(ctx context.Context, portfolioID string) ([]Position, error)
}

// OrderRepositoryInterface is the order store
type OrderRepositoryInterface interface {
	Create(ctx context.Context, o *Order) error
	GetAll(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByPortfolioID(ctx context.Context, portfolioID string) ([]Order, error)
}

// SnapshotRepositoryInterface is the valuation history store
type SnapshotRepositoryInterface interface {
	Create(ctx context.Context, s *Snapshot) error
	GetByPortfolioID(ctx context.Context, portfolioID string) ([]Snapshot, error)
}

// PortfolioRepository stores portfolios in the Portfolio collection
type PortfolioRepository struct {
	docs *database.Collection[Portfolio]
	log  zerolog.Logger
}

// NewPortfolioRepository creates a portfolio repository
func NewPortfolioRepository(store database.DocumentStore, log zerolog.Logger) *PortfolioRepository {
	return &PortfolioRepository{
		docs: database.NewCollection[Portfolio](store, database.CollectionPortfolio),
		log:  log.With().Str("repo", "portfolios").Logger(),
	}
}

// Create assigns an id and creation timestamp and stores the portfolio
func (r *PortfolioRepository) Create(ctx context.Context, p *Portfolio) error {
	p.ID = r.docs.NewID()
	p.CreatedOnDate = time.Now().UTC()

	if err := r.docs.Insert(ctx, p.ID, p); err != nil {
		return err
	}

	r.log.Info().Str("portfolio_id", p.ID).Str("user_id", p.UserID).Float64("cash", p.Cash).Msg("Portfolio created")
	return nil
}

// GetAll returns every portfolio
func (r *PortfolioRepository) GetAll(ctx context.Context) ([]Portfolio, error) {
	return r.docs.FindAll(ctx)
}

// GetByID returns one portfolio or database.ErrNotFound
func (r *PortfolioRepository) GetByID(ctx context.Context, id string) (*Portfolio, error) {
	return r.docs.FindByID(ctx, id)
}

// GetByUserID returns the portfolios owned by a user
func (r *PortfolioRepository) GetByUserID(ctx context.Context, userID string) ([]Portfolio, error) {
	return r.docs.FindBy(ctx, "userId", userID)
}

// Touch refreshes the update timestamp
func (r *PortfolioRepository) Touch(ctx context.Context, p *Portfolio) error {
	now := time.Now().UTC()
	p.UpdatedOnDate = &now
	return r.docs.Replace(ctx, p.ID, p)
}

// PositionRepository stores positions in the PortfolioPosition collection
type PositionRepository struct {
	docs *database.Collection[Position]
	log  zerolog.Logger
}

// NewPositionRepository creates a position repository
func NewPositionRepository(store database.DocumentStore, log zerolog.Logger) *PositionRepository {
	return &PositionRepository{
		docs: database.NewCollection[Position](store, database.CollectionPositions),
		log:  log.With().Str("repo", "positions").Logger(),
	}
}

// Create stores a position. A missing order date defaults to now.
func (r *PositionRepository) Create(ctx context.Context, p *Position) error {
	p.ID = r.docs.NewID()
	p.CreatedOnDate = time.Now().UTC()
	if p.DateOrderPlaced == nil {
		placed := p.CreatedOnDate
		p.DateOrderPlaced = &placed
	}

	if err := r.docs.Insert(ctx, p.ID, p); err != nil {
		return err
	}

	r.log.Info().
		Str("position_id", p.ID).
		Str("portfolio_id", p.PortfolioID).
		Str("ticker", p.Ticker).
		Float64("shares", p.NumberOfShares).
		Msg("Position created")
	return nil
}

// GetAll returns every position
func (r *PositionRepository) GetAll(ctx context.Context) ([]Position, error) {
	return r.docs.FindAll(ctx)
}

// GetByID returns one position or database.ErrNotFound
func (r *PositionRepository) GetByID(ctx context.Context, id string) (*Position, error) {
	return r.docs.FindByID(ctx, id)
}

// GetByPortfolioID returns a portfolio's positions in insertion order
func (r *PositionRepository) GetByPortfolioID(ctx context.Context, portfolioID string) ([]Position, error) {
	return r.docs.FindBy(ctx, "portfolioId", portfolioID)
}

// OrderRepository stores orders in the Order collection
type OrderRepository struct {
	docs *database.Collection[Order]
	log  zerolog.Logger
}

// NewOrderRepository creates an order repository
func NewOrderRepository(store database.DocumentStore, log zerolog.Logger) *OrderRepository {
	return &OrderRepository{
		docs: database.NewCollection[Order](store, database.CollectionOrders),
		log:  log.With().Str("repo", "orders").Logger(),
	}
}

// Create stores an order. A missing order date defaults to now.
func (r *OrderRepository) Create(ctx context.Context, o *Order) error {
	o.ID = r.docs.NewID()
	o.CreatedOnDate = time.Now().UTC()
	if o.DateOrderPlaced == nil {
		placed := o.CreatedOnDate
		o.DateOrderPlaced = &placed
	}

	if err := r.docs.Insert(ctx, o.ID, o); err != nil {
		return err
	}

	r.log.Info().
		Str("order_id", o.ID).
		Str("portfolio_id", o.PortfolioID).
		Str("ticker", o.Ticker).
		Str("type", o.OrderType).
		Msg("Order placed")
	return nil
}

// GetAll returns every order
func (r *OrderRepository) GetAll(ctx context.Context) ([]Order, error) {
	return r.docs.FindAll(ctx)
}

// GetByID returns one order or database.ErrNotFound
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	return r.docs.FindByID(ctx, id)
}

// GetByPortfolioID returns a portfolio's orders in insertion order
func (r *OrderRepository) GetByPortfolioID(ctx context.Context, portfolioID string) ([]Order, error) {
	return r.docs.FindBy(ctx, "portfolioId", portfolioID)
}

// SnapshotRepository stores valuations in the PortfolioSnapshot collection
type SnapshotRepository struct {
	docs *database.Collection[Snapshot]
}

// NewSnapshotRepository creates a snapshot repository
func NewSnapshotRepository(store database.DocumentStore) *SnapshotRepository {
	return &SnapshotRepository{
		docs: database.NewCollection[Snapshot](store, database.CollectionSnapshots),
	}
}

// Create stores a snapshot, stamping it when TakenOnDate is unset
func (r *SnapshotRepository) Create(ctx context.Context, s *Snapshot) error {
	s.ID = r.docs.NewID()
	if s.TakenOnDate.IsZero() {
		s.TakenOnDate = time.Now().UTC()
	}
	return r.docs.Insert(ctx, s.ID, s)
}

// GetByPortfolioID returns a portfolio's snapshots oldest first
func (r *SnapshotRepository) GetByPortfolioID(ctx context.Context, portfolioID string) ([]Snapshot, error) {
	return r.docs.FindBy(ctx, "portfolioId", portfolioID)
}
