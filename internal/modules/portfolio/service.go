package portfolio

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stockwolf/stockwolf-api/pkg/formulas"
)

var (
	// ErrUserRequired is returned when a portfolio is created without an owner
	ErrUserRequired = errors.New("a user id is required")
	// ErrTickerRequired is returned when a position or order has no ticker
	ErrTickerRequired = errors.New("a ticker is required")
	// ErrInvalidOrderType is returned for order types other than buy and sell
	ErrInvalidOrderType = errors.New("orderType must be \"buy\" or \"sell\"")
)

// PriceProvider fetches current and previous close prices
type PriceProvider interface {
	GetPriceSnapshots(ctx context.Context, symbols []string) ([]yahoo.PriceSnapshot, error)
}

// ValuationObserver is told about every computed valuation
type ValuationObserver interface {
	ObserveValuation()
}

// Affordability is the body of GET /portfolio/{id}/affordable/{ticker}
type Affordability struct {
	Ticker           string         `json:"ticker"`
	CurrentPrice     formulas.Float `json:"currentPrice"`
	FreeCash         float64        `json:"freeCash"`
	AffordableShares float64        `json:"affordableShares"`
}

// Service values portfolios against live prices
type Service struct {
	portfolios  PortfolioRepositoryInterface
	positions   PositionRepositoryInterface
	orders      OrderRepositoryInterface
	snapshots   SnapshotRepositoryInterface
	prices      PriceProvider
	observer    ValuationObserver
	defaultCash float64
	log         zerolog.Logger
}

// NewService creates a portfolio service
func NewService(
	portfolios PortfolioRepositoryInterface,
	positions PositionRepositoryInterface,
	orders OrderRepositoryInterface,
	snapshots SnapshotRepositoryInterface,
	prices PriceProvider,
	defaultCash float64,
	log zerolog.Logger,
) *Service {
	return &Service{
		portfolios:  portfolios,
		positions:   positions,
		orders:      orders,
		snapshots:   snapshots,
		prices:      prices,
		defaultCash: defaultCash,
		log:         log.With().Str("service", "portfolio").Logger(),
	}
}

// SetObserver registers a valuation observer
func (s *Service) SetObserver(o ValuationObserver) {
	s.observer = o
}

// CreatePortfolio opens a portfolio whose starting cash is also its baseline
func (s *Service) CreatePortfolio(ctx context.Context, req CreatePortfolioRequest) (*Portfolio, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}

	name := req.Name
	if name == "" {
		name = DefaultName
	}
	cash := s.defaultCash
	if req.Cash != nil {
		cash = *req.Cash
	}

	p := &Portfolio{
		UserID:                req.UserID,
		Name:                  name,
		InitialPortfolioValue: cash,
		Cash:                  cash,
	}
	if err := s.portfolios.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}
	return p, nil
}

// AddPosition records a completed holding in an existing portfolio
func (s *Service) AddPosition(ctx context.Context, portfolioID string, req HoldingRequest) (*Position, error) {
	if strings.TrimSpace(req.Ticker) == "" {
		return nil, ErrTickerRequired
	}
	if _, err := s.portfolios.GetByID(ctx, portfolioID); err != nil {
		return nil, err
	}

	p := &Position{
		PortfolioID:     portfolioID,
		CompanyName:     req.CompanyName,
		Ticker:          req.Ticker,
		NumberOfShares:  req.NumberOfShares,
		PurchasePrice:   req.PurchasePrice,
		DateOrderPlaced: req.DateOrderPlaced,
	}
	if err := s.positions.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}
	return p, nil
}

// PlaceOrder records a buy or sell order against an existing portfolio
func (s *Service) PlaceOrder(ctx context.Context, portfolioID string, req HoldingRequest) (*Order, error) {
	if strings.TrimSpace(req.Ticker) == "" {
		return nil, ErrTickerRequired
	}
	orderType := strings.ToLower(req.OrderType)
	if orderType != OrderTypeBuy && orderType != OrderTypeSell {
		return nil, ErrInvalidOrderType
	}
	if _, err := s.portfolios.GetByID(ctx, portfolioID); err != nil {
		return nil, err
	}

	o := &Order{
		PortfolioID:     portfolioID,
		CompanyName:     req.CompanyName,
		Ticker:          req.Ticker,
		NumberOfShares:  req.NumberOfShares,
		PurchasePrice:   req.PurchasePrice,
		OrderType:       orderType,
		DateOrderPlaced: req.DateOrderPlaced,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return o, nil
}

// Positions returns a portfolio's positions with live gains, rounded for display
func (s *Service) Positions(ctx context.Context, portfolioID string) ([]FormattedPosition, error) {
	if _, err := s.portfolios.GetByID(ctx, portfolioID); err != nil {
		return nil, err
	}

	valued, err := s.valuePositions(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return FormatPositions(valued), nil
}

// Orders returns a portfolio's orders
func (s *Service) Orders(ctx context.Context, portfolioID string) ([]FormattedOrder, error) {
	orders, err := s.portfolioOrders(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return FormatOrders(orders), nil
}

// PendingPositions returns a portfolio's buy orders in the pending position shape
func (s *Service) PendingPositions(ctx context.Context, portfolioID string) ([]PendingPosition, error) {
	orders, err := s.portfolioOrders(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return FormatPendingPositions(orders), nil
}

// Value computes the current valuation, records it as a snapshot and
// refreshes the portfolio's update timestamp.
// The portfolio, its positions and its orders are read without a transaction.
func (s *Service) Value(ctx context.Context, portfolioID string) (*Valuation, error) {
	p, err := s.portfolios.GetByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	valued, err := s.valuePositions(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	valuation := CalculatePortfolioValue(*p, valued, orders)

	snapshot := &Snapshot{
		PortfolioID: portfolioID,
		Valuation:   valuation,
		TakenOnDate: time.Now().UTC(),
	}
	if err := s.snapshots.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	if err := s.portfolios.Touch(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to touch portfolio: %w", err)
	}

	if s.observer != nil {
		s.observer.ObserveValuation()
	}

	s.log.Debug().
		Str("portfolio_id", portfolioID).
		Float64("value", valuation.PortfolioValue).
		Float64("today", valuation.TodaysGainOrLoss).
		Msg("Portfolio valued")

	return &valuation, nil
}

// History returns a portfolio's snapshots and summary statistics of its value
func (s *Service) History(ctx context.Context, portfolioID string) (*History, error) {
	if _, err := s.portfolios.GetByID(ctx, portfolioID); err != nil {
		return nil, err
	}

	snapshots, err := s.snapshots.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots: %w", err)
	}

	values := make([]float64, len(snapshots))
	for i, snap := range snapshots {
		values[i] = snap.PortfolioValue
	}

	return &History{
		Snapshots: snapshots,
		Stats:     formulas.Summarise(values),
	}, nil
}

// Affordable reports how many whole shares of ticker the free cash buys
func (s *Service) Affordable(ctx context.Context, portfolioID, ticker string) (*Affordability, error) {
	p, err := s.portfolios.GetByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	prices, err := s.priceDictionary(ctx, []string{ticker})
	if err != nil {
		return nil, err
	}
	price, err := prices.require(ticker)
	if err != nil {
		return nil, err
	}

	freeCash := CalculatePortfolioValue(*p, nil, orders).Cash
	return &Affordability{
		Ticker:           ticker,
		CurrentPrice:     price.CurrentPrice,
		FreeCash:         freeCash,
		AffordableShares: AffordableShares(float64(price.CurrentPrice), freeCash),
	}, nil
}

// RevalueAll values every portfolio. Failures are collected and the
// remaining portfolios are still valued.
func (s *Service) RevalueAll(ctx context.Context) (int, error) {
	portfolios, err := s.portfolios.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list portfolios: %w", err)
	}

	var errs []error
	valued := 0
	for _, p := range portfolios {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if _, err := s.Value(ctx, p.ID); err != nil {
			s.log.Warn().Err(err).Str("portfolio_id", p.ID).Msg("Failed to value portfolio")
			errs = append(errs, fmt.Errorf("portfolio %s: %w", p.ID, err))
			continue
		}
		valued++
	}
	return valued, errors.Join(errs...)
}

func (s *Service) portfolioOrders(ctx context.Context, portfolioID string) ([]Order, error) {
	if _, err := s.portfolios.GetByID(ctx, portfolioID); err != nil {
		return nil, err
	}

	orders, err := s.orders.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// valuePositions prices every position of a portfolio with one quote request
func (s *Service) valuePositions(ctx context.Context, portfolioID string) ([]ValuedPosition, error) {
	positions, err := s.positions.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	if len(positions) == 0 {
		return []ValuedPosition{}, nil
	}

	tickers := make([]string, 0, len(positions))
	for _, p := range positions {
		tickers = append(tickers, p.Ticker)
	}

	prices, err := s.priceDictionary(ctx, tickers)
	if err != nil {
		return nil, err
	}

	valued := make([]ValuedPosition, 0, len(positions))
	for _, p := range positions {
		price, err := prices.require(p.Ticker)
		if err != nil {
			return nil, err
		}
		valued = append(valued, ValuedPosition{
			Position:     p,
			PositionGain: CalculatePositionGainOrLoss(p, price),
		})
	}
	return valued, nil
}

func (s *Service) priceDictionary(ctx context.Context, tickers []string) (QuoteDictionary, error) {
	snapshots, err := s.prices.GetPriceSnapshots(ctx, tickers)
	if err != nil {
		return nil, err
	}
	return FormatQuoteDictionary(snapshots), nil
}

// require returns a usable price for ticker. A missing or unparseable
// price is reported as an upstream failure.
func (d QuoteDictionary) require(ticker string) (yahoo.PriceSnapshot, error) {
	price, ok := d.Lookup(ticker)
	if !ok || !finite(price.CurrentPrice) || !finite(price.PreviousClose) {
		return yahoo.PriceSnapshot{}, fmt.Errorf("%w: no price for %s", yahoo.ErrUnavailable, ticker)
	}
	return price, nil
}

func finite(f formulas.Float) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
