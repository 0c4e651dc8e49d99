/**
 * Package di provides dependency injection type definitions.
 *
 * The Container holds every long-lived dependency of the API process. It is
 * created by Wire() and handed to cmd/server, which mounts the handlers and
 * starts the scheduler.
 */
package di

import (
	"github.com/go-redis/redis/v8"
	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stockwolf/stockwolf-api/internal/database"
	"github.com/stockwolf/stockwolf-api/internal/metrics"
	"github.com/stockwolf/stockwolf-api/internal/modules/market"
	markethandlers "github.com/stockwolf/stockwolf-api/internal/modules/market/handlers"
	"github.com/stockwolf/stockwolf-api/internal/modules/portfolio"
	portfoliohandlers "github.com/stockwolf/stockwolf-api/internal/modules/portfolio/handlers"
	"github.com/stockwolf/stockwolf-api/internal/modules/tickers"
	"github.com/stockwolf/stockwolf-api/internal/modules/users"
	usershandlers "github.com/stockwolf/stockwolf-api/internal/modules/users/handlers"
	"github.com/stockwolf/stockwolf-api/internal/modules/watchlists"
	watchlistshandlers "github.com/stockwolf/stockwolf-api/internal/modules/watchlists/handlers"
	"github.com/stockwolf/stockwolf-api/internal/scheduler"
)

/**
 * Container holds all dependencies for the application.
 *
 * Architecture:
 * - Store: one document store, SQLite (SQLiteDB set) or MongoDB (SQLiteDB nil)
 * - Clients: the upstream quote client, optionally backed by Redis
 * - Repositories: one per record kind
 * - Services and handlers: business logic and HTTP surface per module
 */
type Container struct {
	// Storage
	Store    database.DocumentStore
	SQLiteDB *database.DB // nil when the mongo backend is selected

	// Clients
	Redis       *redis.Client // nil when caching is disabled
	QuoteClient *yahoo.Client
	Metrics     *metrics.Metrics

	// Repositories
	UserRepo      *users.UserRepository
	WatchlistRepo *watchlists.WatchlistRepository
	TickerRepo    *tickers.TickerRepository
	PortfolioRepo *portfolio.PortfolioRepository
	PositionRepo  *portfolio.PositionRepository
	OrderRepo     *portfolio.OrderRepository
	SnapshotRepo  *portfolio.SnapshotRepository

	// Services
	UserService      *users.Service
	MarketService    *market.Service
	PortfolioService *portfolio.Service

	// Handlers
	UserHandler      *usershandlers.Handler
	WatchlistHandler *watchlistshandlers.Handler
	MarketHandler    *markethandlers.Handler
	PortfolioHandler *portfoliohandlers.Handler

	Scheduler *scheduler.Scheduler
}

// JobInstances holds the scheduled jobs so they can also be triggered manually
type JobInstances struct {
	Revaluation         *portfolio.RevaluationJob
	CheckWALCheckpoints *scheduler.CheckWALCheckpointsJob // nil for the mongo backend
}

// All returns the non-nil jobs
func (j *JobInstances) All() []scheduler.Job {
	var all []scheduler.Job
	if j.Revaluation != nil {
		all = append(all, j.Revaluation)
	}
	if j.CheckWALCheckpoints != nil {
		all = append(all, j.CheckWALCheckpoints)
	}
	return all
}
