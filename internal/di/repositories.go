// Package di provides dependency injection for repository implementations.
package di

import (
	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/modules/portfolio"
	"github.com/stockwolf/stockwolf-api/internal/modules/tickers"
	"github.com/stockwolf/stockwolf-api/internal/modules/users"
	"github.com/stockwolf/stockwolf-api/internal/modules/watchlists"
)

// InitializeRepositories creates one repository per record kind on the container's store
func InitializeRepositories(container *Container, log zerolog.Logger) {
	store := container.Store

	container.UserRepo = users.NewRepository(store, log)
	container.WatchlistRepo = watchlists.NewRepository(store, log)
	container.TickerRepo = tickers.NewRepository(store, log)

	container.PortfolioRepo = portfolio.NewPortfolioRepository(store, log)
	container.PositionRepo = portfolio.NewPositionRepository(store, log)
	container.OrderRepo = portfolio.NewOrderRepository(store, log)
	container.SnapshotRepo = portfolio.NewSnapshotRepository(store)

	log.Debug().Msg("Repositories initialized")
}
