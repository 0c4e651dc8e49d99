// Package di provides dependency injection for services and handlers.
package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/cache"
	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stockwolf/stockwolf-api/internal/config"
	"github.com/stockwolf/stockwolf-api/internal/metrics"
	"github.com/stockwolf/stockwolf-api/internal/modules/market"
	markethandlers "github.com/stockwolf/stockwolf-api/internal/modules/market/handlers"
	"github.com/stockwolf/stockwolf-api/internal/modules/portfolio"
	portfoliohandlers "github.com/stockwolf/stockwolf-api/internal/modules/portfolio/handlers"
	"github.com/stockwolf/stockwolf-api/internal/modules/users"
	usershandlers "github.com/stockwolf/stockwolf-api/internal/modules/users/handlers"
	watchlistshandlers "github.com/stockwolf/stockwolf-api/internal/modules/watchlists/handlers"
)

// InitializeServices builds the quote client, the services and the HTTP handlers.
// Repositories must already be set on the container.
func InitializeServices(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	container.Metrics = metrics.New()

	// Quote client, optionally cached in Redis
	container.QuoteClient = yahoo.NewClient(cfg.Quote.BaseURL, cfg.Quote.Timeout, log)
	container.QuoteClient.SetObserver(container.Metrics)

	if cfg.Cache.Enabled() {
		client, err := cache.Connect(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		container.Redis = client
		container.QuoteClient.SetCache(cache.NewRedisQuoteCache(client, cfg.Cache.TTL, log))
		log.Info().Str("addr", cfg.Cache.RedisAddr).Dur("ttl", cfg.Cache.TTL).Msg("Quote cache enabled")
	}

	// Services
	container.UserService = users.NewService(container.UserRepo)
	container.MarketService = market.NewService(container.QuoteClient, container.TickerRepo, log)
	container.PortfolioService = portfolio.NewService(
		container.PortfolioRepo,
		container.PositionRepo,
		container.OrderRepo,
		container.SnapshotRepo,
		container.QuoteClient,
		cfg.DefaultPortfolioCash,
		log,
	)
	container.PortfolioService.SetObserver(container.Metrics)

	// Handlers
	container.UserHandler = usershandlers.NewHandler(container.UserRepo, container.UserService, log)
	container.WatchlistHandler = watchlistshandlers.NewHandler(container.WatchlistRepo, log)
	container.MarketHandler = markethandlers.NewHandler(container.MarketService, container.QuoteClient, cfg.Quote.StreamInterval, log)
	container.PortfolioHandler = portfoliohandlers.NewHandler(container.PortfolioRepo, container.PortfolioService, log)

	return nil
}
