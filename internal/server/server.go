// Package server provides the HTTP server and routing for the StockWolf API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/stockwolf/stockwolf-api/internal/metrics"
	markethandlers "github.com/stockwolf/stockwolf-api/internal/modules/market/handlers"
	portfoliohandlers "github.com/stockwolf/stockwolf-api/internal/modules/portfolio/handlers"
	usershandlers "github.com/stockwolf/stockwolf-api/internal/modules/users/handlers"
	watchlistshandlers "github.com/stockwolf/stockwolf-api/internal/modules/watchlists/handlers"
)

// Config holds server configuration
type Config struct {
	Log          zerolog.Logger
	Port         int
	DevMode      bool
	StoreBackend string
	Metrics      *metrics.Metrics

	Users      *usershandlers.Handler
	Watchlists *watchlistshandlers.Handler
	Market     *markethandlers.Handler
	Portfolio  *portfoliohandlers.Handler
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            Config
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		cfg:            cfg,
		systemHandlers: NewSystemHandlers(cfg.Log, cfg.StoreBackend),
	}

	s.setupMiddleware()
	s.setupRoutes()

	// No WriteTimeout: websocket streams outlive it. API routes are bounded
	// by the timeout middleware instead.
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// SystemHandlers exposes the system handlers so jobs can be registered
func (s *Server) SystemHandlers() *SystemHandlers {
	return s.systemHandlers
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupMiddleware configures middleware shared by every route
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	if s.cfg.Metrics != nil {
		s.router.Use(s.cfg.Metrics.Middleware)
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	if s.cfg.Metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.cfg.Metrics.Handler())
	}

	// Long-lived streams skip the timeout and compression middleware
	if s.cfg.Market != nil {
		s.cfg.Market.RegisterStreamRoutes(s.router)
	}

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		if !s.cfg.DevMode {
			r.Use(middleware.Compress(5))
		}

		r.Get("/", s.handleWelcome)

		r.Route("/api/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
			r.Post("/jobs/{job}", s.systemHandlers.HandleTriggerJob)
		})

		if s.cfg.Users != nil {
			s.cfg.Users.RegisterRoutes(r)
		}
		if s.cfg.Watchlists != nil {
			s.cfg.Watchlists.RegisterRoutes(r)
		}
		if s.cfg.Market != nil {
			s.cfg.Market.RegisterRoutes(r)
		}
		if s.cfg.Portfolio != nil {
			s.cfg.Portfolio.RegisterRoutes(r)
		}
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
