package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the quote, markets and search routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/markets", h.HandleMarkets)
	r.Get("/stocks/{ticker}", h.HandleGetStock)
	r.Get("/stocks-detailed/{ticker}", h.HandleGetStockDetailed)
	r.Post("/stockportfolio", h.HandleStockPortfolio)
	r.Post("/stockportfolio-detailed", h.HandleStockPortfolioDetailed)
	r.Get("/search/{term}", h.HandleSearch)
}

// RegisterStreamRoutes registers the long-lived websocket routes.
// They must not sit behind request timeouts or response compression.
func (h *Handler) RegisterStreamRoutes(r chi.Router) {
	r.Get("/stream/quotes", h.HandleQuoteStream)
}
