package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Post("/", h.HandleCreatePortfolio)
		r.Get("/", h.HandleGetPortfolios)
		r.Get("/user/{user_id}", h.HandleGetUserPortfolios)

		r.Route("/{portfolio_id}", func(r chi.Router) {
			r.Get("/", h.HandleGetPortfolio)

			r.Post("/positions", h.HandleAddPosition)
			r.Get("/positions", h.HandleGetPositions)

			r.Post("/orders", h.HandlePlaceOrder)
			r.Get("/orders", h.HandleGetOrders)
			r.Get("/orders/pending", h.HandleGetPendingPositions)

			r.Get("/valuation", h.HandleGetValuation)
			r.Get("/history", h.HandleGetHistory)
			r.Get("/affordable/{ticker}", h.HandleGetAffordable)
		})
	})
}
