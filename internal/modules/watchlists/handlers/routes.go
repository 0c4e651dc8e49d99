package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all watchlist routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/watchlist", func(r chi.Router) {
		r.Post("/", h.HandleCreateWatchlist)
		r.Get("/", h.HandleGetWatchlists)
		r.Get("/user/{user_id}", h.HandleGetUserWatchlists)
		r.Get("/{watchlist_id}", h.HandleGetWatchlist)
		r.Put("/{watchlist_id}", h.HandleUpdateWatchlist)
	})
}
