package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all user routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.HandleCreateUser)
		r.Get("/", h.HandleGetUsers)
		r.Get("/{user_id}", h.HandleGetUser)
	})
}
