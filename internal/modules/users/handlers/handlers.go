// Package handlers provides HTTP handlers for user accounts.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/database"
	"github.com/stockwolf/stockwolf-api/internal/modules/users"
)

// Handler handles user HTTP requests
type Handler struct {
	repo    users.Repository
	service *users.Service
	log     zerolog.Logger
}

// NewHandler creates a new user handler
func NewHandler(repo users.Repository, service *users.Service, log zerolog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		service: service,
		log:     log.With().Str("handler", "users").Logger(),
	}
}

// HandleCreateUser signs up a user.
// A missing identifier is reported in the body with a 200 status.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req users.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Create(r.Context(), req)
	if errors.Is(err, users.ErrIdentifierRequired) {
		h.writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create user")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "User created!",
		"id":      user.ID,
	})
}

// HandleGetUsers lists all users
func (h *Handler) HandleGetUsers(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := make([]users.Public, 0, len(all))
	for _, u := range all {
		result = append(result, u.Public())
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleGetUser fetches one user
func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "user_id"))
	if errors.Is(err, database.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
