// Package handlers provides HTTP handlers for watchlists.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/database"
	"github.com/stockwolf/stockwolf-api/internal/modules/watchlists"
)

// Handler handles watchlist HTTP requests
type Handler struct {
	repo watchlists.Repository
	log  zerolog.Logger
}

// NewHandler creates a new watchlist handler
func NewHandler(repo watchlists.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "watchlists").Logger(),
	}
}

// HandleCreateWatchlist creates a watchlist seeded with the default symbols
func (h *Handler) HandleCreateWatchlist(w http.ResponseWriter, r *http.Request) {
	var req watchlists.CreateWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	watchlist := watchlists.NewWatchlist(req)
	if err := h.repo.Create(r.Context(), watchlist); err != nil {
		h.log.Error().Err(err).Msg("Failed to create watchlist")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Watchlist created!",
		"id":      watchlist.ID,
	})
}

// HandleGetWatchlists lists all watchlists
func (h *Handler) HandleGetWatchlists(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, all)
}

// HandleGetWatchlist fetches one watchlist
func (h *Handler) HandleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	watchlist, ok := h.load(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, watchlist)
}

// HandleUpdateWatchlist replaces the name and/or list of a watchlist
func (h *Handler) HandleUpdateWatchlist(w http.ResponseWriter, r *http.Request) {
	var req watchlists.UpdateWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	watchlist, ok := h.load(w, r)
	if !ok {
		return
	}

	watchlist.Apply(req)
	if err := h.repo.Update(r.Context(), watchlist); err != nil {
		h.log.Error().Err(err).Str("watchlist_id", watchlist.ID).Msg("Failed to update watchlist")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Watchlist updated!"})
}

// HandleGetUserWatchlists lists the watchlists of one user
func (h *Handler) HandleGetUserWatchlists(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.GetByUserID(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*watchlists.Watchlist, bool) {
	watchlist, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "watchlist_id"))
	if errors.Is(err, database.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Watchlist not found")
		return nil, false
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return watchlist, true
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
