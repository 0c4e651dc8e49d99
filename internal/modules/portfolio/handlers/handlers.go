// Package handlers provides HTTP handlers for portfolios, positions and orders.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stockwolf/stockwolf-api/internal/database"
	"github.com/stockwolf/stockwolf-api/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	portfolios portfolio.PortfolioRepositoryInterface
	service    *portfolio.Service
	log        zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(portfolios portfolio.PortfolioRepositoryInterface, service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		portfolios: portfolios,
		service:    service,
		log:        log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleCreatePortfolio opens a portfolio for a user
func (h *Handler) HandleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req portfolio.CreatePortfolioRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.service.CreatePortfolio(r.Context(), req)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Portfolio created!",
		"id":      p.ID,
	})
}

// HandleGetPortfolios lists all portfolios
func (h *Handler) HandleGetPortfolios(w http.ResponseWriter, r *http.Request) {
	all, err := h.portfolios.GetAll(r.Context())
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, all)
}

// HandleGetPortfolio fetches one portfolio
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.portfolios.GetByID(r.Context(), chi.URLParam(r, "portfolio_id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

// HandleGetUserPortfolios lists the portfolios owned by a user
func (h *Handler) HandleGetUserPortfolios(w http.ResponseWriter, r *http.Request) {
	owned, err := h.portfolios.GetByUserID(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, owned)
}

// HandleAddPosition records a completed position
func (h *Handler) HandleAddPosition(w http.ResponseWriter, r *http.Request) {
	var req portfolio.HoldingRequest
	if !h.decode(w, r, &req) {
		return
	}

	position, err := h.service.AddPosition(r.Context(), chi.URLParam(r, "portfolio_id"), req)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Position created!",
		"id":      position.ID,
	})
}

// HandleGetPositions returns positions with live gain or loss
func (h *Handler) HandleGetPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.Positions(r.Context(), chi.URLParam(r, "portfolio_id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, positions)
}

// HandlePlaceOrder records a buy or sell order
func (h *Handler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req portfolio.HoldingRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), chi.URLParam(r, "portfolio_id"), req)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Order placed!",
		"id":      order.ID,
	})
}

// HandleGetOrders lists a portfolio's orders
func (h *Handler) HandleGetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.Orders(r.Context(), chi.URLParam(r, "portfolio_id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

// HandleGetPendingPositions lists open buy orders as pending positions
func (h *Handler) HandleGetPendingPositions(w http.ResponseWriter, r *http.Request) {
	pending, err := h.service.PendingPositions(r.Context(), chi.URLParam(r, "portfolio_id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, pending)
}

// HandleGetValuation values the portfolio and records a snapshot
func (h *Handler) HandleGetValuation(w http.ResponseWriter, r *http.Request) {
	valuation, err := h.service.Value(r.Context(), chi.URLParam(r, "portfolio_id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, valuation)
}

// HandleGetHistory returns recorded valuations and their statistics
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.History(r.Context(), chi.URLParam(r, "portfolio_id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, history)
}

// HandleGetAffordable reports how many shares of a ticker the free cash buys
func (h *Handler) HandleGetAffordable(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Affordable(r.Context(), chi.URLParam(r, "portfolio_id"), chi.URLParam(r, "ticker"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "Portfolio not found")
	case errors.Is(err, portfolio.ErrUserRequired),
		errors.Is(err, portfolio.ErrTickerRequired),
		errors.Is(err, portfolio.ErrInvalidOrderType):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, yahoo.ErrUnavailable):
		h.writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.log.Error().Err(err).Msg("Portfolio request failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
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
