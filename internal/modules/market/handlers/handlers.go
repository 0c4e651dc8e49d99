// Package handlers provides HTTP handlers for quotes, markets and search.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stockwolf/stockwolf-api/internal/modules/market"
)

// Handler handles market HTTP requests
type Handler struct {
	service        *market.Service
	quotes         market.QuoteProvider
	streamInterval time.Duration
	log            zerolog.Logger
}

// NewHandler creates a new market handler
func NewHandler(service *market.Service, quotes market.QuoteProvider, streamInterval time.Duration, log zerolog.Logger) *Handler {
	return &Handler{
		service:        service,
		quotes:         quotes,
		streamInterval: streamInterval,
		log:            log.With().Str("handler", "market").Logger(),
	}
}

type stockListRequest struct {
	ArrayOfStockNames []interface{} `json:"arrayOfStockNames"`
}

// HandleMarkets returns quotes for the global indexes
func (h *Handler) HandleMarkets(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.service.Markets(r.Context())
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quotes)
}

// HandleGetStock returns the basic quote for one ticker
func (h *Handler) HandleGetStock(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quotes.GetQuote(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quote)
}

// HandleGetStockDetailed returns the detailed quote for one ticker
func (h *Handler) HandleGetStockDetailed(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quotes.GetDetailedQuote(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quote)
}

// HandleStockPortfolio returns basic quotes for a list of tickers
func (h *Handler) HandleStockPortfolio(w http.ResponseWriter, r *http.Request) {
	symbols, ok := h.decodeSymbols(w, r)
	if !ok {
		return
	}

	quotes, err := h.quotes.GetQuotes(r.Context(), symbols)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quotes)
}

// HandleStockPortfolioDetailed returns detailed quotes for a list of tickers
func (h *Handler) HandleStockPortfolioDetailed(w http.ResponseWriter, r *http.Request) {
	symbols, ok := h.decodeSymbols(w, r)
	if !ok {
		return
	}

	quotes, err := h.quotes.GetDetailedQuotes(r.Context(), symbols)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quotes)
}

// HandleSearch looks a term up as a symbol and in the ticker list
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Search(r.Context(), chi.URLParam(r, "term"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// decodeSymbols reads arrayOfStockNames, keeping only non-empty strings
func (h *Handler) decodeSymbols(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req stockListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	symbols := FilterTickerStrings(req.ArrayOfStockNames)
	if len(symbols) == 0 {
		h.writeError(w, http.StatusBadRequest, "arrayOfStockNames must contain at least one ticker")
		return nil, false
	}
	return symbols, true
}

// FilterTickerStrings keeps the non-empty string entries of a JSON array
func FilterTickerStrings(values []interface{}) []string {
	symbols := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, s)
			}
		}
	}
	return symbols
}

// writeFailure maps upstream failures to 502 and everything else to 500
func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, yahoo.ErrUnavailable) {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.log.Error().Err(err).Msg("Market request failed")
	h.writeError(w, http.StatusInternalServerError, err.Error())
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
