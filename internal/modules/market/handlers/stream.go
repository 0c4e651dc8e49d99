package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// maxStreamSymbols bounds one subscription
const maxStreamSymbols = 50

// QuoteUpdate is one message on the quote stream
type QuoteUpdate struct {
	Quotes []yahoo.Quote `json:"quotes,omitempty"`
	Error  string        `json:"error,omitempty"`
	SentAt time.Time     `json:"sentAt"`
}

// HandleQuoteStream upgrades to a websocket and pushes basic quotes for the
// symbols query parameter until the client goes away
func (h *Handler) HandleQuoteStream(w http.ResponseWriter, r *http.Request) {
	symbols := parseSymbolsParam(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		h.writeError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}
	if len(symbols) > maxStreamSymbols {
		h.writeError(w, http.StatusBadRequest, "too many symbols")
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	ctx := conn.CloseRead(r.Context())
	log := h.log.With().Strs("symbols", symbols).Logger()
	log.Debug().Msg("Quote stream opened")

	ticker := time.NewTicker(h.streamInterval)
	defer ticker.Stop()

	for {
		if err := h.pushQuotes(ctx, conn, symbols); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Debug().Err(err).Msg("Quote stream write failed")
			}
			return
		}

		select {
		case <-ctx.Done():
			log.Debug().Msg("Quote stream closed")
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ticker.C:
		}
	}
}

// pushQuotes sends one update; upstream failures are reported in-band
func (h *Handler) pushQuotes(ctx context.Context, conn *websocket.Conn, symbols []string) error {
	update := QuoteUpdate{SentAt: time.Now().UTC()}

	quotes, err := h.quotes.GetQuotes(ctx, symbols)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		update.Error = err.Error()
	} else {
		update.Quotes = quotes
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return wsjson.Write(writeCtx, conn, update)
}

func parseSymbolsParam(raw string) []string {
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
