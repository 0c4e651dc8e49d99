package testing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
)

// NewQuoteFixture returns a raw upstream quote with string encoded prices
func NewQuoteFixture(symbol, name, price, previousClose string) yahoo.RawQuote {
	return yahoo.RawQuote{
		"Symbol":             symbol,
		"Name":               name,
		"LastTradePriceOnly": price,
		"PreviousClose":      previousClose,
		"Change":             "+0.00",
		"ChangeinPercent":    "+0.00%",
	}
}

// NewQuoteServer serves YQL envelopes for the requested symbols out of quotes.
// Symbols without a fixture are left out of the response.
func NewQuoteServer(t *testing.T, quotes ...yahoo.RawQuote) *httptest.Server {
	t.Helper()

	bySymbol := make(map[string]yahoo.RawQuote, len(quotes))
	for _, q := range quotes {
		bySymbol[strings.ToUpper(q.Symbol())] = q
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var matched []yahoo.RawQuote
		for _, part := range strings.Split(r.URL.Query().Get("q"), `"`) {
			if q, ok := bySymbol[strings.ToUpper(part)]; ok {
				matched = append(matched, q)
			}
		}

		var results interface{}
		switch len(matched) {
		case 0:
			results = nil
		case 1:
			results = map[string]interface{}{"quote": matched[0]}
		default:
			results = map[string]interface{}{"quote": matched}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"query": map[string]interface{}{
				"count":   len(matched),
				"results": results,
			},
		})
	}))
	t.Cleanup(server.Close)
	return server
}
