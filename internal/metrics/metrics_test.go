package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/stocks/{ticker}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, ticker := range []string{"AAPL", "GOOG"} {
		req := httptest.NewRequest(http.MethodGet, "/stocks/"+ticker, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	count := testutil.ToFloat64(m.requestCount.WithLabelValues("/stocks/{ticker}", "GET", "418"))
	assert.Equal(t, 2.0, count)
}

func TestObserveQuoteRequest(t *testing.T) {
	m := New()
	m.ObserveQuoteRequest("ok", 10*time.Millisecond)
	m.ObserveQuoteRequest("error", time.Second)
	m.ObserveQuoteRequest("ok", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.quoteRequests.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quoteRequests.WithLabelValues("error")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveValuation()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stockwolf_portfolio_valuations_total 1")
}
