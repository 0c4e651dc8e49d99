package yahoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteServer(t *testing.T, status int, body string, rawQuery *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rawQuery != nil {
			*rawQuery = r.URL.RawQuery
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second, zerolog.New(nil).Level(zerolog.Disabled))
}

func TestBuildQuoteURL(t *testing.T) {
	single := BuildQuoteURL("https://example.com/yql", []string{"AAPL"})
	assert.Equal(t,
		"https://example.com/yql?q=select%20*%20from%20yahoo.finance.quotes%20where%20symbol%20in%20(%22AAPL%22)&format=json&env=store%3A%2F%2Fdatatables.org%2Falltableswithkeys&callback=",
		single)

	multi := BuildQuoteURL("https://example.com/yql", []string{"^GSPC", "GOOG"})
	assert.Contains(t, multi, "(%22%5EGSPC%22%2C%22GOOG%22)")
}

func TestClient_GetQuote(t *testing.T) {
	var rawQuery string
	server := quoteServer(t, http.StatusOK, `{"query":{"count":1,"results":{"quote":{
		"Name":"Apple Inc.","Symbol":"AAPL","LastTradePriceOnly":"150.10","Change":"-0.40","ChangeinPercent":"-0.27%"
	}}}}`, &rawQuery)

	quote, err := newTestClient(server.URL).GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Contains(t, rawQuery, "%22AAPL%22")
	assert.Equal(t, "Apple Inc.", quote.Name)
	assert.Equal(t, 150.10, float64(quote.CurrentPrice))
	assert.Equal(t, -0.40, float64(quote.PriceChange))
	assert.Equal(t, -0.27, float64(quote.PriceChangeInPercent))
}

func TestClient_GetQuote_UnknownSymbol(t *testing.T) {
	server := quoteServer(t, http.StatusOK, `{"query":{"count":0,"results":null}}`, nil)

	quote, err := newTestClient(server.URL).GetQuote(context.Background(), "ZZZZ")
	require.NoError(t, err)
	assert.Empty(t, quote.Name)
	assert.True(t, quote.CurrentPrice.IsNaN())
}

func TestClient_GetQuote_MalformedNumbersBecomeNull(t *testing.T) {
	server := quoteServer(t, http.StatusOK, `{"query":{"count":1,"results":{"quote":{
		"Name":"Odd","Symbol":"ODD","LastTradePriceOnly":"N/A","Change":null,"ChangeinPercent":"+1%"
	}}}}`, nil)

	quote, err := newTestClient(server.URL).GetQuote(context.Background(), "ODD")
	require.NoError(t, err)
	assert.True(t, quote.CurrentPrice.IsNaN())
	assert.True(t, quote.PriceChange.IsNaN())

	out, err := json.Marshal(quote)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Odd","symbol":"ODD","currentPrice":null,"priceChange":null,"priceChangeInPercent":1}`, string(out))
}

func TestClient_GetQuotes_FollowsInputOrder(t *testing.T) {
	var rawQuery string
	server := quoteServer(t, http.StatusOK, `{"query":{"count":3,"results":{"quote":[
		{"Symbol":"GOOG","LastTradePriceOnly":"2"},
		{"Symbol":"MSFT","LastTradePriceOnly":"3"},
		{"Symbol":"AAPL","LastTradePriceOnly":"1"}
	]}}}`, &rawQuery)

	quotes, err := newTestClient(server.URL).GetQuotes(context.Background(), []string{"aapl", "GOOG", "MSFT"})
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	assert.Contains(t, rawQuery, "(%22aapl%22%2C%22GOOG%22%2C%22MSFT%22)")
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, "GOOG", quotes[1].Symbol)
	assert.Equal(t, "MSFT", quotes[2].Symbol)
}

func TestClient_GetQuotes_EmptyInputSkipsRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	quotes, err := newTestClient(server.URL).GetQuotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, quotes)
	assert.False(t, called)
}

func TestClient_GetPriceSnapshots(t *testing.T) {
	server := quoteServer(t, http.StatusOK, `{"query":{"count":1,"results":{"quote":{
		"Symbol":"AAPL","LastTradePriceOnly":"55","PreviousClose":"54"
	}}}}`, nil)

	snapshots, err := newTestClient(server.URL).GetPriceSnapshots(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, PriceSnapshot{Symbol: "AAPL", CurrentPrice: 55, PreviousClose: 54}, snapshots[0])
}

func TestClient_StatusError(t *testing.T) {
	server := quoteServer(t, http.StatusServiceUnavailable, "down", nil)

	_, err := newTestClient(server.URL).GetDetailedQuote(context.Background(), "AAPL")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUnavailable)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "down", statusErr.Body)
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).GetQuotes(context.Background(), []string{"AAPL"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_ContextCancelled(t *testing.T) {
	server := quoteServer(t, http.StatusOK, `{"query":{"results":null}}`, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).GetQuote(ctx, "AAPL")
	assert.ErrorIs(t, err, context.Canceled)
}

type memoryCache struct {
	mu     sync.Mutex
	quotes map[string]RawQuote
}

func (m *memoryCache) Get(ctx context.Context, symbol string) (RawQuote, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[symbol]
	return q, ok
}

func (m *memoryCache) Set(ctx context.Context, symbol string, quote RawQuote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[symbol] = quote
}

type countingObserver struct {
	outcomes []string
}

func (o *countingObserver) ObserveQuoteRequest(outcome string, duration time.Duration) {
	o.outcomes = append(o.outcomes, outcome)
}

func TestClient_CacheServesRepeatSymbols(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		if strings.Contains(r.URL.RawQuery, "GOOG") {
			_, _ = w.Write([]byte(`{"query":{"count":1,"results":{"quote":{"Symbol":"GOOG","LastTradePriceOnly":"2"}}}}`))
			return
		}
		_, _ = w.Write([]byte(`{"query":{"count":1,"results":{"quote":{"Symbol":"AAPL","LastTradePriceOnly":"1"}}}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.SetCache(&memoryCache{quotes: map[string]RawQuote{}})
	observer := &countingObserver{}
	client.SetObserver(observer)

	_, err := client.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	quotes, err := client.GetQuotes(context.Background(), []string{"GOOG", "aapl"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "GOOG", quotes[0].Symbol)
	assert.Equal(t, "AAPL", quotes[1].Symbol)

	require.Len(t, queries, 2)
	assert.NotContains(t, queries[1], "AAPL", "cached symbol is not requested again")
	assert.Equal(t, []string{"ok", "ok"}, observer.outcomes)
}
