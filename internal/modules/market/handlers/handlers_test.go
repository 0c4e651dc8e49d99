package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stockwolf/stockwolf-api/internal/modules/market"
	"github.com/stockwolf/stockwolf-api/internal/modules/tickers"
	testingpkg "github.com/stockwolf/stockwolf-api/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func setupRouter(t *testing.T, quoteURL string) chi.Router {
	t.Helper()
	log := testingpkg.SilentLogger()

	store, _ := testingpkg.NewTestStore(t)
	tickerRepo := tickers.NewRepository(store, log)
	require.NoError(t, tickerRepo.Create(context.Background(), &tickers.StockTicker{
		Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Exchange: "NASDAQ",
	}))

	client := yahoo.NewClient(quoteURL, 5*time.Second, log)
	service := market.NewService(client, tickerRepo, log)
	handler := NewHandler(service, client, 10*time.Millisecond, log)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	handler.RegisterStreamRoutes(router)
	return router
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetStock(t *testing.T) {
	upstream := testingpkg.NewQuoteServer(t, testingpkg.NewQuoteFixture("AAPL", "Apple Inc.", "150.25", "148.00"))
	router := setupRouter(t, upstream.URL)

	rec := doRequest(router, http.MethodGet, "/stocks/AAPL", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var quote map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.Equal(t, "Apple Inc.", quote["name"])
	assert.Equal(t, 150.25, quote["currentPrice"])
}

func TestHandleGetStockDetailed(t *testing.T) {
	upstream := testingpkg.NewQuoteServer(t, testingpkg.NewQuoteFixture("AAPL", "Apple Inc.", "150.25", "148.00"))
	router := setupRouter(t, upstream.URL)

	rec := doRequest(router, http.MethodGet, "/stocks-detailed/AAPL", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var quote map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.Equal(t, 148.0, quote["previousClose"])
	assert.Nil(t, quote["openPrice"], "missing upstream numbers encode as null")
}

func TestHandleStockPortfolio_KeepsOrder(t *testing.T) {
	upstream := testingpkg.NewQuoteServer(t,
		testingpkg.NewQuoteFixture("AAPL", "Apple Inc.", "150.25", "148.00"),
		testingpkg.NewQuoteFixture("MSFT", "Microsoft", "300.00", "301.00"),
	)
	router := setupRouter(t, upstream.URL)

	rec := doRequest(router, http.MethodPost, "/stockportfolio", `{"arrayOfStockNames":["MSFT",7,"AAPL"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var quotes []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quotes))
	require.Len(t, quotes, 2)
	assert.Equal(t, "MSFT", quotes[0]["symbol"])
	assert.Equal(t, "AAPL", quotes[1]["symbol"])
}

func TestHandleStockPortfolioDetailed(t *testing.T) {
	upstream := testingpkg.NewQuoteServer(t, testingpkg.NewQuoteFixture("AAPL", "Apple Inc.", "150.25", "148.00"))
	router := setupRouter(t, upstream.URL)

	rec := doRequest(router, http.MethodPost, "/stockportfolio-detailed", `{"arrayOfStockNames":["AAPL"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var quotes []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quotes))
	require.Len(t, quotes, 1)
	assert.Equal(t, 148.0, quotes[0]["previousClose"])
}

func TestHandleStockPortfolio_RequiresNames(t *testing.T) {
	router := setupRouter(t, "http://127.0.0.1:1")

	for _, body := range []string{``, `{}`, `{"arrayOfStockNames":[]}`, `{"arrayOfStockNames":[1,""]}`} {
		rec := doRequest(router, http.MethodPost, "/stockportfolio", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}

	rec := doRequest(router, http.MethodPost, "/stockportfolio", `{"arrayOfStockNames":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMarkets(t *testing.T) {
	upstream := testingpkg.NewQuoteServer(t,
		testingpkg.NewQuoteFixture("^GSPC", "S&P 500", "4500.10", "4490.00"),
		testingpkg.NewQuoteFixture("^FTSE", "FTSE 100", "7600.00", "7590.00"),
	)
	router := setupRouter(t, upstream.URL)

	rec := doRequest(router, http.MethodGet, "/markets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var quotes []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quotes))
	require.Len(t, quotes, 2)
	assert.Equal(t, "^GSPC", quotes[0]["symbol"])
	assert.Equal(t, "^FTSE", quotes[1]["symbol"])
}

func TestHandleSearch(t *testing.T) {
	upstream := testingpkg.NewQuoteServer(t, testingpkg.NewQuoteFixture("AAPL", "Apple Inc.", "150.25", "148.00"))
	router := setupRouter(t, upstream.URL)

	rec := doRequest(router, http.MethodGet, "/search/AAPL", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result market.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.ExactMatchFound)
	assert.Equal(t, "Apple Inc.", result.StockData.Name)
	require.Len(t, result.StockTickers, 1)
	assert.Equal(t, "AAPL", result.StockTickers[0].Symbol)

	rec = doRequest(router, http.MethodGet, "/search/zzz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exactMatchFound":false,"stockData":{"name":"","symbol":"","currentPrice":null,"priceChange":null,"priceChangeInPercent":null},"stockTickers":[]}`, rec.Body.String())
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()
	router := setupRouter(t, upstream.URL)

	rec := doRequest(router, http.MethodGet, "/stocks/AAPL", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestFilterTickerStrings(t *testing.T) {
	got := FilterTickerStrings([]interface{}{"AAPL", 12.0, nil, " ", " msft ", true})
	assert.Equal(t, []string{"AAPL", "msft"}, got)
}

func TestHandleQuoteStream(t *testing.T) {
	upstream := testingpkg.NewQuoteServer(t, testingpkg.NewQuoteFixture("AAPL", "Apple Inc.", "150.25", "148.00"))
	server := httptest.NewServer(setupRouter(t, upstream.URL))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/stream/quotes?symbols=AAPL"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	for i := 0; i < 2; i++ {
		var update QuoteUpdate
		require.NoError(t, wsjson.Read(ctx, conn, &update))
		assert.Empty(t, update.Error)
		require.Len(t, update.Quotes, 1)
		assert.Equal(t, "AAPL", update.Quotes[0].Symbol)
		assert.False(t, update.SentAt.IsZero())
	}
}

func TestHandleQuoteStream_RequiresSymbols(t *testing.T) {
	router := setupRouter(t, "http://127.0.0.1:1")

	rec := doRequest(router, http.MethodGet, "/stream/quotes", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
