package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stockwolf/stockwolf-api/internal/modules/watchlists"
	testingpkg "github.com/stockwolf/stockwolf-api/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) chi.Router {
	t.Helper()
	store, _ := testingpkg.NewTestStore(t)
	handler := NewHandler(watchlists.NewRepository(store, testingpkg.SilentLogger()), testingpkg.SilentLogger())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createWatchlist(t *testing.T, router http.Handler, body string) string {
	t.Helper()
	rec := doRequest(router, http.MethodPost, "/watchlist", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Watchlist created!", created["message"])
	return created["id"]
}

func TestWatchlistLifecycle(t *testing.T) {
	router := setupRouter(t)

	id := createWatchlist(t, router, `{"userId":"u1"}`)

	rec := doRequest(router, http.MethodGet, "/watchlist/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got watchlists.Watchlist
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Default Watchlist", got.Name)
	assert.Equal(t, []string{"AAPL", "GOOG", "TWTR", "FB"}, got.ListOfStockNames)

	rec = doRequest(router, http.MethodPut, "/watchlist/"+id, `{"name":"Tech","listOfStockNames":["NVDA","AMD"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Watchlist updated!"}`, rec.Body.String())

	rec = doRequest(router, http.MethodGet, "/watchlist/user/u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var owned []watchlists.Watchlist
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &owned))
	require.Len(t, owned, 1)
	assert.Equal(t, "Tech", owned[0].Name)
	assert.Equal(t, []string{"NVDA", "AMD"}, owned[0].ListOfStockNames)
	assert.NotNil(t, owned[0].UpdatedOnDate)
}

func TestHandleGetWatchlists(t *testing.T) {
	router := setupRouter(t)
	createWatchlist(t, router, `{"userId":"u1","watchlistName":"One"}`)
	createWatchlist(t, router, `{"userId":"u2","watchlistName":"Two"}`)

	rec := doRequest(router, http.MethodGet, "/watchlist", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var all []watchlists.Watchlist
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "One", all[0].Name)
}

func TestHandleUpdateWatchlist_NotFound(t *testing.T) {
	router := setupRouter(t)

	rec := doRequest(router, http.MethodPut, "/watchlist/missing", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleUpdateWatchlist_InvalidBody(t *testing.T) {
	router := setupRouter(t)
	id := createWatchlist(t, router, `{"userId":"u1"}`)

	rec := doRequest(router, http.MethodPut, "/watchlist/"+id, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetUserWatchlists_Empty(t *testing.T) {
	router := setupRouter(t)

	rec := doRequest(router, http.MethodGet, "/watchlist/user/nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
