// Package yahoo fetches stock quotes from the YQL yahoo.finance.quotes table.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	queryPrefix = "?q=select%20*%20from%20yahoo.finance.quotes%20where%20symbol%20in%20("
	querySuffix = ")&format=json&env=store%3A%2F%2Fdatatables.org%2Falltableswithkeys&callback="
)

// Cache stores raw upstream quotes per symbol
type Cache interface {
	Get(ctx context.Context, symbol string) (RawQuote, bool)
	Set(ctx context.Context, symbol string, quote RawQuote)
}

// Observer records upstream request outcomes
type Observer interface {
	ObserveQuoteRequest(outcome string, duration time.Duration)
}

// ErrUnavailable wraps every failed upstream call; the underlying error
// stays reachable through errors.Is and errors.As
var ErrUnavailable = errors.New("quote service unavailable")

// StatusError is returned when the quote API answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("quote API returned status %d: %s", e.StatusCode, e.Body)
}

// Client is a quote API client
type Client struct {
	client   *http.Client
	baseURL  string
	cache    Cache
	observer Observer
	log      zerolog.Logger
}

// NewClient creates a new quote client
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "?"),
		log:     log.With().Str("client", "yahoo").Logger(),
	}
}

// SetCache enables per-symbol caching of upstream records
func (c *Client) SetCache(cache Cache) {
	c.cache = cache
}

// SetObserver registers a request outcome observer
func (c *Client) SetObserver(o Observer) {
	c.observer = o
}

// BuildQuoteURL builds the YQL request URL for the given symbols
func BuildQuoteURL(baseURL string, symbols []string) string {
	quoted := make([]string, len(symbols))
	for i, symbol := range symbols {
		escaped := strings.ReplaceAll(url.QueryEscape(symbol), "+", "%20")
		quoted[i] = "%22" + escaped + "%22"
	}
	return baseURL + queryPrefix + strings.Join(quoted, "%2C") + querySuffix
}

// GetQuote returns the basic quote for one symbol.
// An unknown symbol yields a Quote with no name and NaN prices rather than an error.
func (c *Client) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	raws, err := c.fetch(ctx, []string{symbol})
	if err != nil {
		return Quote{}, err
	}
	if len(raws) == 0 {
		return formatQuote(RawQuote{}), nil
	}
	return formatQuote(raws[0]), nil
}

// GetQuotes returns basic quotes in input order
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	raws, err := c.fetch(ctx, symbols)
	if err != nil {
		return nil, err
	}

	quotes := make([]Quote, 0, len(raws))
	for _, raw := range raws {
		quotes = append(quotes, formatQuote(raw))
	}
	return quotes, nil
}

// GetDetailedQuote returns the detailed quote for one symbol
func (c *Client) GetDetailedQuote(ctx context.Context, symbol string) (DetailedQuote, error) {
	raws, err := c.fetch(ctx, []string{symbol})
	if err != nil {
		return DetailedQuote{}, err
	}
	if len(raws) == 0 {
		return formatDetailedQuote(RawQuote{}), nil
	}
	return formatDetailedQuote(raws[0]), nil
}

// GetDetailedQuotes returns detailed quotes in input order
func (c *Client) GetDetailedQuotes(ctx context.Context, symbols []string) ([]DetailedQuote, error) {
	raws, err := c.fetch(ctx, symbols)
	if err != nil {
		return nil, err
	}

	quotes := make([]DetailedQuote, 0, len(raws))
	for _, raw := range raws {
		quotes = append(quotes, formatDetailedQuote(raw))
	}
	return quotes, nil
}

// GetPriceSnapshots returns current and previous close prices in input order
func (c *Client) GetPriceSnapshots(ctx context.Context, symbols []string) ([]PriceSnapshot, error) {
	raws, err := c.fetch(ctx, symbols)
	if err != nil {
		return nil, err
	}

	snapshots := make([]PriceSnapshot, 0, len(raws))
	for _, raw := range raws {
		snapshots = append(snapshots, formatPriceSnapshot(raw))
	}
	return snapshots, nil
}

// fetch resolves symbols from the cache first and asks upstream for the rest
func (c *Client) fetch(ctx context.Context, symbols []string) ([]RawQuote, error) {
	if len(symbols) == 0 {
		return []RawQuote{}, nil
	}

	bySymbol := make(map[string]RawQuote, len(symbols))
	var missing []string
	for _, symbol := range symbols {
		key := strings.ToUpper(symbol)
		if _, seen := bySymbol[key]; seen {
			continue
		}
		if c.cache != nil {
			if raw, ok := c.cache.Get(ctx, key); ok {
				bySymbol[key] = raw
				continue
			}
		}
		bySymbol[key] = nil
		missing = append(missing, symbol)
	}

	var unmatched []RawQuote
	if len(missing) > 0 {
		fetched, err := c.request(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, raw := range fetched {
			key := strings.ToUpper(raw.Symbol())
			if existing, wanted := bySymbol[key]; wanted && existing == nil {
				bySymbol[key] = raw
				if c.cache != nil {
					c.cache.Set(ctx, key, raw)
				}
				continue
			}
			unmatched = append(unmatched, raw)
		}
	}

	ordered := make([]RawQuote, 0, len(symbols)+len(unmatched))
	for _, symbol := range symbols {
		if raw := bySymbol[strings.ToUpper(symbol)]; raw != nil {
			ordered = append(ordered, raw)
		}
	}
	return append(ordered, unmatched...), nil
}

// request performs one upstream call
func (c *Client) request(ctx context.Context, symbols []string) ([]RawQuote, error) {
	start := time.Now()
	quotes, err := c.doRequest(ctx, symbols)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		c.log.Warn().Err(err).Strs("symbols", symbols).Msg("Quote request failed")
		err = fmt.Errorf("%w: %w", ErrUnavailable, err)
	} else {
		c.log.Debug().
			Strs("symbols", symbols).
			Int("returned", len(quotes)).
			Dur("duration", time.Since(start)).
			Msg("Fetched quotes")
	}
	if c.observer != nil {
		c.observer.ObserveQuoteRequest(outcome, time.Since(start))
	}
	return quotes, err
}

func (c *Client) doRequest(ctx context.Context, symbols []string) ([]RawQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BuildQuoteURL(c.baseURL, symbols), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "stockwolf-api/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return parseEnvelope(body)
}
