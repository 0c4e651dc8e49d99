package yahoo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/stockwolf/stockwolf-api/pkg/formulas"
)

// quoteEnvelope is the YQL response wrapper. results is null when nothing
// matched and quote is an object for one record or an array for several.
type quoteEnvelope struct {
	Query struct {
		Count   int `json:"count"`
		Results *struct {
			Quote json.RawMessage `json:"quote"`
		} `json:"results"`
	} `json:"query"`
}

// parseEnvelope extracts the quote records from a YQL response body
func parseEnvelope(body []byte) ([]RawQuote, error) {
	var env quoteEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if env.Query.Results == nil {
		return []RawQuote{}, nil
	}

	payload := bytes.TrimSpace(env.Query.Results.Quote)
	switch {
	case len(payload) == 0 || bytes.Equal(payload, []byte("null")):
		return []RawQuote{}, nil
	case payload[0] == '[':
		var quotes []RawQuote
		if err := json.Unmarshal(payload, &quotes); err != nil {
			return nil, fmt.Errorf("failed to decode quote list: %w", err)
		}
		return quotes, nil
	default:
		var quote RawQuote
		if err := json.Unmarshal(payload, &quote); err != nil {
			return nil, fmt.Errorf("failed to decode quote: %w", err)
		}
		return []RawQuote{quote}, nil
	}
}

var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// parseLooseFloat reads the longest numeric prefix of s, so "+1.25%" is 1.25
// and "2.41B" is 2.41. Anything without a numeric prefix is NaN.
func parseLooseFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	match := numericPrefix.FindString(s)
	if match == "" {
		return math.NaN()
	}

	switch strings.TrimLeft(match, "+-") {
	case "Infinity":
		if strings.HasPrefix(match, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// getFloat returns a numeric upstream field, NaN when missing or malformed
func getFloat(raw RawQuote, key string) formulas.Float {
	switch v := raw[key].(type) {
	case string:
		return formulas.Float(parseLooseFloat(v))
	case float64:
		return formulas.Float(v)
	case int64:
		return formulas.Float(v)
	case uint64:
		return formulas.Float(v)
	default:
		return formulas.Float(math.NaN())
	}
}

// getString returns a string upstream field, empty when missing
func getString(raw RawQuote, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
