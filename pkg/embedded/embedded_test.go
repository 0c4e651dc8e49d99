package embedded

import (
	"testing"

	"github.com/stockwolf/stockwolf-api/internal/modules/tickers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickersSeedParses(t *testing.T) {
	list, err := tickers.ParseSeed(TickersReader())
	require.NoError(t, err)
	require.NotEmpty(t, list)

	seen := make(map[string]bool, len(list))
	for _, ticker := range list {
		assert.NotEmpty(t, ticker.Name, ticker.Symbol)
		assert.False(t, seen[ticker.Symbol], "duplicate symbol %s", ticker.Symbol)
		seen[ticker.Symbol] = true
	}
	assert.True(t, seen["AAPL"])
}
