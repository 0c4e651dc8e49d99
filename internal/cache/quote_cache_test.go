package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	quote := yahoo.RawQuote{
		"Symbol":             "AAPL",
		"LastTradePriceOnly": "150.10",
		"PERatio":            nil,
		"Volume":             float64(1200),
	}

	data, err := Encode(quote)
	require.NoError(t, err)

	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", back.Symbol())
	assert.Equal(t, "150.10", back["LastTradePriceOnly"])
	assert.Nil(t, back["PERatio"])
	assert.Contains(t, back, "PERatio")
	assert.Equal(t, float64(1200), back["Volume"])
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte{0xc1})
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "stockwolf:quote:AAPL", Key("aapl"))
	assert.Equal(t, "stockwolf:quote:^GSPC", Key("^gspc"))
}

func TestRedisQuoteCache_UnreachableServerIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisQuoteCache(client, time.Minute, zerolog.New(nil).Level(zerolog.Disabled))

	c.Set(context.Background(), "AAPL", yahoo.RawQuote{"Symbol": "AAPL"})
	_, ok := c.Get(context.Background(), "AAPL")
	assert.False(t, ok)
}
