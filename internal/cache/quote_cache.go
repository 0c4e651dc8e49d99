// Package cache keeps recently fetched upstream quotes in Redis.
package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/vmihailenco/msgpack/v5"
)

const keyPrefix = "stockwolf:quote:"

// RedisQuoteCache stores msgpack encoded raw quotes with a TTL
type RedisQuoteCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisQuoteCache creates a cache over an existing Redis client
func NewRedisQuoteCache(client redis.Cmdable, ttl time.Duration, log zerolog.Logger) *RedisQuoteCache {
	return &RedisQuoteCache{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "quote_cache").Logger(),
	}
}

// Connect dials Redis and verifies the connection
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// Key returns the Redis key for a symbol
func Key(symbol string) string {
	return keyPrefix + strings.ToUpper(symbol)
}

// Get returns a cached quote. Misses and Redis errors both report false.
func (c *RedisQuoteCache) Get(ctx context.Context, symbol string) (yahoo.RawQuote, bool) {
	data, err := c.client.Get(ctx, Key(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("Quote cache read failed")
		return nil, false
	}

	quote, err := Decode(data)
	if err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("Discarding undecodable cached quote")
		return nil, false
	}
	return quote, true
}

// Set stores a quote; failures are logged and otherwise ignored
func (c *RedisQuoteCache) Set(ctx context.Context, symbol string, quote yahoo.RawQuote) {
	data, err := Encode(quote)
	if err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to encode quote for cache")
		return
	}
	if err := c.client.Set(ctx, Key(symbol), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("Quote cache write failed")
	}
}

// Encode serializes a raw quote with msgpack
func Encode(quote yahoo.RawQuote) ([]byte, error) {
	return msgpack.Marshal(map[string]interface{}(quote))
}

// Decode deserializes a raw quote, widening integers to int64/uint64
func Decode(data []byte) (yahoo.RawQuote, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)

	var quote map[string]interface{}
	if err := dec.Decode(&quote); err != nil {
		return nil, err
	}
	return yahoo.RawQuote(quote), nil
}
