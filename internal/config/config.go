// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// DefaultQuoteAPIURL is the YQL endpoint the quote client talks to
const DefaultQuoteAPIURL = "https://query.yahooapis.com/v1/public/yql"

// Config holds application configuration
type Config struct {
	Port     int
	DevMode  bool
	LogLevel string

	Store StoreConfig
	Quote QuoteConfig
	Cache CacheConfig

	DefaultPortfolioCash float64
	RevaluationSchedule  string // cron spec with seconds, empty disables the job
}

// StoreConfig selects and configures the document store
type StoreConfig struct {
	Backend       string // sqlite or mongo
	DatabasePath  string
	MongoURI      string
	MongoDatabase string
}

// QuoteConfig configures the upstream quote service
type QuoteConfig struct {
	BaseURL        string
	Timeout        time.Duration
	StreamInterval time.Duration
}

// CacheConfig configures the optional Redis quote cache
type CacheConfig struct {
	RedisAddr     string // empty disables caching
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// Enabled reports whether a Redis address was configured
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnvAsInt("GO_PORT", 8001),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Store: StoreConfig{
			Backend:       strings.ToLower(getEnv("STORE_BACKEND", BackendSQLite)),
			DatabasePath:  getEnv("DATABASE_PATH", "./data/stockwolf.db"),
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGO_DATABASE", "stockwolf"),
		},
		Quote: QuoteConfig{
			BaseURL:        getEnv("QUOTE_API_URL", DefaultQuoteAPIURL),
			Timeout:        getEnvAsDuration("QUOTE_TIMEOUT", 30*time.Second),
			StreamInterval: getEnvAsDuration("QUOTE_STREAM_INTERVAL", 15*time.Second),
		},
		Cache: CacheConfig{
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			TTL:           getEnvAsDuration("QUOTE_CACHE_TTL", time.Minute),
		},
		DefaultPortfolioCash: getEnvAsFloat("DEFAULT_PORTFOLIO_CASH", 100000),
		RevaluationSchedule:  os.Getenv("REVALUATION_SCHEDULE"),
	}
	if _, set := os.LookupEnv("REVALUATION_SCHEDULE"); !set {
		cfg.RevaluationSchedule = "0 0 22 * * MON-FRI" // after the US close
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.Store.Backend {
	case BackendSQLite:
		if c.Store.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH is required for the sqlite store")
		}
	case BackendMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DATABASE are required for the mongo store")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if _, err := url.ParseRequestURI(c.Quote.BaseURL); err != nil {
		return fmt.Errorf("invalid QUOTE_API_URL: %w", err)
	}
	if c.Quote.Timeout <= 0 {
		return fmt.Errorf("QUOTE_TIMEOUT must be positive")
	}
	if c.Quote.StreamInterval <= 0 {
		return fmt.Errorf("QUOTE_STREAM_INTERVAL must be positive")
	}
	if c.Cache.Enabled() && c.Cache.TTL <= 0 {
		return fmt.Errorf("QUOTE_CACHE_TTL must be positive when REDIS_ADDR is set")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
