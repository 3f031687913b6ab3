package config

import (
	"os"
	"strconv"
	"time"

	apperrors "github.com/Cabral137/monitor-precos/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Redis configuration (price history + alert stream)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int
	RedisHistoryPrefix   string

	// Memcache configuration (fetch block windows)
	MemcacheAddr string

	// Render API configuration
	ScrapeAPIURL  string
	ScrapeAPIKey  string
	ScrapeCountry string

	// Tracker configuration
	ProductsFile   string
	CheckInterval  time.Duration
	FetchBlockTime time.Duration

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	checkInterval, _ := strconv.Atoi(getEnv("CHECK_INTERVAL_SECONDS", "3600"))
	fetchBlock, _ := strconv.Atoi(getEnv("FETCH_BLOCK_SECONDS", "60"))

	return &Config{
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "price_alerts"),
		RedisStreamMaxLength: streamMaxLength,
		RedisHistoryPrefix:   getEnv("REDIS_HISTORY_PREFIX", "price_history"),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		ScrapeAPIURL:         getEnv("SCRAPE_API_URL", "https://api.scrapfly.io/scrape"),
		ScrapeAPIKey:         getEnv("SCRAPFLY_API_KEY", ""),
		ScrapeCountry:        getEnv("SCRAPE_COUNTRY", "br"),
		ProductsFile:         getEnv("PRODUCTS_FILE", "data/products.json"),
		CheckInterval:        time.Duration(checkInterval) * time.Second,
		FetchBlockTime:       time.Duration(fetchBlock) * time.Second,
		Environment:          getEnv("MONITOR_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the services cannot run with
func (c *Config) Validate() error {
	if c.RedisAddr == "" {
		return apperrors.NewConfiguration("redis address is required", nil)
	}
	if c.RedisStream == "" {
		return apperrors.NewConfiguration("redis stream name is required", nil)
	}
	if c.RedisStreamMaxLength <= 0 {
		return apperrors.NewConfiguration("redis stream max length must be positive", nil)
	}
	if c.MemcacheAddr == "" {
		return apperrors.NewConfiguration("memcache address is required", nil)
	}
	if c.ProductsFile == "" {
		return apperrors.NewConfiguration("products file path is required", nil)
	}
	if c.CheckInterval <= 0 {
		return apperrors.NewConfiguration("check interval must be positive", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
