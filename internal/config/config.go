package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	HTTPAddr string
	GinMode  string

	// Trade store
	StoreBackend string // postgres | sqlite | memory
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	SQLitePath   string

	// Price oracle
	AlphaVantageAPIKey   string
	PriceRefreshInterval time.Duration
	PriceFetchDelay      time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		HTTPAddr: ":" + getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", ""),

		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "trader"),
		DBPassword:   getEnv("DB_PASSWORD", ""),
		DBName:       getEnv("DB_NAME", "tradeledger"),
		SQLitePath:   getEnv("SQLITE_PATH", "data/trades.db"),

		AlphaVantageAPIKey:   getEnv("ALPHAVANTAGE_API_KEY", ""),
		PriceRefreshInterval: getDuration("PRICE_REFRESH_INTERVAL", time.Minute),
		PriceFetchDelay:      getDuration("PRICE_FETCH_DELAY", 15*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
