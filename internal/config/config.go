package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	LogLevel    string
	HTTPAddr    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// PayoutMinAmount is the platform minimum for a partner payout request,
	// in minor currency units (paise).
	PayoutMinAmount int64

	// CommissionDefaultRateBps applies to order types without an explicit rate.
	CommissionDefaultRateBps int64

	// CommissionRatesBps maps order type to base commission rate in basis
	// points, parsed from COMMISSION_RATES_BPS ("buy=200,sip=150").
	CommissionRatesBps map[string]int64
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "treasury"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "treasury"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 10),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 50),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),

		RedisAddr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),

		PayoutMinAmount:          getenvInt64("PAYOUT_MIN_AMOUNT", 100000),
		CommissionDefaultRateBps: getenvInt64("COMMISSION_DEFAULT_RATE_BPS", 200),
		CommissionRatesBps:       parseRates(getenv("COMMISSION_RATES_BPS", "")),
	}
}

// RateBpsFor returns the base commission rate for an order type.
func (c Config) RateBpsFor(orderType string) int64 {
	if rate, ok := c.CommissionRatesBps[strings.ToLower(strings.TrimSpace(orderType))]; ok {
		return rate
	}
	return c.CommissionDefaultRateBps
}

func parseRates(raw string) map[string]int64 {
	rates := make(map[string]int64)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		bps, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || bps < 0 {
			continue
		}
		rates[strings.ToLower(strings.TrimSpace(key))] = bps
	}
	return rates
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
