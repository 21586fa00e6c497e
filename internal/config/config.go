package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Snapshot backends for the cart service.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Cart holds the cart service settings.
type Cart struct {
	Port            string
	AppEnv          string
	LogLevel        string
	CatalogURL      string
	UpstreamTimeout time.Duration

	SnapshotBackend string
	SnapshotDir     string
	RedisAddr       string
}

// Stock holds the stock service settings.
type Stock struct {
	Port        string
	AppEnv      string
	LogLevel    string
	DatabaseDSN string
}

// LoadEnvFile loads .env.local when running with APP_ENV=local.
// Everywhere else configuration comes from the real environment.
func LoadEnvFile() {
	if os.Getenv("APP_ENV") != "local" {
		return
	}
	if err := godotenv.Load(".env.local"); err != nil {
		log.Printf("warning: .env.local not loaded: %v", err)
	}
}

func LoadCart() Cart {
	return Cart{
		Port:            getenv("PORT", "8081"),
		AppEnv:          getenv("APP_ENV", "dev"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		CatalogURL:      getenv("CATALOG_URL", "http://stock-service:8083"),
		UpstreamTimeout: parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),
		SnapshotBackend: getenv("SNAPSHOT_BACKEND", BackendFile),
		SnapshotDir:     getenv("SNAPSHOT_DIR", "./data"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
	}
}

func LoadStock() Stock {
	return Stock{
		Port:        getenv("PORT", "8083"),
		AppEnv:      getenv("APP_ENV", "dev"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		DatabaseDSN: getenv("STOCK_DB_DSN", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
