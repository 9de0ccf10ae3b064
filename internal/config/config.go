package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration, loaded from the environment with
// an optional .env file for local development.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// RedisURL selects the primary key-value store. DatabaseURL, when set,
	// switches the account repositories to Postgres instead.
	RedisURL    string
	DatabaseURL string

	// KafkaBrokers, when non-empty, routes account events to Kafka instead
	// of the in-process channel bus.
	KafkaBrokers []string

	// SimulatedLatency is applied before every account operation touches
	// the store, mimicking a network round-trip.
	SimulatedLatency time.Duration
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine; real deployments configure via environment.
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		SimulatedLatency: 1000 * time.Millisecond,
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if ms := getEnv("SIMULATED_LATENCY_MS", ""); ms != "" {
		n, err := strconv.Atoi(ms)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid SIMULATED_LATENCY_MS: %q", ms)
		}
		cfg.SimulatedLatency = time.Duration(n) * time.Millisecond
	}

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q", os.Getenv("LOG_LEVEL"))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
