package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                    string
	HTTPAddr               string
	BookingAPIURL          string
	RemoteTimeout          time.Duration
	AvailabilityWindowDays int
	ConfirmPollInterval    time.Duration
	ConfirmMaxAttempts     int
	RedisAddr              string
	RedisPassword          string
	CacheTTL               time.Duration
	CORSOrigins            []string
}

// Load parses configuration from the current environment. A .env file in the
// working directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:           getEnv("APP_ENV", "dev"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		BookingAPIURL: os.Getenv("BOOKING_API_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	origins := getEnv("CORS_ORIGINS", "")
	if origins != "" {
		for _, raw := range strings.Split(origins, ",") {
			if val := strings.TrimSpace(raw); val != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, val)
			}
		}
	}

	remoteTimeout, err := parseDurationEnv("REMOTE_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.RemoteTimeout = remoteTimeout

	pollInterval, err := parseDurationEnv("CONFIRM_POLL_INTERVAL", 2*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ConfirmPollInterval = pollInterval

	maxAttempts, err := parseIntEnv("CONFIRM_MAX_ATTEMPTS", 5)
	if err != nil {
		return Config{}, err
	}
	cfg.ConfirmMaxAttempts = maxAttempts

	windowDays, err := parseIntEnv("AVAILABILITY_WINDOW_DAYS", 365)
	if err != nil {
		return Config{}, err
	}
	cfg.AvailabilityWindowDays = windowDays

	cacheTTL, err := parseDurationEnv("CACHE_TTL", 10*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.CacheTTL = cacheTTL

	if cfg.BookingAPIURL == "" {
		return Config{}, fmt.Errorf("BOOKING_API_URL is required")
	}
	if cfg.ConfirmMaxAttempts < 1 {
		return Config{}, fmt.Errorf("CONFIRM_MAX_ATTEMPTS must be at least 1")
	}
	if cfg.AvailabilityWindowDays < 1 {
		return Config{}, fmt.Errorf("AVAILABILITY_WINDOW_DAYS must be at least 1")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}
