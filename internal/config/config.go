// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full runtime configuration. All values have working
// defaults; the TTLs and delays mirror the origin site's courtesy
// expectations and may be tuned per deployment.
type Config struct {
	RESTPort string
	RedisURL string // empty selects the in-memory cache

	RequestTimeout time.Duration

	GamesTTL   time.Duration
	GamesDelay time.Duration

	StandingsTTL   time.Duration
	StandingsDelay time.Duration

	DetailTTL   time.Duration
	DetailDelay time.Duration
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		RESTPort:       envOrDefault("REST_PORT", "8080"),
		RedisURL:       os.Getenv("REDIS_URL"),
		RequestTimeout: durationEnvOrDefault("REQUEST_TIMEOUT", 10*time.Second),

		GamesTTL:   secondsEnvOrDefault("GAMES_CACHE_TTL", 180*time.Second),
		GamesDelay: durationEnvOrDefault("GAMES_SCRAPE_DELAY", 5*time.Second),

		StandingsTTL:   secondsEnvOrDefault("STANDINGS_CACHE_TTL", 24*time.Hour),
		StandingsDelay: durationEnvOrDefault("STANDINGS_SCRAPE_DELAY", time.Second),

		DetailTTL:   secondsEnvOrDefault("DETAIL_CACHE_TTL", 24*time.Hour),
		DetailDelay: durationEnvOrDefault("DETAIL_SCRAPE_DELAY", time.Second),
	}
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}

// secondsEnvOrDefault accepts a bare integer second count, the unit the
// upstream cache headers speak in.
func secondsEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
