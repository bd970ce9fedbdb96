package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port                 string
	DatabaseURL          string
	MigrationsDir        string
	SeedFixtures         bool
	CorsOrigins          []string
	LogDir               string
	LogRetentionDays     int
	LogLevel             string
	LogFormat            string
	AnalysisDelay        time.Duration
	HighCostMargin       float64
	RateLimitRequests    int
	RateLimitWindow      time.Duration
	MetricsDiskPath      string
	MetricsSampleSeconds int
}

func Load() Config {
	return Config{
		Port:                 envOr("PORT", "8080"),
		DatabaseURL:          envOr("DATABASE_URL", ""),
		MigrationsDir:        envOr("MIGRATIONS_DIR", "migrations"),
		SeedFixtures:         envOrBool("SEED_FIXTURES", true),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
		LogDir:               envOr("LOG_DIR", "storage/logs"),
		LogRetentionDays:     clamp(envOrInt("LOG_RETENTION_DAYS", 7), 1, 7),
		LogLevel:             strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat:            strings.ToLower(envOr("LOG_FORMAT", "json")),
		AnalysisDelay:        time.Duration(envOrInt("ANALYSIS_DELAY_MS", 0)) * time.Millisecond,
		HighCostMargin:       envOrFloat("HIGH_COST_MARGIN", 1.0),
		RateLimitRequests:    envOrInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:      time.Duration(envOrInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", "storage"),
		MetricsSampleSeconds: envOrInt("METRICS_SAMPLE_INTERVAL", 15),
	}
}

// UsesDatabase reports whether entities live in Postgres rather than memory.
func (c Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
