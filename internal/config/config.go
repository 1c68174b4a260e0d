// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"assetpipe/internal/pipeline"
	"assetpipe/internal/remote"
)

type Config struct {
	Env string

	// Remote generation service.
	ServiceBaseURL string
	ServiceAPIKey  string
	HTTPTimeout    time.Duration

	// Request defaults used when the caller does not specify them.
	DefaultModel      pipeline.Model
	DefaultStyle      pipeline.Style
	DefaultDimensions pipeline.Dimensions

	// Pipeline pacing between consecutive requests.
	ThrottleDelay time.Duration

	// Local artifacts.
	StoragePath   string
	HistoryDBPath string

	// Dev server listen port and per-client rate limit.
	Port      string
	RateLimit int
}

// Load reads configuration from the environment. Enum values that fail to
// parse fall back to their defaults rather than aborting.
func Load() Config {
	_ = godotenv.Load(".env", ".env.local")

	c := Config{
		Env:            getenv("APP_ENV", "development"),
		ServiceBaseURL: getenv("ASSET_SERVICE_URL", "http://localhost:8080"),
		ServiceAPIKey:  getenv("ASSET_SERVICE_API_KEY", ""),
		HTTPTimeout:    time.Duration(getenvInt("HTTP_TIMEOUT_SECONDS", 60)) * time.Second,
		ThrottleDelay:  time.Duration(getenvInt("PIPELINE_THROTTLE_MS", 500)) * time.Millisecond,
		StoragePath:    getenv("STORAGE_PATH", "./data"),
		HistoryDBPath:  getenv("HISTORY_DB_PATH", "./data/history.db"),
		Port:           getenv("PORT", "8080"),
		RateLimit:      getenvInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	c.DefaultModel = pipeline.ModelPrimary
	if m, err := remote.ParseModel(getenv("DEFAULT_MODEL", "dalle")); err == nil {
		c.DefaultModel = m
	}
	c.DefaultStyle = pipeline.StyleRealistic
	if s, err := remote.ParseStyle(getenv("DEFAULT_STYLE", "realistic")); err == nil {
		c.DefaultStyle = s
	}
	c.DefaultDimensions = pipeline.DimensionsMedium
	if d, err := remote.ParseDimensions(getenv("DEFAULT_DIMENSIONS", "512x512")); err == nil {
		c.DefaultDimensions = d
	}

	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
