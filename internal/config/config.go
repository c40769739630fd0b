package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// PriceAPIBaseURL is where per-day documents live; the client appends
	// /{YYYY-MM-DD}.json.
	PriceAPIBaseURL string

	// TaxMultiplier converts raw prices to tax-inclusive ones.
	TaxMultiplier float64

	// Location is the provider's local timezone (calendar dates, day
	// boundaries, weekday labels).
	Location *time.Location

	// PublishCutoffHourUTC is the UTC hour at which the provider publishes
	// the next day's prices.
	PublishCutoffHourUTC int

	// RebuildInterval controls how often the full 3-day window is refetched.
	RebuildInterval time.Duration

	// ViewInterval controls how often the now-dependent view is recomputed.
	ViewInterval time.Duration

	// HTTPTimeout bounds outbound storage requests.
	HTTPTimeout time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of boards kept (0 = unlimited)
	StoreMaxAge     time.Duration // max age of boards (0 = unlimited)

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.PriceAPIBaseURL = getenvDefault("PRICE_API_BASE_URL", "https://sahkohinta.blob.core.windows.net/prices")

	cfg.TaxMultiplier = getenvFloat("TAX_MULTIPLIER", 1.24)
	if cfg.TaxMultiplier <= 0 {
		return nil, fmt.Errorf("TAX_MULTIPLIER must be positive: %v", cfg.TaxMultiplier)
	}

	tzName := getenvDefault("PROVIDER_TIMEZONE", "Europe/Helsinki")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_TIMEZONE %q: %w", tzName, err)
	}
	cfg.Location = loc

	cfg.PublishCutoffHourUTC = getenvInt("PUBLISH_CUTOFF_HOUR_UTC", 12)
	if cfg.PublishCutoffHourUTC < 0 || cfg.PublishCutoffHourUTC > 23 {
		return nil, fmt.Errorf("PUBLISH_CUTOFF_HOUR_UTC out of range: %d", cfg.PublishCutoffHourUTC)
	}

	// Rebuild interval: default 15 minutes, the cadence at which newly
	// published tomorrow data is discovered.
	rebuildStr := getenvDefault("REBUILD_INTERVAL", "15m")
	rebuild, err := time.ParseDuration(rebuildStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REBUILD_INTERVAL: %w", err)
	}
	cfg.RebuildInterval = rebuild

	// View interval: default 1 minute, keeps the current-hour highlight
	// accurate across hour boundaries.
	viewStr := getenvDefault("VIEW_INTERVAL", "1m")
	view, err := time.ParseDuration(viewStr)
	if err != nil {
		return nil, fmt.Errorf("invalid VIEW_INTERVAL: %w", err)
	}
	cfg.ViewInterval = view

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h of cycles at 15-minute intervals

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
