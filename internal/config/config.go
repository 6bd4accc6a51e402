package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/skycast-io/skycast/internal/weather"
)

// AppConfig holds all runtime configuration, loaded from the environment.
type AppConfig struct {
	Port string

	// HTTPTimeout bounds outbound provider and sink calls.
	HTTPTimeout time.Duration

	// FetchInterval controls how often tracked locations are refreshed.
	FetchInterval time.Duration

	// CacheMaxAge is the freshness window for cached snapshots/summaries.
	CacheMaxAge time.Duration

	// AlertDelay is how far in the future evaluated alerts are scheduled.
	AlertDelay time.Duration

	// DailySummaryAt is the local wall-clock time ("HH:MM") for the
	// morning digest.
	DailySummaryAt string

	// Locations tracked by the scheduler.
	Locations []weather.Location

	// NotifySinkURL is the push-gateway endpoint; empty means log-only.
	NotifySinkURL string

	// GoogleGeocoderAPIKey enables the fallback city search when set.
	GoogleGeocoderAPIKey string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:                 getenvDefault("PORT", "8080"),
		DailySummaryAt:       getenvDefault("DAILY_SUMMARY_AT", "07:00"),
		NotifySinkURL:        os.Getenv("NOTIFY_SINK_URL"),
		GoogleGeocoderAPIKey: os.Getenv("GOOGLE_GEOCODER_API_KEY"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.CacheMaxAge, err = getenvDuration("CACHE_MAX_AGE", "15m"); err != nil {
		return nil, err
	}
	if cfg.AlertDelay, err = getenvDuration("ALERT_DELAY", "2s"); err != nil {
		return nil, err
	}

	if _, err := time.Parse("15:04", cfg.DailySummaryAt); err != nil {
		return nil, fmt.Errorf("invalid DAILY_SUMMARY_AT %q: want HH:MM", cfg.DailySummaryAt)
	}

	locs, err := parseLocations(os.Getenv("TRACKED_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// parseLocations parses "Name:lat,lon;Name:lat,lon". An empty value is
// valid: the service then only answers on-demand API requests.
func parseLocations(raw string) ([]weather.Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var locs []weather.Location
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, coords, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid TRACKED_LOCATIONS entry %q: want Name:lat,lon", part)
		}

		latStr, lonStr, ok := strings.Cut(coords, ",")
		if !ok {
			return nil, fmt.Errorf("invalid coordinates in TRACKED_LOCATIONS entry %q", part)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in TRACKED_LOCATIONS entry %q: %w", part, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in TRACKED_LOCATIONS entry %q: %w", part, err)
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("coordinates out of range in TRACKED_LOCATIONS entry %q", part)
		}

		locs = append(locs, weather.Location{
			Name:      strings.TrimSpace(name),
			Latitude:  lat,
			Longitude: lon,
		})
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
