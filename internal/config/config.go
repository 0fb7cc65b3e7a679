package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kasiv/weather-lookup/internal/weather"
)

type AppConfig struct {
	// GoogleAPIKey authenticates the weather and geocoding calls. Its
	// absence is a configuration error surfaced at the HTTP boundary, not
	// a reason to fail startup.
	GoogleAPIKey string

	// DefaultUnits applies when a request omits the units parameter.
	DefaultUnits weather.Units

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// CacheTTL controls how long provider-sourced results stay warm.
	CacheTTL time.Duration

	// WarmLocations are looked up periodically to keep the cache populated.
	WarmLocations []weather.Location
	WarmInterval  time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	if cfg.GoogleAPIKey == "" {
		log.Println("WARN: GOOGLE_API_KEY not set; lookups will be rejected as unconfigured")
	}

	units := weather.Units(getenvDefault("DEFAULT_UNITS", string(weather.UnitsMetric)))
	if units != weather.UnitsMetric && units != weather.UnitsImperial {
		return nil, fmt.Errorf("invalid DEFAULT_UNITS: %q (want metric or imperial)", units)
	}
	cfg.DefaultUnits = units

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	ttl, err := time.ParseDuration(getenvDefault("CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	interval, err := time.ParseDuration(getenvDefault("WARM_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}
	cfg.WarmInterval = interval

	locs, err := parseWarmLocations(os.Getenv("WARM_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.WarmLocations = locs

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// parseWarmLocations parses "lat,lon;lat,lon" pairs.
func parseWarmLocations(raw string) ([]weather.Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var locs []weather.Location
	for _, pair := range strings.Split(raw, ";") {
		parts := strings.Split(strings.TrimSpace(pair), ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid WARM_LOCATIONS entry: %q", pair)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in WARM_LOCATIONS entry %q: %w", pair, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in WARM_LOCATIONS entry %q: %w", pair, err)
		}

		locs = append(locs, weather.Location{Lat: lat, Lon: lon})
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
