package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, populated from the environment.
type Config struct {
	Server        ServerConfig
	Nominatim     NominatimConfig
	Overpass      OverpassConfig
	Cache         CacheConfig
	Planner       PlannerConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Addr               string        `envconfig:"SERVER_ADDR" default:":8080"`
	ReadTimeout        time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout       time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout    time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	RateLimitPerSecond int           `envconfig:"SERVER_RATE_LIMIT_PER_SECOND" default:"10"`
	RateLimitBurst     int           `envconfig:"SERVER_RATE_LIMIT_BURST" default:"20"`
}

type NominatimConfig struct {
	BaseURL   string        `envconfig:"NOMINATIM_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent string        `envconfig:"UPSTREAM_USER_AGENT" default:"TripWhisper/1.0 (student project; https://openstreetmap.org)"`
	Timeout   time.Duration `envconfig:"NOMINATIM_TIMEOUT" default:"15s"`
}

type OverpassConfig struct {
	// Mirrors are tried strictly in order; the first success wins.
	Mirrors     []string      `envconfig:"OVERPASS_MIRRORS" default:"https://overpass-api.de/api/interpreter,https://overpass.kumi.systems/api/interpreter,https://overpass.openstreetmap.ru/api/interpreter"`
	MirrorDelay time.Duration `envconfig:"OVERPASS_MIRROR_DELAY" default:"200ms"`
	Timeout     time.Duration `envconfig:"OVERPASS_TIMEOUT" default:"90s"`
}

type CacheConfig struct {
	GeocodeTTL      time.Duration `envconfig:"CACHE_GEOCODE_TTL" default:"24h"`
	POITTL          time.Duration `envconfig:"CACHE_POI_TTL" default:"6h"`
	SearchTTL       time.Duration `envconfig:"CACHE_SEARCH_TTL" default:"1h"`
	CleanupInterval time.Duration `envconfig:"CACHE_CLEANUP_INTERVAL" default:"30m"`
}

type PlannerConfig struct {
	// RadiusMeters bounds the POI search around the resolved city center.
	RadiusMeters int `envconfig:"PLANNER_RADIUS_METERS" default:"12000"`
	// PolitenessInterval spaces out calls against the public OSM services.
	PolitenessInterval time.Duration `envconfig:"PLANNER_POLITENESS_INTERVAL" default:"120ms"`
}

type ObservabilityConfig struct {
	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if len(cfg.Overpass.Mirrors) == 0 {
		return nil, fmt.Errorf("at least one overpass mirror is required")
	}
	return &cfg, nil
}
