package main

import (
	"log/slog"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/tripwhisper-api/internal/domain/city"
	"github.com/FACorreiaa/tripwhisper-api/internal/domain/itinerary"
	"github.com/FACorreiaa/tripwhisper-api/internal/domain/poi"
	"github.com/FACorreiaa/tripwhisper-api/pkg/config"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	// Caches (explicit, TTL-bounded, shared across requests)
	GeocodeCache *cache.Cache
	POICache     *cache.Cache
	SearchCache  *cache.Cache

	// Upstream clients
	NominatimRepo  city.Repository
	OverpassClient poi.Client

	// Services
	CityService      city.Service
	POIService       poi.Service
	ItineraryService itinerary.Service

	// Handlers
	ItineraryHandler itinerary.Handler
}

// InitDependencies wires caches, upstream clients, services, and handlers.
func InitDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.GeocodeCache = cache.New(cfg.Cache.GeocodeTTL, cfg.Cache.CleanupInterval)
	deps.POICache = cache.New(cfg.Cache.POITTL, cfg.Cache.CleanupInterval)
	deps.SearchCache = cache.New(cfg.Cache.SearchTTL, cfg.Cache.CleanupInterval)

	// One limiter shared by every caller of the public OSM services.
	politeness := rate.NewLimiter(rate.Every(cfg.Planner.PolitenessInterval), 1)

	deps.NominatimRepo = city.NewNominatimRepository(
		cfg.Nominatim.BaseURL,
		cfg.Nominatim.UserAgent,
		cfg.Nominatim.Timeout,
		logger,
	)
	deps.OverpassClient = poi.NewOverpassClient(
		cfg.Overpass.Mirrors,
		cfg.Overpass.MirrorDelay,
		cfg.Nominatim.UserAgent,
		cfg.Overpass.Timeout,
		logger,
	)

	deps.CityService = city.NewCityService(deps.NominatimRepo, deps.GeocodeCache, deps.SearchCache, politeness, logger)
	deps.POIService = poi.NewPOIService(deps.OverpassClient, deps.POICache, politeness, logger)
	deps.ItineraryService = itinerary.NewItineraryService(deps.CityService, deps.POIService, cfg.Planner.RadiusMeters, logger)

	deps.ItineraryHandler = itinerary.NewHandlerImpl(deps.ItineraryService, deps.CityService, logger)

	return deps
}
