package city

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/tripwhisper-api/internal/types"
	"github.com/FACorreiaa/tripwhisper-api/pkg/observability"
)

var _ Service = (*ServiceImpl)(nil)

// Service resolves city names and validates user-typed place names.
type Service interface {
	ResolveCity(ctx context.Context, cityName string) (*types.CityLocation, error)
	SearchPlacesInCity(ctx context.Context, cityName, query string, limit int) ([]types.RawPointOfInterest, error)
}

type ServiceImpl struct {
	logger       *slog.Logger
	repo         Repository
	geocodeCache *cache.Cache
	searchCache  *cache.Cache
	politeness   *rate.Limiter
}

func NewCityService(repo Repository, geocodeCache, searchCache *cache.Cache, politeness *rate.Limiter, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		repo:         repo,
		geocodeCache: geocodeCache,
		searchCache:  searchCache,
		politeness:   politeness,
	}
}

// ResolveCity geocodes a free-text city name. Results are cached by the
// trimmed, case-folded input, so "  Lisbon " and "lisbon" share one entry.
func (s *ServiceImpl) ResolveCity(ctx context.Context, cityName string) (*types.CityLocation, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "ResolveCity")
	defer span.End()

	l := s.logger.With(slog.String("method", "ResolveCity"), slog.String("city", cityName))

	key := strings.ToLower(strings.TrimSpace(cityName))
	if cached, found := s.geocodeCache.Get(key); found {
		if loc, ok := cached.(*types.CityLocation); ok {
			observability.CacheHits.WithLabelValues("geocode").Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return loc, nil
		}
	}
	observability.CacheMisses.WithLabelValues("geocode").Inc()

	loc, err := s.repo.Geocode(ctx, cityName)
	if err != nil {
		l.ErrorContext(ctx, "failed to geocode city", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding failed")
		return nil, err
	}

	s.geocodeCache.Set(key, loc, cache.DefaultExpiration)
	l.InfoContext(ctx, "city resolved",
		slog.String("display_name", loc.Name),
		slog.Float64("lat", loc.Lat),
		slog.Float64("lon", loc.Lon))
	span.SetStatus(codes.Ok, "city resolved")

	return loc, nil
}

// SearchPlacesInCity geocodes the city to obtain its bounding box, then runs
// a Nominatim search constrained to that box. Used to validate or suggest
// user-typed place names; not an autocomplete.
func (s *ServiceImpl) SearchPlacesInCity(ctx context.Context, cityName, query string, limit int) ([]types.RawPointOfInterest, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "SearchPlacesInCity")
	defer span.End()

	l := s.logger.With(
		slog.String("method", "SearchPlacesInCity"),
		slog.String("city", cityName),
		slog.String("query", query))

	cacheKey := fmt.Sprintf("%s|%s|%d", strings.ToLower(cityName), strings.ToLower(query), limit)
	if cached, found := s.searchCache.Get(cacheKey); found {
		if pois, ok := cached.([]types.RawPointOfInterest); ok {
			observability.CacheHits.WithLabelValues("search").Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return pois, nil
		}
	}
	observability.CacheMisses.WithLabelValues("search").Inc()

	loc, err := s.ResolveCity(ctx, cityName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "city lookup failed")
		return nil, err
	}
	if loc.BoundingBox == nil {
		l.WarnContext(ctx, "resolved city has no bounding box, returning no places")
		return []types.RawPointOfInterest{}, nil
	}

	if err := s.politeness.Wait(ctx); err != nil {
		return nil, fmt.Errorf("politeness wait interrupted: %w", err)
	}

	pois, err := s.repo.SearchBounded(ctx, query, *loc.BoundingBox, limit)
	if err != nil {
		l.ErrorContext(ctx, "bounded place search failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "bounded search failed")
		return nil, err
	}

	s.searchCache.Set(cacheKey, pois, cache.DefaultExpiration)
	l.InfoContext(ctx, "bounded place search completed", slog.Int("count", len(pois)))
	span.SetAttributes(attribute.Int("places.count", len(pois)))
	span.SetStatus(codes.Ok, "places found")

	return pois, nil
}
