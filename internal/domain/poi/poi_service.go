package poi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/tripwhisper-api/internal/types"
	"github.com/FACorreiaa/tripwhisper-api/pkg/observability"
)

var _ Service = (*ServiceImpl)(nil)

// Service fetches, normalizes, and deduplicates points of interest around a
// coordinate.
type Service interface {
	FetchNearby(ctx context.Context, lat, lon float64, radiusMeters int) ([]types.RawPointOfInterest, error)
}

type ServiceImpl struct {
	logger     *slog.Logger
	client     Client
	poiCache   *cache.Cache
	politeness *rate.Limiter
}

func NewPOIService(client Client, poiCache *cache.Cache, politeness *rate.Limiter, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		client:     client,
		poiCache:   poiCache,
		politeness: politeness,
	}
}

// FetchNearby runs the two category queries concurrently and joins them: both
// must succeed, there is no partial result. Results are cached by rounded
// coordinate and radius.
func (s *ServiceImpl) FetchNearby(ctx context.Context, lat, lon float64, radiusMeters int) ([]types.RawPointOfInterest, error) {
	ctx, span := otel.Tracer("POIService").Start(ctx, "FetchNearby")
	defer span.End()

	l := s.logger.With(
		slog.String("method", "FetchNearby"),
		slog.Float64("lat", lat),
		slog.Float64("lon", lon),
		slog.Int("radius_m", radiusMeters))

	cacheKey := fmt.Sprintf("%.4f,%.4f:%d", lat, lon, radiusMeters)
	if cached, found := s.poiCache.Get(cacheKey); found {
		if pois, ok := cached.([]types.RawPointOfInterest); ok {
			observability.CacheHits.WithLabelValues("poi").Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return pois, nil
		}
	}
	observability.CacheMisses.WithLabelValues("poi").Inc()

	// Fair-use pause before hitting the public interpreter.
	if err := s.politeness.Wait(ctx); err != nil {
		return nil, fmt.Errorf("politeness wait interrupted: %w", err)
	}

	var attractions, foodNightlife []types.OverpassElement
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		attractions, err = s.client.Query(gctx, attractionsQuery(radiusMeters, lat, lon))
		return err
	})
	g.Go(func() error {
		var err error
		foodNightlife, err = s.client.Query(gctx, foodNightlifeQuery(radiusMeters, lat, lon))
		return err
	})
	if err := g.Wait(); err != nil {
		l.ErrorContext(ctx, "poi category fetch failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "category fetch failed")
		return nil, err
	}

	elements := make([]types.OverpassElement, 0, len(attractions)+len(foodNightlife))
	elements = append(elements, attractions...)
	elements = append(elements, foodNightlife...)

	pois := dedupe(normalize(elements))
	s.poiCache.Set(cacheKey, pois, cache.DefaultExpiration)

	l.InfoContext(ctx, "pois fetched",
		slog.Int("raw_elements", len(elements)),
		slog.Int("pois", len(pois)))
	span.SetAttributes(
		attribute.Int("elements.raw", len(elements)),
		attribute.Int("pois.count", len(pois)))
	span.SetStatus(codes.Ok, "pois fetched")

	return pois, nil
}

// normalize drops elements without a name tag or resolvable coordinates.
// Ways and relations fall back to their center point.
func normalize(elements []types.OverpassElement) []types.RawPointOfInterest {
	pois := make([]types.RawPointOfInterest, 0, len(elements))
	for _, e := range elements {
		name := e.Tags["name"]
		if name == "" {
			continue
		}

		lat, lon := e.Lat, e.Lon
		if lat == nil || lon == nil {
			if e.Center == nil {
				continue
			}
			lat, lon = &e.Center.Lat, &e.Center.Lon
		}

		tags := e.Tags
		if tags == nil {
			tags = map[string]string{}
		}
		pois = append(pois, types.RawPointOfInterest{
			ExternalID: e.ID,
			Name:       name,
			Lat:        *lat,
			Lon:        *lon,
			Tags:       tags,
		})
	}
	return pois
}

// dedupe collapses entries sharing a name and coordinates equal to four
// decimal places. The first occurrence wins and input order is preserved.
func dedupe(pois []types.RawPointOfInterest) []types.RawPointOfInterest {
	seen := make(map[string]struct{}, len(pois))
	out := make([]types.RawPointOfInterest, 0, len(pois))
	for _, p := range pois {
		sig := fmt.Sprintf("%s|%.4f,%.4f", p.Name, p.Lat, p.Lon)
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		out = append(out, p)
	}
	return out
}
