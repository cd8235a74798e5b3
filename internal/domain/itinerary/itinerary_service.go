package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/tripwhisper-api/internal/domain/city"
	"github.com/FACorreiaa/tripwhisper-api/internal/domain/poi"
	"github.com/FACorreiaa/tripwhisper-api/internal/types"
	"github.com/FACorreiaa/tripwhisper-api/pkg/observability"
)

const (
	minDays = 1
	maxDays = 7

	// minActivities is the floor below which a city has too little usable
	// data to plan anything meaningful.
	minActivities = 3
)

var _ Service = (*ServiceImpl)(nil)

// Service drives the full generation pipeline: geocode, fetch, classify,
// schedule.
type Service interface {
	Generate(ctx context.Context, req types.GenerateItineraryRequest) (*types.GenerationResult, error)
	Latest() (*types.GenerationResult, types.GenerationState)
}

type ServiceImpl struct {
	logger       *slog.Logger
	cityService  city.Service
	poiService   poi.Service
	radiusMeters int

	// Each generation takes a monotonically increasing token. Completions
	// carrying a token older than the stored one are discarded, so a slow,
	// superseded request can never overwrite a newer result.
	seq         atomic.Uint64
	mu          sync.Mutex
	latest      *types.GenerationResult
	latestToken uint64
	state       types.GenerationState
}

func NewItineraryService(cityService city.Service, poiService poi.Service, radiusMeters int, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		cityService:  cityService,
		poiService:   poiService,
		radiusMeters: radiusMeters,
		state:        types.GenerationIdle,
	}
}

// Generate builds an itinerary for the requested city and preferences. Day
// counts outside [1,7] are clamped, not rejected. A failed upstream fetch
// voids the whole attempt; there is no partial result.
func (s *ServiceImpl) Generate(ctx context.Context, req types.GenerateItineraryRequest) (*types.GenerationResult, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate")
	defer span.End()

	l := s.logger.With(slog.String("method", "Generate"), slog.String("city", req.City))

	if strings.TrimSpace(req.City) == "" {
		return nil, fmt.Errorf("city name is required: %w", types.ErrBadRequest)
	}

	token := s.seq.Add(1)
	s.markRunning(token)

	result, err := s.generate(ctx, l, req)
	if err != nil {
		observability.ItinerariesGenerated.WithLabelValues("failure").Inc()
		s.markFailed(token)
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, err
	}

	stored := s.storeResult(token, result)
	if !stored {
		l.WarnContext(ctx, "stale generation result discarded", slog.Uint64("token", token))
	}
	observability.ItinerariesGenerated.WithLabelValues("success").Inc()
	span.SetAttributes(attribute.Int("itinerary.days", result.Days))
	span.SetStatus(codes.Ok, "itinerary generated")

	return result, nil
}

func (s *ServiceImpl) generate(ctx context.Context, l *slog.Logger, req types.GenerateItineraryRequest) (*types.GenerationResult, error) {
	days := clampDays(req.Days)

	loc, err := s.cityService.ResolveCity(ctx, req.City)
	if err != nil {
		return nil, err
	}

	pois, err := s.poiService.FetchNearby(ctx, loc.Lat, loc.Lon, s.radiusMeters)
	if err != nil {
		return nil, err
	}

	activities := BuildActivities(pois)
	if len(activities) < minActivities {
		return nil, fmt.Errorf("only %d classifiable activities near %q: %w",
			len(activities), loc.Name, types.ErrInsufficientData)
	}

	prefs := types.Preferences{Interests: req.Interests, Budget: req.Budget, Pace: req.Pace}
	plan := Schedule(activities, prefs, days, loc.Lat, loc.Lon)

	l.InfoContext(ctx, "itinerary generated",
		slog.Int("days", days),
		slog.Int("activities", len(activities)))

	return &types.GenerationResult{
		City:        *loc,
		Itinerary:   plan,
		Days:        days,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// Latest returns the most recent stored result and the generation state.
func (s *ServiceImpl) Latest() (*types.GenerationResult, types.GenerationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.state
}

func (s *ServiceImpl) markRunning(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token >= s.latestToken {
		s.state = types.GenerationRunning
	}
}

func (s *ServiceImpl) markFailed(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token >= s.latestToken {
		s.state = types.GenerationFailed
	}
}

// storeResult keeps the result only when its token is at least as new as the
// stored one. Reports whether the result was kept.
func (s *ServiceImpl) storeResult(token uint64, result *types.GenerationResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token < s.latestToken {
		return false
	}
	s.latest = result
	s.latestToken = token
	s.state = types.GenerationCompleted
	return true
}

func clampDays(days int) int {
	if days < minDays {
		return minDays
	}
	if days > maxDays {
		return maxDays
	}
	return days
}
