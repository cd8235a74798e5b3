package itinerary

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripwhisper-api/internal/api"
	"github.com/FACorreiaa/tripwhisper-api/internal/domain/city"
	"github.com/FACorreiaa/tripwhisper-api/internal/types"
)

const defaultSearchLimit = 8

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GenerateItinerary(w http.ResponseWriter, r *http.Request)
	GetLatestItinerary(w http.ResponseWriter, r *http.Request)
	SearchPlaces(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	itineraryService Service
	cityService      city.Service
	logger           *slog.Logger
}

func NewHandlerImpl(itineraryService Service, cityService city.Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		itineraryService: itineraryService,
		cityService:      cityService,
		logger:           logger,
	}
}

// GenerateItinerary builds a multi-day itinerary for a city and preferences.
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GenerateItinerary").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))

	var req types.GenerateItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.City) == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "City is required")
		return
	}

	result, err := h.itineraryService.Generate(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "itinerary generation failed", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ToItineraryResponse(result))
}

// GetLatestItinerary returns the most recently completed generation along
// with its state.
func (h *HandlerImpl) GetLatestItinerary(w http.ResponseWriter, r *http.Request) {
	result, state := h.itineraryService.Latest()

	resp := LatestResponse{State: state}
	if result != nil {
		resp.Result = ToItineraryResponse(result)
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// SearchPlaces validates or suggests user-typed place names inside a city's
// bounding box.
func (h *HandlerImpl) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SearchPlaces").Start(r.Context(), "SearchPlaces", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/places/search"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchPlaces"))

	cityName := strings.TrimSpace(r.URL.Query().Get("city"))
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if cityName == "" || query == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Both city and q are required")
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	places, err := h.cityService.SearchPlacesInCity(ctx, cityName, query, limit)
	if err != nil {
		l.ErrorContext(ctx, "place search failed", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, places)
}

// statusForError maps pipeline sentinels to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrAllMirrorsFailed), errors.Is(err, types.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
