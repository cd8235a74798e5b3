package city

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/FACorreiaa/tripwhisper-api/internal/types"
	"github.com/FACorreiaa/tripwhisper-api/pkg/observability"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository is the upstream geocoding contract, backed by Nominatim.
type Repository interface {
	// Geocode resolves a free-text query to its best match.
	Geocode(ctx context.Context, query string) (*types.CityLocation, error)
	// SearchBounded searches for named places constrained to a bounding box.
	SearchBounded(ctx context.Context, query string, box types.BoundingBox, limit int) ([]types.RawPointOfInterest, error)
}

type RepositoryImpl struct {
	logger     *slog.Logger
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewNominatimRepository(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger:     logger,
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// nominatimPlace is the subset of a Nominatim search result we consume.
// Coordinates come back as numeric strings; boundingbox is
// [south, north, west, east], also as strings.
type nominatimPlace struct {
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`
	BoundingBox []string `json:"boundingbox"`
}

func (r *RepositoryImpl) Geocode(ctx context.Context, query string) (*types.CityLocation, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	places, err := r.search(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("no geocoding results for %q: %w", query, types.ErrNotFound)
	}

	place := places[0]
	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse latitude %q: %w", place.Lat, err)
	}
	lon, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse longitude %q: %w", place.Lon, err)
	}

	return &types.CityLocation{
		Name:        place.DisplayName,
		Lat:         lat,
		Lon:         lon,
		BoundingBox: parseBoundingBox(place.BoundingBox),
	}, nil
}

func (r *RepositoryImpl) SearchBounded(ctx context.Context, query string, box types.BoundingBox, limit int) ([]types.RawPointOfInterest, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("viewbox", fmt.Sprintf("%s,%s,%s,%s",
		formatCoord(box.West), formatCoord(box.North), formatCoord(box.East), formatCoord(box.South)))
	params.Set("bounded", "1")

	places, err := r.search(ctx, params)
	if err != nil {
		return nil, err
	}

	pois := make([]types.RawPointOfInterest, 0, len(places))
	for i, place := range places {
		lat, latErr := strconv.ParseFloat(place.Lat, 64)
		lon, lonErr := strconv.ParseFloat(place.Lon, 64)
		if latErr != nil || lonErr != nil {
			r.logger.WarnContext(ctx, "skipping place with unparsable coordinates",
				slog.String("name", place.DisplayName))
			continue
		}
		pois = append(pois, types.RawPointOfInterest{
			// Nominatim gives no stable numeric id in this mode; the index is
			// enough for a lookup/suggestion list.
			ExternalID: int64(i),
			Name:       place.DisplayName,
			Lat:        lat,
			Lon:        lon,
			Tags:       map[string]string{},
		})
	}
	return pois, nil
}

func (r *RepositoryImpl) search(ctx context.Context, params url.Values) ([]nominatimPlace, error) {
	reqURL := fmt.Sprintf("%s/search?%s", r.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create nominatim request: %w", err)
	}
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues("nominatim", "network_error").Inc()
		return nil, fmt.Errorf("nominatim request failed: %w: %w", types.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.UpstreamRequests.WithLabelValues("nominatim", "error").Inc()
		return nil, fmt.Errorf("nominatim search returned %s: %w", resp.Status, types.ErrUpstream)
	}
	observability.UpstreamRequests.WithLabelValues("nominatim", "success").Inc()

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	return places, nil
}

func parseBoundingBox(raw []string) *types.BoundingBox {
	if len(raw) != 4 {
		return nil
	}
	vals := make([]float64, 4)
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		vals[i] = v
	}
	return &types.BoundingBox{South: vals[0], North: vals[1], West: vals[2], East: vals[3]}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
