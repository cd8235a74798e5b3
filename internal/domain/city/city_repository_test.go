package city

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tripwhisper-api/internal/types"
)

const sanDiegoJSON = `[{"lat":"32.7174202","lon":"-117.1627728","display_name":"San Diego, California, United States","boundingbox":["32.5347737","33.1142196","-117.3098053","-116.9057226"]}]`

func newTestRepository(baseURL string) *RepositoryImpl {
	return NewNominatimRepository(baseURL, "test-agent", 5*time.Second, slog.Default())
}

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "San Diego", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "en", r.Header.Get("Accept-Language"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(sanDiegoJSON))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)

	loc, err := repo.Geocode(context.Background(), "San Diego")

	require.NoError(t, err)
	assert.Equal(t, "San Diego, California, United States", loc.Name)
	assert.InDelta(t, 32.7174202, loc.Lat, 1e-9)
	assert.InDelta(t, -117.1627728, loc.Lon, 1e-9)
	require.NotNil(t, loc.BoundingBox)
	assert.InDelta(t, 32.5347737, loc.BoundingBox.South, 1e-9)
	assert.InDelta(t, -116.9057226, loc.BoundingBox.East, 1e-9)
}

func TestGeocodeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)

	_, err := repo.Geocode(context.Background(), "San Diego")

	assert.ErrorIs(t, err, types.ErrUpstream)
}

func TestGeocodeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)

	_, err := repo.Geocode(context.Background(), "Atlantis")

	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSearchBounded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tower", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
		assert.Equal(t, "1", r.URL.Query().Get("bounded"))
		// viewbox is west,north,east,south
		assert.Equal(t, "-117.3098053,33.1142196,-116.9057226,32.5347737", r.URL.Query().Get("viewbox"))
		w.Write([]byte(`[
			{"lat":"32.71","lon":"-117.16","display_name":"Old Tower"},
			{"lat":"not-a-number","lon":"-117.16","display_name":"Broken Entry"}
		]`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	box := types.BoundingBox{South: 32.5347737, North: 33.1142196, West: -117.3098053, East: -116.9057226}

	places, err := repo.SearchBounded(context.Background(), "tower", box, 8)

	require.NoError(t, err)
	require.Len(t, places, 1, "entries with unparsable coordinates are skipped")
	assert.Equal(t, "Old Tower", places[0].Name)
	assert.InDelta(t, 32.71, places[0].Lat, 1e-9)
	assert.NotNil(t, places[0].Tags)
}

func TestParseBoundingBox(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		expected *types.BoundingBox
	}{
		{
			name:     "valid box",
			raw:      []string{"32.5", "33.1", "-117.3", "-116.9"},
			expected: &types.BoundingBox{South: 32.5, North: 33.1, West: -117.3, East: -116.9},
		},
		{name: "wrong length", raw: []string{"32.5", "33.1"}, expected: nil},
		{name: "unparsable entry", raw: []string{"a", "b", "c", "d"}, expected: nil},
		{name: "missing box", raw: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseBoundingBox(tt.raw))
		})
	}
}
