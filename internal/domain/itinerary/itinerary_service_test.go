package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tripwhisper-api/internal/types"
)

// MockCityService is a mock implementation of city.Service.
type MockCityService struct {
	mock.Mock
}

func (m *MockCityService) ResolveCity(ctx context.Context, cityName string) (*types.CityLocation, error) {
	args := m.Called(ctx, cityName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CityLocation), args.Error(1)
}

func (m *MockCityService) SearchPlacesInCity(ctx context.Context, cityName, query string, limit int) ([]types.RawPointOfInterest, error) {
	args := m.Called(ctx, cityName, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RawPointOfInterest), args.Error(1)
}

// MockPOIService is a mock implementation of poi.Service.
type MockPOIService struct {
	mock.Mock
}

func (m *MockPOIService) FetchNearby(ctx context.Context, lat, lon float64, radiusMeters int) ([]types.RawPointOfInterest, error) {
	args := m.Called(ctx, lat, lon, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RawPointOfInterest), args.Error(1)
}

func sanDiegoLocation() *types.CityLocation {
	return &types.CityLocation{Name: "San Diego, California, United States", Lat: sanDiegoLat, Lon: sanDiegoLon}
}

func classifiablePOIs(n int) []types.RawPointOfInterest {
	tags := []map[string]string{
		{"tourism": "museum"},
		{"leisure": "park"},
		{"amenity": "restaurant"},
		{"tourism": "viewpoint"},
		{"historic": "monument"},
	}
	pois := make([]types.RawPointOfInterest, 0, n)
	for i := 0; i < n; i++ {
		pois = append(pois, types.RawPointOfInterest{
			ExternalID: int64(i + 1),
			Name:       "Place",
			Lat:        sanDiegoLat,
			Lon:        sanDiegoLon,
			Tags:       tags[i%len(tags)],
		})
	}
	return pois
}

func newTestService(cityMock *MockCityService, poiMock *MockPOIService) *ServiceImpl {
	return NewItineraryService(cityMock, poiMock, 12000, slog.Default())
}

func TestGenerateHappyPath(t *testing.T) {
	cityMock := new(MockCityService)
	poiMock := new(MockPOIService)
	svc := newTestService(cityMock, poiMock)

	cityMock.On("ResolveCity", mock.Anything, "San Diego").Return(sanDiegoLocation(), nil)
	poiMock.On("FetchNearby", mock.Anything, sanDiegoLat, sanDiegoLon, 12000).Return(classifiablePOIs(10), nil)

	result, err := svc.Generate(context.Background(), types.GenerateItineraryRequest{
		City:      "San Diego",
		Days:      3,
		Interests: []string{"food"},
		Budget:    types.BudgetMid,
		Pace:      types.PaceBalanced,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Days)
	assert.Len(t, result.Itinerary, 3)
	assert.Equal(t, "San Diego, California, United States", result.City.Name)

	latest, state := svc.Latest()
	assert.Equal(t, types.GenerationCompleted, state)
	assert.Equal(t, result, latest)

	cityMock.AssertExpectations(t)
	poiMock.AssertExpectations(t)
}

func TestGenerateEmptyCity(t *testing.T) {
	svc := newTestService(new(MockCityService), new(MockPOIService))

	_, err := svc.Generate(context.Background(), types.GenerateItineraryRequest{City: "   "})

	assert.ErrorIs(t, err, types.ErrBadRequest)
}

func TestGenerateClampsDayCount(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected int
	}{
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -3, 1},
		{"above range clamps to seven", 99, 7},
		{"in range unchanged", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cityMock := new(MockCityService)
			poiMock := new(MockPOIService)
			svc := newTestService(cityMock, poiMock)

			cityMock.On("ResolveCity", mock.Anything, "San Diego").Return(sanDiegoLocation(), nil)
			poiMock.On("FetchNearby", mock.Anything, sanDiegoLat, sanDiegoLon, 12000).Return(classifiablePOIs(25), nil)

			result, err := svc.Generate(context.Background(), types.GenerateItineraryRequest{
				City: "San Diego",
				Days: tt.days,
				Pace: types.PaceChill,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Days)
			assert.Len(t, result.Itinerary, tt.expected)
		})
	}
}

func TestGenerateInsufficientData(t *testing.T) {
	cityMock := new(MockCityService)
	poiMock := new(MockPOIService)
	svc := newTestService(cityMock, poiMock)

	cityMock.On("ResolveCity", mock.Anything, "Nowhere").Return(sanDiegoLocation(), nil)
	poiMock.On("FetchNearby", mock.Anything, sanDiegoLat, sanDiegoLon, 12000).Return(classifiablePOIs(2), nil)

	_, err := svc.Generate(context.Background(), types.GenerateItineraryRequest{City: "Nowhere", Days: 1})

	assert.ErrorIs(t, err, types.ErrInsufficientData)

	latest, state := svc.Latest()
	assert.Equal(t, types.GenerationFailed, state)
	assert.Nil(t, latest)
}

func TestGeneratePropagatesGeocodeFailure(t *testing.T) {
	cityMock := new(MockCityService)
	poiMock := new(MockPOIService)
	svc := newTestService(cityMock, poiMock)

	cityMock.On("ResolveCity", mock.Anything, "Atlantis").Return(nil, types.ErrNotFound)

	_, err := svc.Generate(context.Background(), types.GenerateItineraryRequest{City: "Atlantis", Days: 1})

	assert.ErrorIs(t, err, types.ErrNotFound)
	poiMock.AssertNotCalled(t, "FetchNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGeneratePropagatesMirrorExhaustion(t *testing.T) {
	cityMock := new(MockCityService)
	poiMock := new(MockPOIService)
	svc := newTestService(cityMock, poiMock)

	cityMock.On("ResolveCity", mock.Anything, "San Diego").Return(sanDiegoLocation(), nil)
	poiMock.On("FetchNearby", mock.Anything, sanDiegoLat, sanDiegoLon, 12000).
		Return(nil, fmt.Errorf("%w: overpass mirror unavailable", types.ErrAllMirrorsFailed))

	_, err := svc.Generate(context.Background(), types.GenerateItineraryRequest{City: "San Diego", Days: 2})

	assert.ErrorIs(t, err, types.ErrAllMirrorsFailed)
}

// A completion carrying an older token must never overwrite a newer stored
// result.
func TestStoreResultDiscardsStaleToken(t *testing.T) {
	svc := newTestService(new(MockCityService), new(MockPOIService))

	newer := &types.GenerationResult{Days: 2, GeneratedAt: time.Now().UTC()}
	older := &types.GenerationResult{Days: 5, GeneratedAt: time.Now().UTC()}

	assert.True(t, svc.storeResult(2, newer))
	assert.False(t, svc.storeResult(1, older), "stale token should be discarded")

	latest, state := svc.Latest()
	assert.Equal(t, types.GenerationCompleted, state)
	assert.Equal(t, newer, latest)
}
