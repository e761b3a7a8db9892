package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/facility-discovery/internal/domain"
	apperrors "github.com/facility-discovery/internal/pkg/errors"
	"github.com/facility-discovery/internal/usecase"
	"github.com/facility-discovery/internal/usecase/dto"
)

// MockGeocoderRepository is a mock of GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) Geocode(ctx context.Context, address string) (*domain.GeocodedLocation, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodedLocation), args.Error(1)
}

func defaultOptions() usecase.DiscoveryOptions {
	return usecase.DiscoveryOptions{
		DefaultRadiusMeters: 800,
		DefaultResultLimit:  3,
		PerKeywordLimit:     5,
		MaxConcurrentSearch: 4,
		SearchTimeout:       time.Second,
		MatrixTimeout:       time.Second,
		DedupDistanceMeters: 100,
		OverfetchMultiplier: 3,
	}
}

func newDiscoveryUC(geocoder *MockGeocoderRepository, places *MockPlaceRepository, distances *MockDistanceRepository) *usecase.DiscoveryUseCase {
	return usecase.NewDiscoveryUseCase(
		geocoder,
		places,
		distances,
		domain.DefaultCatalog(),
		zap.NewNop(),
		defaultOptions(),
	)
}

func TestDiscoveryUseCase_Discover(t *testing.T) {
	ctx := context.Background()
	origin := domain.Coordinate{Lat: 35.6909, Lon: 139.7002}

	t.Run("full pipeline with coordinates", func(t *testing.T) {
		geocoder := &MockGeocoderRepository{}
		places := &MockPlaceRepository{}
		distances := &MockDistanceRepository{}

		places.On("NearbySearch", mock.Anything, origin, 800, domain.CategoryConvenienceStore, mock.Anything).
			Return([]domain.RawCandidate{}, nil)
		places.On("NearbySearch", mock.Anything, origin, 800, domain.CategoryConvenienceStore, "Lawson").
			Return([]domain.RawCandidate{
				candidate("p1", "ローソン新宿西口店", "Lawson", 35.6912, 139.7002),
			}, nil).Maybe()
		distances.On("TravelMatrix", mock.Anything, origin, mock.Anything, domain.TravelModeWalking).
			Return([]domain.RouteOutcome{outcome(310, 260)}, nil).Maybe()

		uc := newDiscoveryUC(geocoder, places, distances)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Latitude:  ptrFloat64(origin.Lat),
			Longitude: ptrFloat64(origin.Lon),
			Category:  "convenience_store",
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Equal(t, origin, resp.Origin)
		assert.Equal(t, domain.TravelModeWalking, resp.TravelMode)
		assert.LessOrEqual(t, len(resp.Facilities), 3)
		geocoder.AssertNotCalled(t, "Geocode")
	})

	t.Run("negative result limit falls back to default", func(t *testing.T) {
		// Задания из стрима не проходят HTTP-валидатор, поэтому
		// отрицательный лимит не должен ронять конвейер
		geocoder := &MockGeocoderRepository{}
		places := &MockPlaceRepository{}
		distances := &MockDistanceRepository{}

		places.On("NearbySearch", mock.Anything, origin, 800, domain.CategoryConvenienceStore, mock.Anything).
			Return([]domain.RawCandidate{
				candidate("p1", "ローソン新宿西口店", "Lawson", 35.6912, 139.7002),
			}, nil)
		distances.On("TravelMatrix", mock.Anything, origin, mock.Anything, domain.TravelModeWalking).
			Return([]domain.RouteOutcome{outcome(310, 260)}, nil)

		uc := newDiscoveryUC(geocoder, places, distances)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Latitude:    ptrFloat64(origin.Lat),
			Longitude:   ptrFloat64(origin.Lon),
			Category:    "convenience_store",
			ResultLimit: -1,
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.LessOrEqual(t, len(resp.Facilities), 3)
	})

	t.Run("oversized result limit is capped", func(t *testing.T) {
		geocoder := &MockGeocoderRepository{}
		places := &MockPlaceRepository{}
		distances := &MockDistanceRepository{}

		// 12 уникальных кандидатов, разнесённых дальше порога дедупликации
		raw := make([]domain.RawCandidate, 0, 12)
		for i := 0; i < 12; i++ {
			raw = append(raw, candidate(
				"p"+string(rune('a'+i)),
				"Lawson Store",
				"Lawson",
				35.6912+float64(i)*0.002,
				139.7002,
			))
		}
		places.On("NearbySearch", mock.Anything, origin, 800, domain.CategoryConvenienceStore, mock.Anything).
			Return(raw, nil)

		outcomes := make([]domain.RouteOutcome, 10)
		for i := range outcomes {
			outcomes[i] = outcome(300+float64(i)*200, 200+float64(i)*150)
		}
		distances.On("TravelMatrix", mock.Anything, origin, mock.MatchedBy(func(dests []domain.Coordinate) bool {
			return len(dests) == 10
		}), domain.TravelModeWalking).
			Return(outcomes, nil)

		opts := defaultOptions()
		opts.PerKeywordLimit = 20
		opts.OverfetchMultiplier = 1
		uc := usecase.NewDiscoveryUseCase(
			geocoder, places, distances,
			domain.DefaultCatalog(), zap.NewNop(), opts,
		)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Latitude:    ptrFloat64(origin.Lat),
			Longitude:   ptrFloat64(origin.Lon),
			Category:    "convenience_store",
			ResultLimit: 99,
		})

		assert.NoError(t, err)
		assert.Len(t, resp.Facilities, 10)
		distances.AssertExpectations(t)
	})

	t.Run("address is geocoded before search", func(t *testing.T) {
		geocoder := &MockGeocoderRepository{}
		places := &MockPlaceRepository{}
		distances := &MockDistanceRepository{}

		geocoder.On("Geocode", mock.Anything, "Shinjuku, Tokyo").
			Return(&domain.GeocodedLocation{
				Location:  origin,
				PlaceName: "Shinjuku, Tokyo, Japan",
			}, nil)
		places.On("NearbySearch", mock.Anything, origin, 800, domain.CategoryConvenienceStore, mock.Anything).
			Return([]domain.RawCandidate{}, nil)

		uc := newDiscoveryUC(geocoder, places, distances)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Address:  "Shinjuku, Tokyo",
			Category: "convenience_store",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Shinjuku, Tokyo, Japan", resp.PlaceName)
		assert.Equal(t, origin, resp.Origin)
		geocoder.AssertExpectations(t)
	})

	t.Run("geocoding failure is fatal", func(t *testing.T) {
		geocoder := &MockGeocoderRepository{}
		geocoder.On("Geocode", mock.Anything, "nowhere at all").
			Return(nil, errors.New("no results"))

		uc := newDiscoveryUC(geocoder, &MockPlaceRepository{}, &MockDistanceRepository{})

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Address:  "nowhere at all",
			Category: "convenience_store",
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrLocationUnresolved)
	})

	t.Run("unknown category is empty success", func(t *testing.T) {
		places := &MockPlaceRepository{}

		uc := newDiscoveryUC(&MockGeocoderRepository{}, places, &MockDistanceRepository{})

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Latitude:  ptrFloat64(origin.Lat),
			Longitude: ptrFloat64(origin.Lon),
			Category:  "laundromat",
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp.Facilities)
		places.AssertNotCalled(t, "NearbySearch")
	})

	t.Run("missing address and coordinates is invalid", func(t *testing.T) {
		uc := newDiscoveryUC(&MockGeocoderRepository{}, &MockPlaceRepository{}, &MockDistanceRepository{})

		_, err := uc.Discover(ctx, dto.DiscoverRequest{Category: "convenience_store"})

		var appErr *apperrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrInvalidRequest.Code, appErr.Code)
	})

	t.Run("invalid travel mode is rejected", func(t *testing.T) {
		uc := newDiscoveryUC(&MockGeocoderRepository{}, &MockPlaceRepository{}, &MockDistanceRepository{})

		_, err := uc.Discover(ctx, dto.DiscoverRequest{
			Latitude:   ptrFloat64(origin.Lat),
			Longitude:  ptrFloat64(origin.Lon),
			Category:   "convenience_store",
			TravelMode: "teleport",
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidTravelMode)
	})

	t.Run("out of range coordinates are rejected", func(t *testing.T) {
		uc := newDiscoveryUC(&MockGeocoderRepository{}, &MockPlaceRepository{}, &MockDistanceRepository{})

		_, err := uc.Discover(ctx, dto.DiscoverRequest{
			Latitude:  ptrFloat64(95.0),
			Longitude: ptrFloat64(139.7),
			Category:  "convenience_store",
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	})

	t.Run("cancellation surfaces as dedicated error", func(t *testing.T) {
		places := &MockPlaceRepository{}
		places.On("NearbySearch", mock.Anything, origin, 800, domain.CategoryConvenienceStore, mock.Anything).
			Return([]domain.RawCandidate{}, nil)

		uc := newDiscoveryUC(&MockGeocoderRepository{}, places, &MockDistanceRepository{})

		cancelledCtx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := uc.Discover(cancelledCtx, dto.DiscoverRequest{
			Latitude:  ptrFloat64(origin.Lat),
			Longitude: ptrFloat64(origin.Lon),
			Category:  "convenience_store",
		})

		assert.ErrorIs(t, err, apperrors.ErrDiscoveryCancelled)
	})

	t.Run("degraded distances still succeed with estimates", func(t *testing.T) {
		places := &MockPlaceRepository{}
		places.On("NearbySearch", mock.Anything, origin, 800, domain.CategoryConvenienceStore, "Lawson").
			Return([]domain.RawCandidate{
				candidate("p1", "Lawson Shinjuku", "Lawson", 35.6912, 139.7002),
			}, nil)
		places.On("NearbySearch", mock.Anything, origin, 800, domain.CategoryConvenienceStore, mock.Anything).
			Return([]domain.RawCandidate{}, nil)

		distances := &MockDistanceRepository{}
		distances.On("TravelMatrix", mock.Anything, origin, mock.Anything, domain.TravelModeWalking).
			Return(nil, errors.New("matrix unavailable"))

		uc := newDiscoveryUC(&MockGeocoderRepository{}, places, distances)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Latitude:  ptrFloat64(origin.Lat),
			Longitude: ptrFloat64(origin.Lon),
			Category:  "convenience_store",
		})

		assert.NoError(t, err)
		assert.Len(t, resp.Facilities, 1)
		assert.True(t, resp.Facilities[0].Estimated)
		assert.Equal(t, 1, resp.EstimatedCount)
	})

	t.Run("brand filter narrows the output", func(t *testing.T) {
		places := &MockPlaceRepository{}
		places.On("NearbySearch", mock.Anything, origin, 800, domain.CategoryConvenienceStore, mock.Anything).
			Return([]domain.RawCandidate{
				candidate("l1", "ローソン新宿店", "Lawson", 35.6912, 139.7002),
				candidate("s1", "セブンイレブン新宿店", "Lawson", 35.6930, 139.7002),
			}, nil)

		distances := &MockDistanceRepository{}
		distances.On("TravelMatrix", mock.Anything, origin, mock.Anything, domain.TravelModeWalking).
			Return(nil, errors.New("unavailable"))

		uc := newDiscoveryUC(&MockGeocoderRepository{}, places, distances)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Latitude:  ptrFloat64(origin.Lat),
			Longitude: ptrFloat64(origin.Lon),
			Category:  "convenience_store",
			Brand:     "lawson",
		})

		assert.NoError(t, err)
		assert.Len(t, resp.Facilities, 1)
		assert.Equal(t, "lawson", resp.Facilities[0].Brand)
	})
}
