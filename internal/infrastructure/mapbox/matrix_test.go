package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/facility-discovery/internal/config"
	"github.com/facility-discovery/internal/domain"
)

func ptrFloat64(v float64) *float64 {
	return &v
}

func newTestMatrixClient(serverURL string) *matrixClient {
	cfg := &config.MapboxConfig{
		AccessToken:    "test_token",
		BaseURL:        serverURL,
		RequestTimeout: 5,
	}
	return NewMatrixClient(cfg, zap.NewNop()).(*matrixClient)
}

func TestMatrixClient_TravelMatrix(t *testing.T) {
	origin := domain.Coordinate{Lat: 35.6909, Lon: 139.7002}
	ctx := context.Background()

	t.Run("successful matrix request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/directions-matrix/v1/mapbox/walking/")
			assert.Equal(t, "0", r.URL.Query().Get("sources"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"code":      "Ok",
				"distances": [][]*float64{{ptrFloat64(320), ptrFloat64(540)}},
				"durations": [][]*float64{{ptrFloat64(260), ptrFloat64(410)}},
			})
		}))
		defer server.Close()

		destinations := []domain.Coordinate{
			{Lat: 35.6912, Lon: 139.7005},
			{Lat: 35.6920, Lon: 139.7010},
		}

		got, err := newTestMatrixClient(server.URL).TravelMatrix(ctx, origin, destinations, domain.TravelModeWalking)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 320.0, *got[0].DistanceMeters)
		assert.Equal(t, 260.0, *got[0].DurationSeconds)
		assert.Equal(t, 540.0, *got[1].DistanceMeters)
		assert.True(t, got[0].Reachable())
	})

	t.Run("null cells become unreachable outcomes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"code": "Ok",
				"distances": [[310.0, null]],
				"durations": [[250.0, null]]
			}`))
		}))
		defer server.Close()

		destinations := []domain.Coordinate{
			{Lat: 35.6912, Lon: 139.7005},
			{Lat: 35.6920, Lon: 139.7010},
		}

		got, err := newTestMatrixClient(server.URL).TravelMatrix(ctx, origin, destinations, domain.TravelModeWalking)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].Reachable())
		assert.False(t, got[1].Reachable())
	})

	t.Run("transit uses the driving profile", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"code": "Ok", "distances": [[100.0]], "durations": [[30.0]]}`))
		}))
		defer server.Close()

		_, err := newTestMatrixClient(server.URL).TravelMatrix(ctx, origin,
			[]domain.Coordinate{{Lat: 35.6912, Lon: 139.7005}}, domain.TravelModeTransit)

		require.NoError(t, err)
		assert.Contains(t, gotPath, "mapbox/driving")
	})

	t.Run("destinations beyond the limit are chunked", func(t *testing.T) {
		var requests int
		var sizes []int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			// Координаты в пути: источник + назначения
			parts := strings.Split(r.URL.Path, "/")
			coords := strings.Split(parts[len(parts)-1], ";")
			n := len(coords) - 1
			sizes = append(sizes, n)

			distances := make([]*float64, n)
			durations := make([]*float64, n)
			for i := 0; i < n; i++ {
				distances[i] = ptrFloat64(float64(100 + i))
				durations[i] = ptrFloat64(float64(60 + i))
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"code":      "Ok",
				"distances": [][]*float64{distances},
				"durations": [][]*float64{durations},
			})
		}))
		defer server.Close()

		destinations := make([]domain.Coordinate, 30)
		for i := range destinations {
			destinations[i] = domain.Coordinate{Lat: 35.69 + float64(i)*0.001, Lon: 139.70}
		}

		got, err := newTestMatrixClient(server.URL).TravelMatrix(ctx, origin, destinations, domain.TravelModeWalking)

		require.NoError(t, err)
		assert.Len(t, got, 30)
		assert.Equal(t, 2, requests)
		assert.Equal(t, []int{24, 6}, sizes)
	})

	t.Run("non-ok code is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"code": "InvalidInput"}`)
		}))
		defer server.Close()

		got, err := newTestMatrixClient(server.URL).TravelMatrix(ctx, origin,
			[]domain.Coordinate{{Lat: 35.6912, Lon: 139.7005}}, domain.TravelModeWalking)

		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("no destinations means no requests", func(t *testing.T) {
		got, err := newTestMatrixClient("http://unused").TravelMatrix(ctx, origin, nil, domain.TravelModeWalking)

		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
