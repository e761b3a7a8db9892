package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/facility-discovery/internal/config"
	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/domain/repository"
)

type geocoder struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

// NewGeocoder создает новый клиент прямого геокодирования Mapbox
func NewGeocoder(cfg *config.MapboxConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &geocoder{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

type geocodeResponse struct {
	Features []struct {
		Center    []float64 `json:"center"`
		PlaceName string    `json:"place_name"`
	} `json:"features"`
}

// Geocode преобразует адрес жилья в координату и каноническое имя места
func (g *geocoder) Geocode(ctx context.Context, address string) (*domain.GeocodedLocation, error) {
	if address == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	reqURL := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&limit=1",
		g.baseURL,
		url.PathEscape(address),
		g.accessToken,
	)

	g.logger.Debug("Calling Mapbox Geocoding API",
		zap.String("address", address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		g.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		g.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var geocodeResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geocodeResp); err != nil {
		g.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(geocodeResp.Features) == 0 {
		return nil, fmt.Errorf("no geocoding results for address: %s", address)
	}

	feature := geocodeResp.Features[0]
	if len(feature.Center) != 2 {
		return nil, fmt.Errorf("invalid coordinate format in geocoding response")
	}

	return &domain.GeocodedLocation{
		// Mapbox возвращает [lon, lat]
		Location: domain.Coordinate{
			Lat: feature.Center[1],
			Lon: feature.Center[0],
		},
		PlaceName: feature.PlaceName,
	}, nil
}
