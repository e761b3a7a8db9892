package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/facility-discovery/internal/config"
	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/domain/repository"
)

// Лимит Mapbox Matrix API - 25 координат на запрос (источник + назначения)
const maxMatrixDestinations = 24

// Профили маршрутизации по способу передвижения. Матрица не поддерживает
// общественный транспорт, transit использует автомобильный профиль.
var matrixProfiles = map[domain.TravelMode]string{
	domain.TravelModeWalking: "mapbox/walking",
	domain.TravelModeDriving: "mapbox/driving",
	domain.TravelModeTransit: "mapbox/driving",
}

type matrixClient struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

// NewMatrixClient создает новый клиент Mapbox Matrix API
func NewMatrixClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.DistanceRepository {
	return &matrixClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

type matrixResponse struct {
	Code string `json:"code"`
	// null в ячейке означает, что маршрут до точки не построен
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// TravelMatrix возвращает расстояние и время до каждого пункта назначения.
// Назначения сверх лимита Mapbox разбиваются на последовательные чанки.
func (c *matrixClient) TravelMatrix(
	ctx context.Context,
	origin domain.Coordinate,
	destinations []domain.Coordinate,
	mode domain.TravelMode,
) ([]domain.RouteOutcome, error) {
	if len(destinations) == 0 {
		return nil, nil
	}

	profile, ok := matrixProfiles[mode]
	if !ok {
		return nil, fmt.Errorf("unsupported travel mode: %s", mode)
	}

	outcomes := make([]domain.RouteOutcome, 0, len(destinations))
	for start := 0; start < len(destinations); start += maxMatrixDestinations {
		end := start + maxMatrixDestinations
		if end > len(destinations) {
			end = len(destinations)
		}

		chunk, err := c.fetchChunk(ctx, profile, origin, destinations[start:end])
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, chunk...)
	}

	return outcomes, nil
}

// fetchChunk выполняет один запрос матрицы: источник + до 24 назначений
func (c *matrixClient) fetchChunk(
	ctx context.Context,
	profile string,
	origin domain.Coordinate,
	destinations []domain.Coordinate,
) ([]domain.RouteOutcome, error) {
	// Формируем список координат: сначала источник, потом назначения
	coordinates := make([]string, 0, 1+len(destinations))
	coordinates = append(coordinates, fmt.Sprintf("%f,%f", origin.Lon, origin.Lat))
	for _, d := range destinations {
		coordinates = append(coordinates, fmt.Sprintf("%f,%f", d.Lon, d.Lat))
	}

	destinationsIndices := make([]string, len(destinations))
	for i := range destinations {
		destinationsIndices[i] = fmt.Sprintf("%d", i+1)
	}

	reqURL := fmt.Sprintf("%s/directions-matrix/v1/%s/%s?sources=0&destinations=%s&annotations=distance,duration&access_token=%s",
		c.baseURL,
		profile,
		strings.Join(coordinates, ";"),
		strings.Join(destinationsIndices, ";"),
		c.accessToken,
	)

	c.logger.Debug("Calling Mapbox Matrix API",
		zap.String("profile", profile),
		zap.Int("destinations_count", len(destinations)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var matrixResp matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrixResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if matrixResp.Code != "Ok" {
		c.logger.Error("Mapbox API returned non-OK code",
			zap.String("code", matrixResp.Code))
		return nil, fmt.Errorf("mapbox API returned code: %s", matrixResp.Code)
	}

	outcomes := make([]domain.RouteOutcome, len(destinations))
	for i := range destinations {
		var outcome domain.RouteOutcome
		if len(matrixResp.Distances) > 0 && i < len(matrixResp.Distances[0]) {
			outcome.DistanceMeters = matrixResp.Distances[0][i]
		}
		if len(matrixResp.Durations) > 0 && i < len(matrixResp.Durations[0]) {
			outcome.DurationSeconds = matrixResp.Durations[0][i]
		}
		outcomes[i] = outcome
	}

	return outcomes, nil
}
