package places

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

// Типы мест провайдера по категориям. Сужают выдачу nearby-поиска,
// категории без соответствия ищутся только по ключевому слову.
var placeTypes = map[domain.CategoryID]string{
	domain.CategoryConvenienceStore: "convenience_store",
	domain.CategoryDrugstore:        "drugstore",
	domain.CategorySupermarket:      "supermarket",
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient создает новый клиент Google Places Nearby Search
func NewClient(cfg *config.PlacesConfig, logger *zap.Logger) repository.PlaceRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

type nearbySearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// NearbySearch возвращает кандидатов по одному ключевому слову в порядке
// релевантности провайдера
func (c *client) NearbySearch(
	ctx context.Context,
	origin domain.Coordinate,
	radiusMeters int,
	category domain.CategoryID,
	keyword string,
) ([]domain.RawCandidate, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", origin.Lat, origin.Lon))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("keyword", keyword)
	params.Set("key", c.apiKey)
	if placeType, ok := placeTypes[category]; ok {
		params.Set("type", placeType)
	}

	reqURL := fmt.Sprintf("%s/nearbysearch/json?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling Places Nearby Search API",
		zap.String("keyword", keyword),
		zap.Int("radius_meters", radiusMeters))

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
		c.logger.Error("Places API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("places API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var searchResp nearbySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	switch searchResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		c.logger.Error("Places API returned non-OK status",
			zap.String("status", searchResp.Status))
		return nil, fmt.Errorf("places API returned status: %s", searchResp.Status)
	}

	candidates := make([]domain.RawCandidate, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		candidates = append(candidates, domain.RawCandidate{
			ExternalID: r.PlaceID,
			Name:       r.Name,
			Address:    r.Vicinity,
			Location: domain.Coordinate{
				Lat: r.Geometry.Location.Lat,
				Lon: r.Geometry.Location.Lng,
			},
			SourceKeyword: keyword,
		})
	}

	return candidates, nil
}
