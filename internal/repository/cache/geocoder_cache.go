package cache

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/domain/repository"
)

// cachedGeocoder - read-through кеш поверх геокодера. Адрес жилья между
// запросами путешественника не меняется, повторное геокодирование не нужно.
// Кеширование живёт здесь, в адаптере, а не в конвейере поиска.
type cachedGeocoder struct {
	geocoder  repository.GeocoderRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	ttl       time.Duration
}

// NewCachedGeocoder оборачивает геокодер read-through кешем
func NewCachedGeocoder(
	geocoder repository.GeocoderRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	ttl time.Duration,
) repository.GeocoderRepository {
	return &cachedGeocoder{
		geocoder:  geocoder,
		cacheRepo: cacheRepo,
		logger:    logger,
		ttl:       ttl,
	}
}

func (g *cachedGeocoder) Geocode(ctx context.Context, address string) (*domain.GeocodedLocation, error) {
	key := geocodeCacheKey(address)

	if data, err := g.cacheRepo.Get(ctx, key); err != nil {
		// Сбой кеша не мешает геокодированию
		g.logger.Warn("Geocode cache read failed", zap.Error(err))
	} else if data != nil {
		var cached domain.GeocodedLocation
		if err := json.Unmarshal(data, &cached); err != nil {
			g.logger.Warn("Failed to unmarshal cached geocode entry", zap.Error(err))
		} else {
			g.logger.Debug("Geocode cache hit", zap.String("address", address))
			return &cached, nil
		}
	}

	located, err := g.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(located); err == nil {
		if err := g.cacheRepo.Set(ctx, key, data, g.ttl); err != nil {
			g.logger.Warn("Geocode cache write failed", zap.Error(err))
		}
	}

	return located, nil
}

func geocodeCacheKey(address string) string {
	normalized := strings.ToLower(strings.TrimSpace(address))
	return fmt.Sprintf("geocode:%x", sha1.Sum([]byte(normalized)))
}
