package usecase

import (
	"go.uber.org/zap"

	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/pkg/utils"
)

// Deduplicator схлопывает точные и почти-точные дубликаты кандидатов.
// Одно и то же место приходит из разных ключевых слов, а внутри вокзалов
// один бренд часто числится отдельной записью на каждый выход.
type Deduplicator struct {
	catalog           *domain.Catalog
	logger            *zap.Logger
	distanceThreshold float64
}

// NewDeduplicator - создание нового Deduplicator
func NewDeduplicator(catalog *domain.Catalog, logger *zap.Logger, distanceThreshold float64) *Deduplicator {
	return &Deduplicator{
		catalog:           catalog,
		logger:            logger,
		distanceThreshold: distanceThreshold,
	}
}

// Normalize аннотирует кандидатов брендовым токеном.
// Токен вычисляется заново на каждый запрос и не кешируется.
func (d *Deduplicator) Normalize(candidates []domain.RawCandidate) []domain.NormalizedCandidate {
	normalized := make([]domain.NormalizedCandidate, 0, len(candidates))
	for _, c := range candidates {
		normalized = append(normalized, domain.NormalizedCandidate{
			RawCandidate: c,
			BrandToken:   d.catalog.BrandToken(c.Name),
		})
	}
	return normalized
}

// Dedupe удаляет дубликаты за два прохода: точный по ExternalID и нечёткий
// по паре (эквивалентный брендовый токен, расстояние ниже порога).
// Выживает первое вхождение в порядке входного списка, поэтому для
// фиксированного входа результат детерминирован.
func (d *Deduplicator) Dedupe(candidates []domain.NormalizedCandidate) []domain.NormalizedCandidate {
	seenIDs := make(map[string]struct{}, len(candidates))
	retained := make([]domain.NormalizedCandidate, 0, len(candidates))

	for _, c := range candidates {
		if c.ExternalID != "" {
			if _, ok := seenIDs[c.ExternalID]; ok {
				continue
			}
		}

		// Нечёткий проход: O(n^2) допустимо, пул ограничен несколькими
		// десятками кандидатов
		duplicate := false
		for _, kept := range retained {
			if !d.catalog.SameBrand(c.BrandToken, kept.BrandToken) {
				continue
			}
			if utils.HaversineMeters(c.Location, kept.Location) < d.distanceThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		if c.ExternalID != "" {
			seenIDs[c.ExternalID] = struct{}{}
		}
		retained = append(retained, c)
	}

	if dropped := len(candidates) - len(retained); dropped > 0 {
		d.logger.Debug("Deduplication collapsed candidates",
			zap.Int("input", len(candidates)),
			zap.Int("dropped", dropped))
	}

	return retained
}
