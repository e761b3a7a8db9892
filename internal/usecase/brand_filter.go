package usecase

import (
	"go.uber.org/zap"

	"github.com/facility-discovery/internal/domain"
)

// BrandFilter ограничивает пул кандидатов одним запрошенным брендом
type BrandFilter struct {
	catalog *domain.Catalog
	logger  *zap.Logger
}

// NewBrandFilter - создание нового BrandFilter
func NewBrandFilter(catalog *domain.Catalog, logger *zap.Logger) *BrandFilter {
	return &BrandFilter{
		catalog: catalog,
		logger:  logger,
	}
}

// Filter возвращает кандидатов, чей брендовый токен эквивалентен каноническому
// токену запрошенного бренда. Без бренда - identity. Неизвестный бренд даёт
// пустой результат, а не ошибку.
func (f *BrandFilter) Filter(
	candidates []domain.NormalizedCandidate,
	brand *domain.BrandID,
) []domain.NormalizedCandidate {
	if brand == nil {
		return candidates
	}

	b, ok := f.catalog.Brand(*brand)
	if !ok {
		f.logger.Warn("Unknown brand requested", zap.String("brand", string(*brand)))
		return nil
	}

	kept := make([]domain.NormalizedCandidate, 0, len(candidates))
	for _, c := range candidates {
		if f.catalog.SameBrand(c.BrandToken, b.Token) {
			kept = append(kept, c)
		}
	}
	return kept
}
