package repository

import (
	"context"

	"github.com/facility-discovery/internal/domain"
)

// CatalogRepository определяет методы загрузки справочника брендов и категорий
type CatalogRepository interface {
	// LoadBrands возвращает все бренды с алиасами
	LoadBrands(ctx context.Context) ([]domain.Brand, error)

	// LoadCategoryRules возвращает правила фильтрации категорий
	LoadCategoryRules(ctx context.Context) ([]domain.CategoryRule, error)
}
