package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/domain/repository"
)

type catalogRepository struct {
	db *DB
}

// NewCatalogRepository создает новый CatalogRepository.
// Справочник хранится в таблицах facility_brands и facility_category_rules
// и загружается один раз при старте сервиса.
func NewCatalogRepository(db *DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

type brandRow struct {
	ID       string         `db:"id"`
	Category string         `db:"category"`
	Token    string         `db:"token"`
	Aliases  pq.StringArray `db:"aliases"`
}

type categoryRuleRow struct {
	ID              string         `db:"id"`
	GenericKeywords pq.StringArray `db:"generic_keywords"`
	IncludeKeywords pq.StringArray `db:"include_keywords"`
	ExcludeKeywords pq.StringArray `db:"exclude_keywords"`
}

// LoadBrands возвращает все бренды с алиасами
func (r *catalogRepository) LoadBrands(ctx context.Context) ([]domain.Brand, error) {
	query := `
		SELECT id, category, token, aliases
		FROM facility_brands
		ORDER BY category, id`

	var rows []brandRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.db.logger.Error("Failed to load brands", zap.Error(err))
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}

	brands := make([]domain.Brand, 0, len(rows))
	for _, row := range rows {
		brands = append(brands, domain.Brand{
			ID:       domain.BrandID(row.ID),
			Category: domain.CategoryID(row.Category),
			Token:    row.Token,
			Aliases:  []string(row.Aliases),
		})
	}

	return brands, nil
}

// LoadCategoryRules возвращает правила фильтрации категорий
func (r *catalogRepository) LoadCategoryRules(ctx context.Context) ([]domain.CategoryRule, error) {
	query := `
		SELECT id, generic_keywords, include_keywords, exclude_keywords
		FROM facility_category_rules
		ORDER BY id`

	var rows []categoryRuleRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.db.logger.Error("Failed to load category rules", zap.Error(err))
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}

	rules := make([]domain.CategoryRule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, domain.CategoryRule{
			ID:              domain.CategoryID(row.ID),
			GenericKeywords: []string(row.GenericKeywords),
			Include:         []string(row.IncludeKeywords),
			Exclude:         []string(row.ExcludeKeywords),
		})
	}

	return rules, nil
}
