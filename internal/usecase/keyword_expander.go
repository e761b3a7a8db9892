package usecase

import (
	"github.com/facility-discovery/internal/domain"
)

// KeywordExpander разворачивает категорию и необязательный бренд в набор
// поисковых запросов. Чистая функция без I/O.
type KeywordExpander struct {
	catalog *domain.Catalog
}

// NewKeywordExpander - создание нового KeywordExpander
func NewKeywordExpander(catalog *domain.Catalog) *KeywordExpander {
	return &KeywordExpander{catalog: catalog}
}

// Expand возвращает ключевые слова в детерминированном порядке.
// Для конкретного бренда - его алиасы; для "всех брендов" - объединение
// алиасов всех брендов категории плюс общие запросы категории.
// Неизвестная категория даёт пустой набор, это не ошибка.
func (e *KeywordExpander) Expand(category domain.CategoryID, brand *domain.BrandID) []string {
	if !e.catalog.KnownCategory(category) {
		return nil
	}

	var keywords []string
	seen := make(map[string]struct{})

	add := func(kw string) {
		if kw == "" {
			return
		}
		if _, ok := seen[kw]; ok {
			return
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	if brand != nil {
		b, ok := e.catalog.Brand(*brand)
		if !ok || b.Category != category {
			return nil
		}
		for _, alias := range b.Aliases {
			add(alias)
		}
		return keywords
	}

	for _, b := range e.catalog.CategoryBrands(category) {
		for _, alias := range b.Aliases {
			add(alias)
		}
	}
	if rule, ok := e.catalog.Rule(category); ok {
		for _, kw := range rule.GenericKeywords {
			add(kw)
		}
	}

	return keywords
}
