package usecase

import (
	"strings"

	"go.uber.org/zap"

	"github.com/facility-discovery/internal/domain"
)

// CategoryFilter отсекает кандидатов, не относящихся к запрошенной категории.
// Провайдер по запросу "convenience store" регулярно подмешивает аптеки и
// клиники - их убирает exclude-набор категории.
type CategoryFilter struct {
	catalog *domain.Catalog
	logger  *zap.Logger
}

// NewCategoryFilter - создание нового CategoryFilter
func NewCategoryFilter(catalog *domain.Catalog, logger *zap.Logger) *CategoryFilter {
	return &CategoryFilter{
		catalog: catalog,
		logger:  logger,
	}
}

// Filter оставляет кандидата, если имя или адрес содержит хотя бы один
// include-термин (включая алиасы брендов категории) и ни одного exclude-термина.
// Категория без настроенного правила пропускает всех кандидатов без изменений.
func (f *CategoryFilter) Filter(
	candidates []domain.NormalizedCandidate,
	category domain.CategoryID,
) []domain.NormalizedCandidate {
	rule, ok := f.catalog.Rule(category)
	if !ok {
		return candidates
	}

	include := f.includeTerms(rule, category)
	exclude := normalizeTerms(rule.Exclude)

	kept := make([]domain.NormalizedCandidate, 0, len(candidates))
	for _, c := range candidates {
		haystack := candidateHaystack(c)

		if containsAny(haystack, exclude) {
			f.logger.Debug("Candidate excluded by category filter",
				zap.String("name", c.Name),
				zap.String("category", string(category)))
			continue
		}
		if !containsAny(haystack, include) {
			continue
		}
		kept = append(kept, c)
	}

	return kept
}

// includeTerms объединяет include-термины правила с алиасами брендов категории:
// имя "Lawson" само по себе не содержит слова "convenience"
func (f *CategoryFilter) includeTerms(rule domain.CategoryRule, category domain.CategoryID) []string {
	terms := normalizeTerms(rule.Include)
	for _, b := range f.catalog.CategoryBrands(category) {
		terms = append(terms, compactTerm(b.Token))
		for _, alias := range b.Aliases {
			terms = append(terms, compactTerm(alias))
		}
	}
	return terms
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := compactTerm(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// compactTerm нормализует термин и убирает пробелы, чтобы
// "Family Mart" совпадал с "familymart"
func compactTerm(s string) string {
	return strings.ReplaceAll(domain.Normalize(s), " ", "")
}

// candidateHaystack - строка для поиска терминов: нормализованные имя и адрес
func candidateHaystack(c domain.NormalizedCandidate) string {
	return compactTerm(c.Name) + " " + compactTerm(c.Address)
}

func containsAny(haystack string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}
