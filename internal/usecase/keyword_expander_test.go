package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/usecase"
)

func TestKeywordExpander_Expand(t *testing.T) {
	expander := usecase.NewKeywordExpander(domain.DefaultCatalog())

	t.Run("specific brand returns its aliases", func(t *testing.T) {
		brand := domain.BrandID("seven_eleven")
		keywords := expander.Expand(domain.CategoryConvenienceStore, &brand)

		assert.Equal(t, []string{"7-Eleven", "7-11", "Seven Eleven", "セブンイレブン", "セブン-イレブン"}, keywords)
	})

	t.Run("all brands includes every brand alias and generic queries", func(t *testing.T) {
		keywords := expander.Expand(domain.CategoryConvenienceStore, nil)

		assert.NotEmpty(t, keywords)
		assert.Contains(t, keywords, "Lawson")
		assert.Contains(t, keywords, "ローソン")
		assert.Contains(t, keywords, "FamilyMart")
		assert.Contains(t, keywords, "7-Eleven")
		// Общие запросы категории идут после брендовых алиасов
		assert.Contains(t, keywords, "コンビニ")
	})

	t.Run("deterministic order", func(t *testing.T) {
		first := expander.Expand(domain.CategoryConvenienceStore, nil)
		second := expander.Expand(domain.CategoryConvenienceStore, nil)

		assert.Equal(t, first, second)
	})

	t.Run("no duplicate keywords", func(t *testing.T) {
		keywords := expander.Expand(domain.CategoryDrugstore, nil)

		seen := make(map[string]int)
		for _, kw := range keywords {
			seen[kw]++
		}
		for kw, n := range seen {
			assert.Equal(t, 1, n, "keyword %q appears %d times", kw, n)
		}
	})

	t.Run("unknown category yields empty set", func(t *testing.T) {
		keywords := expander.Expand("laundromat", nil)

		assert.Empty(t, keywords)
	})

	t.Run("brand from another category yields empty set", func(t *testing.T) {
		brand := domain.BrandID("welcia")
		keywords := expander.Expand(domain.CategoryConvenienceStore, &brand)

		assert.Empty(t, keywords)
	})

	t.Run("unknown brand yields empty set", func(t *testing.T) {
		brand := domain.BrandID("circle_k")
		keywords := expander.Expand(domain.CategoryConvenienceStore, &brand)

		assert.Empty(t, keywords)
	})
}
