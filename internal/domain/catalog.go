package domain

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Brand описывает коммерческий бренд и его алиасы в разных письменностях
type Brand struct {
	ID       BrandID
	Category CategoryID
	// Token - канонический брендовый токен (например "7-eleven")
	Token   string
	Aliases []string
}

// CategoryRule - ключевые слова категории для поиска и фильтрации.
// Include/Exclude применяются к имени и адресу кандидата без учёта регистра.
type CategoryRule struct {
	ID CategoryID
	// GenericKeywords - общие поисковые запросы категории ("convenience store")
	GenericKeywords []string
	Include         []string
	Exclude         []string
}

// Catalog - справочник брендов и категорий. Строится один раз при старте
// из данных конфигурации (БД или встроенные значения) и далее только читается.
type Catalog struct {
	brands       map[BrandID]Brand
	byCategory   map[CategoryID][]Brand
	rules        map[CategoryID]CategoryRule
	brandByToken map[string]BrandID

	// aliasIndex - нормализованные алиасы, отсортированные по убыванию длины,
	// чтобы более специфичный алиас выигрывал при поиске подстроки
	aliasIndex []aliasEntry
}

type aliasEntry struct {
	compact string
	brand   BrandID
	token   string
}

// NewCatalog строит справочник из списков брендов и правил категорий
func NewCatalog(brands []Brand, rules []CategoryRule) *Catalog {
	c := &Catalog{
		brands:       make(map[BrandID]Brand, len(brands)),
		byCategory:   make(map[CategoryID][]Brand),
		rules:        make(map[CategoryID]CategoryRule, len(rules)),
		brandByToken: make(map[string]BrandID, len(brands)),
	}

	for _, b := range brands {
		c.brands[b.ID] = b
		c.byCategory[b.Category] = append(c.byCategory[b.Category], b)
		c.brandByToken[b.Token] = b.ID

		for _, alias := range b.Aliases {
			compact := compactForm(Normalize(alias))
			if compact == "" {
				continue
			}
			c.aliasIndex = append(c.aliasIndex, aliasEntry{
				compact: compact,
				brand:   b.ID,
				token:   b.Token,
			})
		}
		// Канонический токен тоже участвует в поиске подстроки
		c.aliasIndex = append(c.aliasIndex, aliasEntry{
			compact: compactForm(b.Token),
			brand:   b.ID,
			token:   b.Token,
		})
	}

	for _, r := range rules {
		c.rules[r.ID] = r
	}

	// Детерминированный порядок: длинные алиасы раньше, при равной длине - лексикографически
	sort.Slice(c.aliasIndex, func(i, j int) bool {
		if len(c.aliasIndex[i].compact) != len(c.aliasIndex[j].compact) {
			return len(c.aliasIndex[i].compact) > len(c.aliasIndex[j].compact)
		}
		return c.aliasIndex[i].compact < c.aliasIndex[j].compact
	})

	for cat := range c.byCategory {
		brands := c.byCategory[cat]
		sort.Slice(brands, func(i, j int) bool { return brands[i].ID < brands[j].ID })
	}

	return c
}

// Normalize приводит строку к канонической форме: NFKC, сведение
// полноширинных символов, нижний регистр, схлопывание пробелов
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = width.Fold.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// compactForm убирает пробелы, чтобы "family mart" и "familymart" совпадали
func compactForm(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BrandToken вычисляет брендовый токен для сырого имени места.
// Если имя содержит известный алиас - возвращается канонический токен бренда,
// иначе нормализованная форма самого имени.
func (c *Catalog) BrandToken(name string) string {
	normalized := Normalize(name)
	compact := compactForm(normalized)

	for _, e := range c.aliasIndex {
		if strings.Contains(compact, e.compact) {
			return e.token
		}
	}

	return normalized
}

// SameBrand проверяет эквивалентность двух брендовых токенов
// (равенство либо известный вариант одного и того же бренда)
func (c *Catalog) SameBrand(a, b string) bool {
	if a == b {
		return true
	}
	brandA, okA := c.brandByToken[a]
	brandB, okB := c.brandByToken[b]
	return okA && okB && brandA == brandB
}

// Brand возвращает бренд по ID
func (c *Catalog) Brand(id BrandID) (Brand, bool) {
	b, ok := c.brands[id]
	return b, ok
}

// CategoryBrands возвращает бренды категории в детерминированном порядке
func (c *Catalog) CategoryBrands(cat CategoryID) []Brand {
	return c.byCategory[cat]
}

// Rule возвращает правило фильтрации категории
func (c *Catalog) Rule(cat CategoryID) (CategoryRule, bool) {
	r, ok := c.rules[cat]
	return r, ok
}

// KnownCategory сообщает, известна ли категория справочнику
func (c *Catalog) KnownCategory(cat CategoryID) bool {
	if _, ok := c.rules[cat]; ok {
		return true
	}
	_, ok := c.byCategory[cat]
	return ok
}
