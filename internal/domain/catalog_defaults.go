package domain

// Встроенный справочник для японских городов. Используется, когда внешняя
// конфигурация (PostgreSQL) не задана. Алиасы намеренно дублируются в латинице
// и родной письменности - nearby-поиск работает с обоими вариантами.

const (
	CategoryConvenienceStore CategoryID = "convenience_store"
	CategoryDrugstore        CategoryID = "drugstore"
	CategorySupermarket      CategoryID = "supermarket"
)

// DefaultBrands возвращает встроенный список брендов
func DefaultBrands() []Brand {
	return []Brand{
		{
			ID:       "seven_eleven",
			Category: CategoryConvenienceStore,
			Token:    "7-eleven",
			Aliases:  []string{"7-Eleven", "7-11", "Seven Eleven", "セブンイレブン", "セブン-イレブン"},
		},
		{
			ID:       "familymart",
			Category: CategoryConvenienceStore,
			Token:    "familymart",
			Aliases:  []string{"FamilyMart", "Family Mart", "ファミリーマート", "ファミマ"},
		},
		{
			ID:       "lawson",
			Category: CategoryConvenienceStore,
			Token:    "lawson",
			Aliases:  []string{"Lawson", "ローソン"},
		},
		{
			ID:       "ministop",
			Category: CategoryConvenienceStore,
			Token:    "ministop",
			Aliases:  []string{"Ministop", "ミニストップ"},
		},
		{
			ID:       "daily_yamazaki",
			Category: CategoryConvenienceStore,
			Token:    "daily yamazaki",
			Aliases:  []string{"Daily Yamazaki", "デイリーヤマザキ"},
		},
		{
			ID:       "newdays",
			Category: CategoryConvenienceStore,
			Token:    "newdays",
			Aliases:  []string{"NewDays", "ニューデイズ"},
		},
		{
			ID:       "matsumoto_kiyoshi",
			Category: CategoryDrugstore,
			Token:    "matsumoto kiyoshi",
			Aliases:  []string{"Matsumoto Kiyoshi", "マツモトキヨシ", "マツキヨ"},
		},
		{
			ID:       "welcia",
			Category: CategoryDrugstore,
			Token:    "welcia",
			Aliases:  []string{"Welcia", "ウエルシア"},
		},
		{
			ID:       "tsuruha",
			Category: CategoryDrugstore,
			Token:    "tsuruha",
			Aliases:  []string{"Tsuruha", "ツルハドラッグ"},
		},
		{
			ID:       "sundrug",
			Category: CategoryDrugstore,
			Token:    "sundrug",
			Aliases:  []string{"Sundrug", "サンドラッグ"},
		},
		{
			ID:       "aeon",
			Category: CategorySupermarket,
			Token:    "aeon",
			Aliases:  []string{"AEON", "イオン"},
		},
		{
			ID:       "ito_yokado",
			Category: CategorySupermarket,
			Token:    "ito-yokado",
			Aliases:  []string{"Ito-Yokado", "イトーヨーカドー"},
		},
		{
			ID:       "seiyu",
			Category: CategorySupermarket,
			Token:    "seiyu",
			Aliases:  []string{"Seiyu", "西友"},
		},
		{
			ID:       "life",
			Category: CategorySupermarket,
			Token:    "life supermarket",
			Aliases:  []string{"ライフ", "Life Supermarket"},
		},
	}
}

// DefaultCategoryRules возвращает встроенные правила фильтрации категорий
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{
			ID:              CategoryConvenienceStore,
			GenericKeywords: []string{"convenience store", "コンビニ"},
			Include:         []string{"convenience", "conbini", "コンビニ"},
			// Аптеки и клиники регулярно всплывают в выдаче по запросу "store"
			Exclude: []string{"pharmacy", "drug", "薬局", "ドラッグ", "clinic", "クリニック", "hospital", "病院", "dental", "歯科"},
		},
		{
			ID:              CategoryDrugstore,
			GenericKeywords: []string{"drugstore", "ドラッグストア"},
			Include:         []string{"drug", "pharmacy", "ドラッグ", "薬局", "くすり"},
			Exclude:         []string{"hospital", "病院", "clinic", "クリニック", "dental", "歯科"},
		},
		{
			ID:              CategorySupermarket,
			GenericKeywords: []string{"supermarket", "スーパーマーケット"},
			Include:         []string{"supermarket", "market", "スーパー"},
			Exclude:         []string{"convenience", "コンビニ", "pharmacy", "薬局"},
		},
	}
}

// DefaultCatalog строит справочник из встроенных данных
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultBrands(), DefaultCategoryRules())
}
