package domain

// CategoryID - идентификатор категории объектов (convenience_store, drugstore, ...)
type CategoryID string

// BrandID - идентификатор бренда внутри категории
type BrandID string

// FacilitySearchRequest описывает один запрос на поиск объектов рядом с жильём.
// Создаётся один раз на запрос и не мутируется.
type FacilitySearchRequest struct {
	Origin       Coordinate
	Category     CategoryID
	Brand        *BrandID
	RadiusMeters int
	TravelMode   TravelMode
	ResultLimit  int
}

// RawCandidate - сырой результат nearby-поиска, по одному на пару
// (ключевое слово, найденное место). Одно и то же физическое место может
// встречаться несколько раз с разными SourceKeyword.
type RawCandidate struct {
	ExternalID    string
	Name          string
	Address       string
	Location      Coordinate
	SourceKeyword string
}

// NormalizedCandidate - кандидат с вычисленным брендовым токеном.
// BrandToken пересчитывается на каждый запрос и никогда не кешируется.
type NormalizedCandidate struct {
	RawCandidate
	BrandToken string
}

// RankedFacility - итоговый результат ранжирования.
// Estimated=true означает, что расстояние и время пришли из haversine-фоллбека,
// а не от провайдера маршрутов.
type RankedFacility struct {
	Candidate       NormalizedCandidate `json:"candidate"`
	DistanceMeters  float64             `json:"distance_meters"`
	DurationSeconds *float64            `json:"duration_seconds,omitempty"`
	Estimated       bool                `json:"estimated"`
}

// RouteOutcome - результат провайдера маршрутов для одного пункта назначения.
// nil-поля означают, что маршрут для этой точки не построен (no-route, timeout).
type RouteOutcome struct {
	DistanceMeters  *float64
	DurationSeconds *float64
}

// Reachable сообщает, построил ли провайдер маршрут до точки
func (o RouteOutcome) Reachable() bool {
	return o.DistanceMeters != nil && o.DurationSeconds != nil
}

// GeocodedLocation - результат прямого геокодирования адреса
type GeocodedLocation struct {
	Location  Coordinate `json:"location"`
	PlaceName string     `json:"place_name"`
}
