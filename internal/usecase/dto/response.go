package dto

import "github.com/facility-discovery/internal/domain"

// FacilityDTO - один найденный объект в ответе
type FacilityDTO struct {
	ExternalID      string   `json:"external_id,omitempty"`
	Name            string   `json:"name"`
	Address         string   `json:"address,omitempty"`
	Lat             float64  `json:"lat"`
	Lon             float64  `json:"lon"`
	Brand           string   `json:"brand"`
	DistanceMeters  float64  `json:"distance_meters"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	// Estimated=true - расстояние и время оценены по прямой,
	// провайдер маршрутов для этой точки не ответил
	Estimated bool `json:"estimated"`
}

// DiscoverResponse - результат поиска объектов
type DiscoverResponse struct {
	Origin     domain.Coordinate `json:"origin"`
	PlaceName  string            `json:"place_name,omitempty"`
	TravelMode domain.TravelMode `json:"travel_mode"`
	Facilities []FacilityDTO     `json:"facilities"`
	// EstimatedCount - сколько записей получили fallback-оценку расстояния
	EstimatedCount int `json:"estimated_count"`
}

// ConvertFacility преобразует доменный результат в DTO
func ConvertFacility(r domain.RankedFacility) FacilityDTO {
	return FacilityDTO{
		ExternalID:      r.Candidate.ExternalID,
		Name:            r.Candidate.Name,
		Address:         r.Candidate.Address,
		Lat:             r.Candidate.Location.Lat,
		Lon:             r.Candidate.Location.Lon,
		Brand:           r.Candidate.BrandToken,
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
		Estimated:       r.Estimated,
	}
}
