package domain

import "github.com/google/uuid"

// Stream names (должны совпадать с backend путеводителя)
const (
	StreamDiscoveryJobs = "stream:facility:discover"
	StreamDiscoveryDone = "stream:facility:done"
)

// FacilityDiscoveryJob - входящее задание на поиск объектов рядом с жильём.
// Адрес либо координаты: при наличии адреса координаты игнорируются.
type FacilityDiscoveryJob struct {
	JobID        uuid.UUID  `json:"job_id"`
	Address      string     `json:"address,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	Category     CategoryID `json:"category"`
	Brand        *BrandID   `json:"brand,omitempty"`
	RadiusMeters int        `json:"radius_meters,omitempty"`
	TravelMode   TravelMode `json:"travel_mode,omitempty"`
	ResultLimit  int        `json:"result_limit,omitempty"`
}

// HasCoordinates проверяет, заданы ли координаты напрямую
func (j *FacilityDiscoveryJob) HasCoordinates() bool {
	return j.Latitude != nil && j.Longitude != nil
}

// FacilityDiscoveryDone - результат выполнения задания
type FacilityDiscoveryDone struct {
	JobID          uuid.UUID        `json:"job_id"`
	Origin         *Coordinate      `json:"origin,omitempty"`
	PlaceName      string           `json:"place_name,omitempty"`
	Facilities     []RankedFacility `json:"facilities,omitempty"`
	EstimatedCount int              `json:"estimated_count"`
	Error          string           `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
