package dto

// DiscoverRequest - запрос на поиск объектов рядом с жильём путешественника.
// Задаётся либо адрес (будет геокодирован), либо координаты напрямую.
type DiscoverRequest struct {
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Category     string   `json:"category" validate:"required"`
	Brand        string   `json:"brand"`
	RadiusMeters int      `json:"radius_meters" validate:"omitempty,min=50,max=5000"`
	TravelMode   string   `json:"travel_mode" validate:"omitempty,oneof=walking transit driving"`
	ResultLimit  int      `json:"result_limit" validate:"omitempty,min=1,max=10"`
}

// HasCoordinates проверяет, заданы ли координаты напрямую
func (r *DiscoverRequest) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
