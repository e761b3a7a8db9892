package domain

// Coordinate представляет географическую точку
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TravelMode - способ передвижения путешественника
type TravelMode string

const (
	TravelModeWalking TravelMode = "walking"
	TravelModeTransit TravelMode = "transit"
	TravelModeDriving TravelMode = "driving"
)

// Средние скорости для оценки времени в пути, когда точный маршрут недоступен
// (пешком 5 км/ч, транспорт 20 км/ч с учётом ожидания, авто 30 км/ч по городу)
var assumedSpeedsKmh = map[TravelMode]float64{
	TravelModeWalking: 5.0,
	TravelModeTransit: 20.0,
	TravelModeDriving: 30.0,
}

// IsValid проверяет, что способ передвижения известен
func (m TravelMode) IsValid() bool {
	_, ok := assumedSpeedsKmh[m]
	return ok
}

// AssumedSpeedMPS возвращает среднюю скорость в м/с для fallback-оценки
func (m TravelMode) AssumedSpeedMPS() float64 {
	kmh, ok := assumedSpeedsKmh[m]
	if !ok {
		kmh = assumedSpeedsKmh[TravelModeWalking]
	}
	return kmh / 3.6
}
