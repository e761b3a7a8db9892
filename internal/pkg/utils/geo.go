package utils

import (
	"math"

	"github.com/facility-discovery/internal/domain"
)

const earthRadiusMeters = 6371000.0

// HaversineMeters вычисляет расстояние по большому кругу между двумя точками в метрах
func HaversineMeters(a, b domain.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLon := (b.Lon - a.Lon) * math.Pi / 180.0

	lat1Rad := a.Lat * math.Pi / 180.0
	lat2Rad := b.Lat * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadiusMeters проверяет валидность радиуса поиска (50 м - 5 км)
func ValidateRadiusMeters(radius int) bool {
	return radius >= 50 && radius <= 5000
}
