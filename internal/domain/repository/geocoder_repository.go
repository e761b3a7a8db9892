package repository

import (
	"context"

	"github.com/facility-discovery/internal/domain"
)

// GeocoderRepository определяет методы прямого геокодирования адресов
type GeocoderRepository interface {
	// Geocode преобразует текстовый адрес в координату и каноническое имя места
	Geocode(ctx context.Context, address string) (*domain.GeocodedLocation, error)
}
