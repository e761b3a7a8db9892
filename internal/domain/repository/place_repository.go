package repository

import (
	"context"

	"github.com/facility-discovery/internal/domain"
)

// PlaceRepository определяет методы nearby-поиска мест у внешнего провайдера
type PlaceRepository interface {
	// NearbySearch возвращает кандидатов в радиусе от точки по одному
	// ключевому слову. Порядок - релевантность, присвоенная провайдером.
	NearbySearch(
		ctx context.Context,
		origin domain.Coordinate,
		radiusMeters int,
		category domain.CategoryID,
		keyword string,
	) ([]domain.RawCandidate, error)
}
