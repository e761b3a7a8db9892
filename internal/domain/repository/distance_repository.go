package repository

import (
	"context"

	"github.com/facility-discovery/internal/domain"
)

// DistanceRepository определяет методы получения матрицы расстояний и времени
type DistanceRepository interface {
	// TravelMatrix возвращает результат по каждому пункту назначения в том же
	// порядке, что и destinations. Недостижимые точки приходят с nil-полями,
	// а не ошибкой: ошибка означает отказ всего батч-запроса.
	TravelMatrix(
		ctx context.Context,
		origin domain.Coordinate,
		destinations []domain.Coordinate,
		mode domain.TravelMode,
	) ([]domain.RouteOutcome, error)
}
