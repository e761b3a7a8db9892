package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/domain/repository"
)

// SearchAggregator выполняет nearby-поиск по всем ключевым словам параллельно
// и сливает результаты в общий пул кандидатов
type SearchAggregator struct {
	placeRepo       repository.PlaceRepository
	logger          *zap.Logger
	perKeywordLimit int
	maxConcurrent   int
	searchTimeout   time.Duration
}

// NewSearchAggregator - создание нового SearchAggregator
func NewSearchAggregator(
	placeRepo repository.PlaceRepository,
	logger *zap.Logger,
	perKeywordLimit int,
	maxConcurrent int,
	searchTimeout time.Duration,
) *SearchAggregator {
	return &SearchAggregator{
		placeRepo:       placeRepo,
		logger:          logger,
		perKeywordLimit: perKeywordLimit,
		maxConcurrent:   maxConcurrent,
		searchTimeout:   searchTimeout,
	}
}

// Aggregate запускает по одному поиску на ключевое слово с ограниченным
// параллелизмом. Упавший или пустой поиск даёт ноль кандидатов и не валит
// агрегацию целиком. Результат собирается по позиции ключевого слова,
// поэтому порядок не зависит от сетевых гонок.
func (a *SearchAggregator) Aggregate(
	ctx context.Context,
	origin domain.Coordinate,
	radiusMeters int,
	category domain.CategoryID,
	keywords []string,
) ([]domain.RawCandidate, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	buckets := make([][]domain.RawCandidate, len(keywords))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrent)

	for i, keyword := range keywords {
		i, keyword := i, keyword
		g.Go(func() error {
			searchCtx, cancel := context.WithTimeout(gctx, a.searchTimeout)
			defer cancel()

			candidates, err := a.placeRepo.NearbySearch(searchCtx, origin, radiusMeters, category, keyword)
			if err != nil {
				// Частичный отказ: ключевое слово пропускается
				a.logger.Warn("Nearby search failed for keyword",
					zap.String("keyword", keyword),
					zap.Error(err))
				return nil
			}

			if len(candidates) > a.perKeywordLimit {
				candidates = candidates[:a.perKeywordLimit]
			}
			buckets[i] = candidates
			return nil
		})
	}

	// Задачи не возвращают ошибок, ждём только завершения
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged []domain.RawCandidate
	for _, bucket := range buckets {
		merged = append(merged, bucket...)
	}

	a.logger.Debug("Search aggregation completed",
		zap.Int("keywords", len(keywords)),
		zap.Int("candidates", len(merged)))

	return merged, nil
}
