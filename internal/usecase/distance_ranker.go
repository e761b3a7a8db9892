package usecase

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/domain/repository"
	"github.com/facility-discovery/internal/pkg/utils"
)

// DistanceRanker ранжирует кандидатов в два этапа: быстрый pre-rank по прямой
// и точный батч-запрос к провайдеру маршрутов для верхушки списка
type DistanceRanker struct {
	distanceRepo        repository.DistanceRepository
	logger              *zap.Logger
	overfetchMultiplier int
	matrixTimeout       time.Duration
}

// NewDistanceRanker - создание нового DistanceRanker
func NewDistanceRanker(
	distanceRepo repository.DistanceRepository,
	logger *zap.Logger,
	overfetchMultiplier int,
	matrixTimeout time.Duration,
) *DistanceRanker {
	return &DistanceRanker{
		distanceRepo:        distanceRepo,
		logger:              logger,
		overfetchMultiplier: overfetchMultiplier,
		matrixTimeout:       matrixTimeout,
	}
}

// Rank возвращает топ-N объектов и количество записей с fallback-оценкой.
// Отказ провайдера маршрутов (весь батч или отдельные точки) деградирует в
// haversine-оценку и никогда не поднимается как ошибка; ошибкой является
// только отмена запроса вызывающей стороной.
func (r *DistanceRanker) Rank(
	ctx context.Context,
	origin domain.Coordinate,
	candidates []domain.NormalizedCandidate,
	mode domain.TravelMode,
	resultLimit int,
) ([]domain.RankedFacility, int, error) {
	if len(candidates) == 0 || resultLimit <= 0 {
		return nil, 0, nil
	}

	// Этап 1: pre-rank по прямой. Over-fetch поглощает случаи, когда точный
	// маршрут переставляет близкие по прямой точки (река, шоссе между ними)
	type preRanked struct {
		candidate domain.NormalizedCandidate
		linear    float64
	}

	pre := make([]preRanked, 0, len(candidates))
	for _, c := range candidates {
		pre = append(pre, preRanked{
			candidate: c,
			linear:    utils.HaversineMeters(origin, c.Location),
		})
	}

	sort.SliceStable(pre, func(i, j int) bool {
		if pre[i].linear != pre[j].linear {
			return pre[i].linear < pre[j].linear
		}
		return pre[i].candidate.ExternalID < pre[j].candidate.ExternalID
	})

	subset := len(pre)
	if limit := r.overfetchMultiplier * resultLimit; limit < subset {
		subset = limit
	}
	pre = pre[:subset]

	// Этап 2: один батч-запрос матрицы для отобранного подмножества
	destinations := make([]domain.Coordinate, len(pre))
	for i, p := range pre {
		destinations[i] = p.candidate.Location
	}

	matrixCtx, cancel := context.WithTimeout(ctx, r.matrixTimeout)
	defer cancel()

	outcomes, err := r.distanceRepo.TravelMatrix(matrixCtx, origin, destinations, mode)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		r.logger.Warn("Travel matrix request failed, falling back to estimates",
			zap.Int("destinations", len(destinations)),
			zap.Error(err))
		outcomes = nil
	}

	ranked := make([]domain.RankedFacility, 0, len(pre))
	for i, p := range pre {
		var outcome domain.RouteOutcome
		if i < len(outcomes) {
			outcome = outcomes[i]
		}

		if outcome.Reachable() {
			duration := *outcome.DurationSeconds
			ranked = append(ranked, domain.RankedFacility{
				Candidate:       p.candidate,
				DistanceMeters:  *outcome.DistanceMeters,
				DurationSeconds: &duration,
				Estimated:       false,
			})
			continue
		}

		// Fallback: расстояние по прямой, время по средней скорости режима
		duration := p.linear / mode.AssumedSpeedMPS()
		ranked = append(ranked, domain.RankedFacility{
			Candidate:       p.candidate,
			DistanceMeters:  p.linear,
			DurationSeconds: &duration,
			Estimated:       true,
		})
	}

	// Финальная сортировка по единому ключу: время, если оно есть, иначе
	// расстояние. Оценённые записи не отделяются от подтверждённых.
	sort.SliceStable(ranked, func(i, j int) bool {
		ki, kj := rankKey(ranked[i]), rankKey(ranked[j])
		if ki != kj {
			return ki < kj
		}
		return ranked[i].DistanceMeters < ranked[j].DistanceMeters
	})

	if len(ranked) > resultLimit {
		ranked = ranked[:resultLimit]
	}

	estimatedCount := 0
	for _, f := range ranked {
		if f.Estimated {
			estimatedCount++
		}
	}

	return ranked, estimatedCount, nil
}

func rankKey(r domain.RankedFacility) float64 {
	if r.DurationSeconds != nil {
		return *r.DurationSeconds
	}
	return r.DistanceMeters
}
