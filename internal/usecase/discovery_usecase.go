package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/domain/repository"
	apperrors "github.com/facility-discovery/internal/pkg/errors"
	"github.com/facility-discovery/internal/pkg/utils"
	"github.com/facility-discovery/internal/usecase/dto"
)

// maxResultLimit - верхняя граница result_limit, та же что у HTTP DTO
const maxResultLimit = 10

// DiscoveryOptions - настройки конвейера поиска
type DiscoveryOptions struct {
	DefaultRadiusMeters int
	DefaultResultLimit  int
	PerKeywordLimit     int
	MaxConcurrentSearch int
	SearchTimeout       time.Duration
	MatrixTimeout       time.Duration
	DedupDistanceMeters float64
	OverfetchMultiplier int
}

// DiscoveryUseCase - use case поиска и ранжирования объектов рядом с жильём.
// Конвейер: раскрытие ключевых слов -> агрегация nearby-поиска ->
// дедупликация -> фильтр категории -> фильтр бренда -> ранжирование.
// Всё состояние живёт в рамках одного запроса, между запросами ничего
// не разделяется и не кешируется.
type DiscoveryUseCase struct {
	geocoderRepo   repository.GeocoderRepository
	expander       *KeywordExpander
	aggregator     *SearchAggregator
	deduplicator   *Deduplicator
	categoryFilter *CategoryFilter
	brandFilter    *BrandFilter
	ranker         *DistanceRanker
	logger         *zap.Logger
	opts           DiscoveryOptions
}

// NewDiscoveryUseCase - создание нового DiscoveryUseCase
func NewDiscoveryUseCase(
	geocoderRepo repository.GeocoderRepository,
	placeRepo repository.PlaceRepository,
	distanceRepo repository.DistanceRepository,
	catalog *domain.Catalog,
	logger *zap.Logger,
	opts DiscoveryOptions,
) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		geocoderRepo:   geocoderRepo,
		expander:       NewKeywordExpander(catalog),
		aggregator:     NewSearchAggregator(placeRepo, logger, opts.PerKeywordLimit, opts.MaxConcurrentSearch, opts.SearchTimeout),
		deduplicator:   NewDeduplicator(catalog, logger, opts.DedupDistanceMeters),
		categoryFilter: NewCategoryFilter(catalog, logger),
		brandFilter:    NewBrandFilter(catalog, logger),
		ranker:         NewDistanceRanker(distanceRepo, logger, opts.OverfetchMultiplier, opts.MatrixTimeout),
		logger:         logger,
		opts:           opts,
	}
}

// Discover выполняет полный цикл поиска объектов.
// Пустой список - валидный успешный результат; ошибками являются только
// неразрешённый адрес, невалидные параметры и отмена запроса.
func (uc *DiscoveryUseCase) Discover(ctx context.Context, req dto.DiscoverRequest) (*dto.DiscoverResponse, error) {
	searchReq, placeName, err := uc.resolveRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &dto.DiscoverResponse{
		Origin:     searchReq.Origin,
		PlaceName:  placeName,
		TravelMode: searchReq.TravelMode,
		Facilities: []dto.FacilityDTO{},
	}

	keywords := uc.expander.Expand(searchReq.Category, searchReq.Brand)
	if len(keywords) == 0 {
		// Неизвестная категория или бренд - пустой успех, не ошибка
		uc.logger.Info("No keywords for category, returning empty result",
			zap.String("category", string(searchReq.Category)))
		return resp, nil
	}

	raw, err := uc.aggregator.Aggregate(ctx, searchReq.Origin, searchReq.RadiusMeters, searchReq.Category, keywords)
	if err != nil {
		return nil, uc.asCancellation(err)
	}

	candidates := uc.deduplicator.Dedupe(uc.deduplicator.Normalize(raw))
	candidates = uc.categoryFilter.Filter(candidates, searchReq.Category)
	candidates = uc.brandFilter.Filter(candidates, searchReq.Brand)

	if err := ctx.Err(); err != nil {
		return nil, uc.asCancellation(err)
	}

	ranked, estimatedCount, err := uc.ranker.Rank(ctx, searchReq.Origin, candidates, searchReq.TravelMode, searchReq.ResultLimit)
	if err != nil {
		return nil, uc.asCancellation(err)
	}

	for _, f := range ranked {
		resp.Facilities = append(resp.Facilities, dto.ConvertFacility(f))
	}
	resp.EstimatedCount = estimatedCount

	uc.logger.Info("Discovery completed",
		zap.String("category", string(searchReq.Category)),
		zap.Int("keywords", len(keywords)),
		zap.Int("raw_candidates", len(raw)),
		zap.Int("after_filters", len(candidates)),
		zap.Int("results", len(ranked)),
		zap.Int("estimated", estimatedCount))

	return resp, nil
}

// resolveRequest валидирует запрос, применяет значения по умолчанию и
// определяет координаты жилья (геокодирование адреса при необходимости)
func (uc *DiscoveryUseCase) resolveRequest(ctx context.Context, req dto.DiscoverRequest) (*domain.FacilitySearchRequest, string, error) {
	mode := domain.TravelMode(req.TravelMode)
	if req.TravelMode == "" {
		mode = domain.TravelModeWalking
	}
	if !mode.IsValid() {
		return nil, "", apperrors.ErrInvalidTravelMode
	}

	radius := req.RadiusMeters
	if radius == 0 {
		radius = uc.opts.DefaultRadiusMeters
	}
	if !utils.ValidateRadiusMeters(radius) {
		return nil, "", apperrors.ErrInvalidRadius
	}

	// Задания из стрима минуют HTTP-валидатор, поэтому лимит
	// нормализуется здесь: нечисловые значения падают в дефолт,
	// завышенные ограничиваются максимумом API
	limit := req.ResultLimit
	if limit <= 0 {
		limit = uc.opts.DefaultResultLimit
	}
	if limit > maxResultLimit {
		limit = maxResultLimit
	}

	var origin domain.Coordinate
	var placeName string

	switch {
	case req.Address != "":
		located, err := uc.geocoderRepo.Geocode(ctx, req.Address)
		if err != nil {
			if ctx.Err() != nil {
				return nil, "", apperrors.ErrDiscoveryCancelled
			}
			uc.logger.Warn("Failed to geocode accommodation address",
				zap.String("address", req.Address),
				zap.Error(err))
			return nil, "", apperrors.ErrLocationUnresolved
		}
		origin = located.Location
		placeName = located.PlaceName

	case req.HasCoordinates():
		if !utils.ValidateCoordinates(*req.Latitude, *req.Longitude) {
			return nil, "", apperrors.ErrInvalidCoordinates
		}
		origin = domain.Coordinate{Lat: *req.Latitude, Lon: *req.Longitude}

	default:
		return nil, "", apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "either address or coordinates are required",
		})
	}

	var brand *domain.BrandID
	if req.Brand != "" {
		b := domain.BrandID(req.Brand)
		brand = &b
	}

	return &domain.FacilitySearchRequest{
		Origin:       origin,
		Category:     domain.CategoryID(req.Category),
		Brand:        brand,
		RadiusMeters: radius,
		TravelMode:   mode,
		ResultLimit:  limit,
	}, placeName, nil
}

// asCancellation отличает отмену запроса вызывающей стороной от прочих сбоев
func (uc *DiscoveryUseCase) asCancellation(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrDiscoveryCancelled
	}
	return err
}
