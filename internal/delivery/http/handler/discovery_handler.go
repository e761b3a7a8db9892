package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/facility-discovery/internal/pkg/errors"
	"github.com/facility-discovery/internal/pkg/utils"
	"github.com/facility-discovery/internal/pkg/validator"
	"github.com/facility-discovery/internal/usecase"
	"github.com/facility-discovery/internal/usecase/dto"
)

// DiscoveryHandler - обработчик запросов поиска объектов
type DiscoveryHandler struct {
	discoveryUC *usecase.DiscoveryUseCase
	logger      *zap.Logger
}

// NewDiscoveryHandler - создание нового DiscoveryHandler
func NewDiscoveryHandler(discoveryUC *usecase.DiscoveryUseCase, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUC: discoveryUC,
		logger:      logger,
	}
}

// Discover godoc
// @Summary Поиск объектов рядом с жильём
// @Description Находит ближайшие объекты запрошенной категории (например, комбини) рядом с адресом или координатами жилья, убирает дубликаты и ранжирует по фактическому расстоянию/времени в пути. При недоступности провайдера маршрутов расстояния оцениваются по прямой (признак estimated).
// @Tags Discovery
// @Accept json
// @Produce json
// @Param request body dto.DiscoverRequest true "Параметры поиска"
// @Success 200 {object} utils.SuccessResponse{data=dto.DiscoverResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/discover [post]
func (h *DiscoveryHandler) Discover(c *fiber.Ctx) error {
	var req dto.DiscoverRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// Валидация
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	// Выполнение use case
	result, err := h.discoveryUC.Discover(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:          len(result.Facilities),
		EstimatedCount: result.EstimatedCount,
	})
}
