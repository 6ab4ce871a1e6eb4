package handler

import (
	"github.com/archive-alert/internal/pkg/utils"
	"github.com/archive-alert/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatusHandler обрабатывает запросы к API состояния
type StatusHandler struct {
	statusUC *usecase.StatusUseCase
	logger   *zap.Logger
}

// NewStatusHandler создает новый экземпляр StatusHandler
func NewStatusHandler(statusUC *usecase.StatusUseCase, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		statusUC: statusUC,
		logger:   logger,
	}
}

// Health godoc
// @Summary Health check
// @Tags Status
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *StatusHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.statusUC.GetHealth(c.Context()))
}

// GetStatus godoc
// @Summary Scheduler status
// @Description Настройки планировщика и результат последнего цикла
// @Tags Status
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StatusResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/status [get]
func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.statusUC.GetStatus(c.Context())
	if err != nil {
		h.logger.Error("Failed to get status", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, nil)
}

// ListCounters godoc
// @Summary Stored scene counts
// @Tags Counters
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CountersResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/counters [get]
func (h *StatusHandler) ListCounters(c *fiber.Ctx) error {
	counters, err := h.statusUC.ListCounters(c.Context())
	if err != nil {
		h.logger.Error("Failed to list counters", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, counters, &utils.Meta{Total: counters.Total})
}

// GetCounter godoc
// @Summary Stored scene count for one AOI
// @Tags Counters
// @Produce json
// @Param aoi path string true "AOI file name, e.g. aoi_europe.geojson"
// @Success 200 {object} utils.SuccessResponse{data=dto.CounterResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/counters/{aoi} [get]
func (h *StatusHandler) GetCounter(c *fiber.Ctx) error {
	aoi := c.Params("aoi")

	counter, err := h.statusUC.GetCounter(c.Context(), aoi)
	if err != nil {
		h.logger.Debug("Counter lookup failed", zap.String("aoi", aoi), zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, counter, nil)
}
