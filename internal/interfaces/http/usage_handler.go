package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/kpilab/saasmetrics/internal/application/analytics"
	"github.com/kpilab/saasmetrics/internal/application/dto"
)

// UsageHandler maneja los endpoints de analítica de uso.
type UsageHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewUsageHandler construye el handler.
func NewUsageHandler(uc *appanalytics.DashboardUseCase) *UsageHandler {
	return &UsageHandler{uc: uc}
}

// GetMonthly devuelve la serie mensual de actividad de uso.
// GET /api/usage/monthly
func (h *UsageHandler) GetMonthly(c *fiber.Ctx) error {
	rows, err := h.uc.GetMonthlyUsage(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(rows)
}

// GetTopFeatures devuelve las features más usadas.
// GET /api/usage/features?limit=N (default 10, máximo 50)
func (h *UsageHandler) GetTopFeatures(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit > 50 {
		limit = 50
	}

	rows, err := h.uc.GetTopFeatures(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(rows)
}
