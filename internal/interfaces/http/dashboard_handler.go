package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/kpilab/saasmetrics/internal/application/analytics"
	"github.com/kpilab/saasmetrics/internal/application/dto"
)

// DashboardHandler maneja los endpoints del dashboard de unit economics.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los KPIs globales del dataset.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (customers, churn_rate, total_revenue,
// avg_cac, avg_ltv, avg_ltv_cac_ratio, avg_payback_months, avg_health_score).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}

// GetSegments devuelve las unit economics promediadas por segmento
// (industria × tamaño × plan inicial × frecuencia de facturación).
// GET /api/dashboard/segments
func (h *DashboardHandler) GetSegments(c *fiber.Ctx) error {
	segments, err := h.uc.GetSegments(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(segments)
}

// GetMonthlyRevenue devuelve la serie mensual de revenue cobrado.
// GET /api/revenue/monthly
func (h *DashboardHandler) GetMonthlyRevenue(c *fiber.Ctx) error {
	points, err := h.uc.GetMonthlyRevenue(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(points)
}
