// Package http registra los handlers Fiber de la API de KPIs.
package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/kpilab/saasmetrics/internal/application/analytics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *appanalytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/segments", dashboardHandler.GetSegments)

	usage := api.Group("/usage")
	usageHandler := NewUsageHandler(deps.DashboardUC)
	usage.Get("/monthly", usageHandler.GetMonthly)
	usage.Get("/features", usageHandler.GetTopFeatures)

	revenue := api.Group("/revenue")
	revenue.Get("/monthly", dashboardHandler.GetMonthlyRevenue)
}
