package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// DashboardSummary KPIs globales del dataset.
type DashboardSummary struct {
	CustomerCount    int
	ChurnedCount     int
	ChurnRate        float64 // fracción de clientes con churn
	TotalRevenue     decimal.Decimal
	AvgCAC           decimal.Decimal
	AvgLTV           decimal.Decimal
	AvgLTVCAC        float64
	AvgPaybackMonths float64
	AvgHealthScore   float64
}

// MonthlyRevenuePoint ingreso cobrado (pagos exitosos) de un mes calendario.
type MonthlyRevenuePoint struct {
	Month        time.Time
	Revenue      decimal.Decimal
	PaymentCount int
}

// AnalyticsRepository consultas read-only sobre el dataset cargado.
type AnalyticsRepository interface {
	GetDashboardSummary(ctx context.Context) (*DashboardSummary, error)
	ListSegments(ctx context.Context) ([]entity.SegmentEconomics, error)
	ListMonthlyUsage(ctx context.Context) ([]entity.MonthlyUsageSummary, error)
	ListTopFeatures(ctx context.Context, limit int) ([]entity.FeatureUsage, error)
	ListMonthlyRevenue(ctx context.Context) ([]MonthlyRevenuePoint, error)
}
