package analytics

import (
	"context"
	"fmt"

	"github.com/kpilab/saasmetrics/internal/application/dto"
	"github.com/kpilab/saasmetrics/internal/domain/repository"
)

// defaultTopFeatures límite por defecto del widget de features.
const defaultTopFeatures = 10

// DashboardUseCase expone los KPIs del dataset cargado.
//
// Fuente de datos: AnalyticsRepository (consultas read-only);
// no toca las tablas crudas directamente.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary KPIs globales: clientes, churn, revenue, LTV/CAC, payback, health.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	s, err := uc.repo.GetDashboardSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", err)
	}
	return &dto.DashboardSummaryDTO{
		Customers:        s.CustomerCount,
		Churned:          s.ChurnedCount,
		ChurnRate:        s.ChurnRate,
		TotalRevenue:     s.TotalRevenue.Round(2),
		AvgCAC:           s.AvgCAC.Round(2),
		AvgLTV:           s.AvgLTV.Round(2),
		AvgLTVCACRatio:   s.AvgLTVCAC,
		AvgPaybackMonths: s.AvgPaybackMonths,
		AvgHealthScore:   s.AvgHealthScore,
	}, nil
}

// GetSegments rollup por industria × tamaño × plan inicial × frecuencia.
func (uc *DashboardUseCase) GetSegments(ctx context.Context) ([]dto.SegmentDTO, error) {
	segments, err := uc.repo.ListSegments(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: segmentos: %w", err)
	}
	out := make([]dto.SegmentDTO, 0, len(segments))
	for _, s := range segments {
		out = append(out, dto.SegmentDTO{
			Industry:         s.Industry,
			CompanySize:      s.CompanySize,
			InitialPlan:      s.InitialPlan,
			InitialBilling:   s.InitialBilling,
			AvgCAC:           s.AvgCAC,
			AvgLTV:           s.AvgLTV,
			AvgLTVCACRatio:   s.AvgLTVCAC,
			AvgPaybackMonths: s.AvgPaybackMonths,
			AvgHealthScore:   s.AvgHealthScore,
			Customers:        s.CustomerCount,
		})
	}
	return out, nil
}

// GetMonthlyUsage serie mensual de actividad de uso.
func (uc *DashboardUseCase) GetMonthlyUsage(ctx context.Context) ([]dto.MonthlyUsageDTO, error) {
	rows, err := uc.repo.ListMonthlyUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: uso mensual: %w", err)
	}
	out := make([]dto.MonthlyUsageDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlyUsageDTO{
			Month:           r.Month.Format("2006-01"),
			TotalEvents:     r.TotalEvents,
			UniqueCustomers: r.UniqueCustomers,
			AvgSeatsUsed:    r.AvgSeatsUsed,
		})
	}
	return out, nil
}

// GetTopFeatures features más usadas; limit <= 0 usa el default.
func (uc *DashboardUseCase) GetTopFeatures(ctx context.Context, limit int) ([]dto.FeatureUsageDTO, error) {
	if limit <= 0 {
		limit = defaultTopFeatures
	}
	rows, err := uc.repo.ListTopFeatures(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: top features: %w", err)
	}
	out := make([]dto.FeatureUsageDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FeatureUsageDTO{Feature: r.Feature, Count: r.Count})
	}
	return out, nil
}

// GetMonthlyRevenue serie mensual de ingreso cobrado (pagos exitosos).
func (uc *DashboardUseCase) GetMonthlyRevenue(ctx context.Context) ([]dto.MonthlyRevenueDTO, error) {
	rows, err := uc.repo.ListMonthlyRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: revenue mensual: %w", err)
	}
	out := make([]dto.MonthlyRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlyRevenueDTO{
			Month:    r.Month.Format("2006-01"),
			Revenue:  r.Revenue.Round(2),
			Payments: r.PaymentCount,
		})
	}
	return out, nil
}
