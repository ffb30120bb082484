package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
	"github.com/kpilab/saasmetrics/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre el dataset cargado.
// Lee las tablas pre-agregadas (unit_economics, unit_economics_by_segment)
// y agrega pagos y uso al vuelo.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetDashboardSummary KPIs globales sobre unit_economics.
// Usa COALESCE para devolver ceros si el dataset está vacío.
func (r *AnalyticsRepo) GetDashboardSummary(ctx context.Context) (*repository.DashboardSummary, error) {
	const query = `
	SELECT
	    COUNT(*)                                                    AS customers,
	    COUNT(*) FILTER (WHERE churned)                             AS churned,
	    COALESCE(AVG(CASE WHEN churned THEN 1.0 ELSE 0.0 END), 0)   AS churn_rate,
	    COALESCE(SUM(total_revenue), 0)                             AS total_revenue,
	    COALESCE(AVG(cac), 0)                                       AS avg_cac,
	    COALESCE(AVG(ltv), 0)                                       AS avg_ltv,
	    COALESCE(AVG(ltv_cac_ratio), 0)                             AS avg_ltv_cac,
	    COALESCE(AVG(cac_payback_months), 0)                        AS avg_payback,
	    COALESCE(AVG(health_score), 0)                              AS avg_health
	FROM unit_economics`

	var s repository.DashboardSummary
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.CustomerCount,
		&s.ChurnedCount,
		&s.ChurnRate,
		&s.TotalRevenue,
		&s.AvgCAC,
		&s.AvgLTV,
		&s.AvgLTVCAC,
		&s.AvgPaybackMonths,
		&s.AvgHealthScore,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDashboardSummary: %w", err)
	}
	return &s, nil
}

// ListSegments rollup pre-calculado por industria × tamaño × plan × frecuencia.
func (r *AnalyticsRepo) ListSegments(ctx context.Context) ([]entity.SegmentEconomics, error) {
	const query = `
	SELECT
	    industry, company_size, initial_plan, initial_billing,
	    avg_cac, avg_ltv, avg_ltv_cac_ratio, avg_payback_months,
	    avg_health_score, customer_count
	FROM unit_economics_by_segment
	ORDER BY industry, company_size, initial_plan, initial_billing`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListSegments: %w", err)
	}
	defer rows.Close()

	var results []entity.SegmentEconomics
	for rows.Next() {
		var s entity.SegmentEconomics
		if err := rows.Scan(
			&s.Industry,
			&s.CompanySize,
			&s.InitialPlan,
			&s.InitialBilling,
			&s.AvgCAC,
			&s.AvgLTV,
			&s.AvgLTVCAC,
			&s.AvgPaybackMonths,
			&s.AvgHealthScore,
			&s.CustomerCount,
		); err != nil {
			return nil, fmt.Errorf("analytics.ListSegments scan: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// ListMonthlyUsage serie mensual de eventos, clientes únicos y seats promedio.
func (r *AnalyticsRepo) ListMonthlyUsage(ctx context.Context) ([]entity.MonthlyUsageSummary, error) {
	const query = `
	SELECT
	    DATE_TRUNC('month', event_date)::DATE AS month,
	    COUNT(*)                              AS total_events,
	    COUNT(DISTINCT customer_id)           AS unique_customers,
	    AVG(seats_used)                       AS avg_seats_used
	FROM usage_events
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListMonthlyUsage: %w", err)
	}
	defer rows.Close()

	var results []entity.MonthlyUsageSummary
	for rows.Next() {
		var m entity.MonthlyUsageSummary
		if err := rows.Scan(&m.Month, &m.TotalEvents, &m.UniqueCustomers, &m.AvgSeatsUsed); err != nil {
			return nil, fmt.Errorf("analytics.ListMonthlyUsage scan: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// ListTopFeatures features con más eventos, desempate alfabético.
func (r *AnalyticsRepo) ListTopFeatures(ctx context.Context, limit int) ([]entity.FeatureUsage, error) {
	const query = `
	SELECT feature, COUNT(*) AS event_count
	FROM usage_events
	GROUP BY feature
	ORDER BY event_count DESC, feature
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListTopFeatures: %w", err)
	}
	defer rows.Close()

	var results []entity.FeatureUsage
	for rows.Next() {
		var f entity.FeatureUsage
		if err := rows.Scan(&f.Feature, &f.Count); err != nil {
			return nil, fmt.Errorf("analytics.ListTopFeatures scan: %w", err)
		}
		results = append(results, f)
	}
	return results, rows.Err()
}

// ListMonthlyRevenue ingreso cobrado por mes (solo pagos successful).
func (r *AnalyticsRepo) ListMonthlyRevenue(ctx context.Context) ([]repository.MonthlyRevenuePoint, error) {
	const query = `
	SELECT
	    DATE_TRUNC('month', payment_date)::DATE AS month,
	    COALESCE(SUM(amount), 0)                AS revenue,
	    COUNT(*)                                AS payments
	FROM payments
	WHERE status = 'successful'
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListMonthlyRevenue: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyRevenuePoint
	for rows.Next() {
		var p repository.MonthlyRevenuePoint
		if err := rows.Scan(&p.Month, &p.Revenue, &p.PaymentCount); err != nil {
			return nil, fmt.Errorf("analytics.ListMonthlyRevenue scan: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
