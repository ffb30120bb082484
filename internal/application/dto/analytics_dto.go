// Package dto define las estructuras de respuesta JSON de la API de KPIs.
package dto

import "github.com/shopspring/decimal"

// ErrorResponse error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DashboardSummaryDTO KPIs globales del dataset.
type DashboardSummaryDTO struct {
	Customers        int             `json:"customers"`
	Churned          int             `json:"churned"`
	ChurnRate        float64         `json:"churn_rate"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	AvgCAC           decimal.Decimal `json:"avg_cac"`
	AvgLTV           decimal.Decimal `json:"avg_ltv"`
	AvgLTVCACRatio   float64         `json:"avg_ltv_cac_ratio"`
	AvgPaybackMonths float64         `json:"avg_payback_months"`
	AvgHealthScore   float64         `json:"avg_health_score"`
}

// SegmentDTO unit economics promedio de un segmento.
type SegmentDTO struct {
	Industry         string          `json:"industry"`
	CompanySize      string          `json:"company_size"`
	InitialPlan      string          `json:"initial_plan"`
	InitialBilling   string          `json:"initial_billing"`
	AvgCAC           decimal.Decimal `json:"avg_cac"`
	AvgLTV           decimal.Decimal `json:"avg_ltv"`
	AvgLTVCACRatio   float64         `json:"avg_ltv_cac_ratio"`
	AvgPaybackMonths float64         `json:"avg_payback_months"`
	AvgHealthScore   float64         `json:"avg_health_score"`
	Customers        int             `json:"customers"`
}

// MonthlyUsageDTO actividad agregada de un mes.
type MonthlyUsageDTO struct {
	Month           string  `json:"month"` // YYYY-MM
	TotalEvents     int     `json:"total_events"`
	UniqueCustomers int     `json:"unique_customers"`
	AvgSeatsUsed    float64 `json:"avg_seats_used"`
}

// FeatureUsageDTO conteo de eventos de una feature.
type FeatureUsageDTO struct {
	Feature string `json:"feature"`
	Count   int    `json:"count"`
}

// MonthlyRevenueDTO ingreso cobrado de un mes.
type MonthlyRevenueDTO struct {
	Month    string          `json:"month"` // YYYY-MM
	Revenue  decimal.Decimal `json:"revenue"`
	Payments int             `json:"payments"`
}
