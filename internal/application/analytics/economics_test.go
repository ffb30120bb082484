package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

var horizon = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func customer(id string, cac int64, budget float64) entity.Customer {
	return entity.Customer{
		ID:              id,
		AcquisitionCost: decimal.NewFromInt(cac),
		BudgetFactor:    budget,
	}
}

func TestUnitEconomics_SinRevenueRatiosEnCero(t *testing.T) {
	// CAC 500, cero pagos exitosos: LTV/CAC y payback se definen como 0.
	customers := []entity.Customer{customer("c1", 500, 1.0)}
	payments := []entity.Payment{
		{CustomerID: "c1", Amount: decimal.Zero, Status: entity.PaymentFailed},
	}

	econ := NewAggregator(horizon).UnitEconomics(customers, nil, payments, nil, nil)
	require.Len(t, econ, 1)

	ue := econ[0]
	assert.True(t, ue.TotalRevenue.IsZero())
	assert.True(t, ue.LTV.IsZero())
	assert.Zero(t, ue.LTVCACRatio)
	assert.Zero(t, ue.CACPaybackMonths)
}

func TestUnitEconomics_SinUsoNiTicketsDefaultsNeutrales(t *testing.T) {
	customers := []entity.Customer{customer("c1", 500, 1.0)}

	econ := NewAggregator(horizon).UnitEconomics(customers, nil, nil, nil, nil)
	require.Len(t, econ, 1)

	ue := econ[0]
	assert.Zero(t, ue.UsageScore)
	assert.Zero(t, ue.ActiveDays)
	assert.Equal(t, 0.5, ue.AvgSentiment, "sin tickets el sentimiento es neutral")
	assert.False(t, math.IsNaN(ue.HealthScore), "el health score nunca puede ser NaN")
	assert.GreaterOrEqual(t, ue.HealthScore, 0.0)
	assert.LessOrEqual(t, ue.HealthScore, 1.0)
}

func TestUnitEconomics_LTVEsRevenueDePagosExitosos(t *testing.T) {
	customers := []entity.Customer{customer("c1", 500, 1.0)}
	payments := []entity.Payment{
		{CustomerID: "c1", Amount: decimal.NewFromInt(100), Status: entity.PaymentSuccessful},
		{CustomerID: "c1", Amount: decimal.NewFromInt(50), Status: entity.PaymentSuccessful},
		{CustomerID: "c1", Amount: decimal.Zero, Status: entity.PaymentRefunded},
	}

	econ := NewAggregator(horizon).UnitEconomics(customers, nil, payments, nil, nil)
	require.Len(t, econ, 1)

	ue := econ[0]
	assert.Equal(t, "150.00", ue.TotalRevenue.StringFixed(2))
	assert.True(t, ue.LTV.Equal(ue.TotalRevenue))
	assert.InDelta(t, 0.3, ue.LTVCACRatio, 1e-9)
}

func TestUnitEconomics_ChurnSoloSiTodosLosLinajesTerminaron(t *testing.T) {
	customers := []entity.Customer{customer("c1", 500, 1.0), customer("c2", 500, 1.0)}
	subs := []entity.Subscription{
		// c1: terminó antes del horizonte → churned.
		{CustomerID: "c1", Kind: entity.SubscriptionInitial, PlanName: "Starter",
			Billing: entity.BillingMonthly,
			StartDate: date(2022, time.March, 1), EndDate: datePtr(2023, time.June, 30)},
		// c2: sigue activa (EndDate nil) → no churned.
		{CustomerID: "c2", Kind: entity.SubscriptionInitial, PlanName: "Starter",
			Billing: entity.BillingMonthly,
			StartDate: date(2022, time.March, 1)},
	}

	econ := NewAggregator(horizon).UnitEconomics(customers, subs, nil, nil, nil)
	require.Len(t, econ, 2)

	assert.True(t, econ[0].Churned)
	assert.False(t, econ[1].Churned)
	assert.Equal(t, "Starter", econ[0].InitialPlan)
	assert.Equal(t, entity.BillingMonthly, econ[0].InitialBilling)
}

func TestUnitEconomics_MesesActivosMinimoUno(t *testing.T) {
	customers := []entity.Customer{customer("c1", 500, 1.0)}
	subs := []entity.Subscription{
		// Actividad de una semana: los meses activos no bajan de 1.
		{CustomerID: "c1", Kind: entity.SubscriptionInitial, PlanName: "Starter",
			Billing: entity.BillingMonthly,
			StartDate: date(2022, time.March, 1), EndDate: datePtr(2022, time.March, 8)},
	}
	payments := []entity.Payment{
		{CustomerID: "c1", Amount: decimal.NewFromInt(29), Status: entity.PaymentSuccessful},
	}

	econ := NewAggregator(horizon).UnitEconomics(customers, subs, payments, nil, nil)
	require.Len(t, econ, 1)

	ue := econ[0]
	assert.Equal(t, 1.0, ue.ActiveMonths)
	assert.Equal(t, "29.00", ue.MonthlyRevenue.StringFixed(2))
}

func TestUnitEconomics_HealthScoreReescaladoAlMaximo(t *testing.T) {
	// Dos clientes idénticos salvo churn: el mejor queda exactamente en 1.
	customers := []entity.Customer{customer("c1", 500, 1.0), customer("c2", 500, 1.0)}
	subs := []entity.Subscription{
		{CustomerID: "c1", Kind: entity.SubscriptionInitial, PlanName: "Starter",
			Billing: entity.BillingMonthly, StartDate: date(2022, time.March, 1)},
		{CustomerID: "c2", Kind: entity.SubscriptionInitial, PlanName: "Starter",
			Billing: entity.BillingMonthly,
			StartDate: date(2022, time.March, 1), EndDate: datePtr(2022, time.December, 31)},
	}

	econ := NewAggregator(horizon).UnitEconomics(customers, subs, nil, nil, nil)
	require.Len(t, econ, 2)

	assert.Equal(t, 1.0, econ[0].HealthScore)
	assert.Less(t, econ[1].HealthScore, 1.0)
}

func TestUnitEconomics_SentimientoPromedioPorCliente(t *testing.T) {
	customers := []entity.Customer{customer("c1", 500, 1.0)}
	support := []entity.SupportInteraction{
		{CustomerID: "c1", Sentiment: entity.SentimentPositive},
		{CustomerID: "c1", Sentiment: entity.SentimentNegative},
	}

	econ := NewAggregator(horizon).UnitEconomics(customers, nil, nil, nil, support)
	require.Len(t, econ, 1)
	assert.InDelta(t, 0.5, econ[0].AvgSentiment, 1e-9)
}

func TestSegmentRollup_AgrupaYOrdenaDeterminista(t *testing.T) {
	customers := []entity.Customer{
		{ID: "c1", Industry: "SaaS", CompanySize: "Small (11-50)"},
		{ID: "c2", Industry: "SaaS", CompanySize: "Small (11-50)"},
		{ID: "c3", Industry: "Fintech", CompanySize: "Startup (1-10)"},
	}
	econ := []entity.UnitEconomics{
		{CustomerID: "c1", CAC: decimal.NewFromInt(100), LTV: decimal.NewFromInt(300),
			LTVCACRatio: 3, InitialPlan: "Starter", InitialBilling: entity.BillingMonthly},
		{CustomerID: "c2", CAC: decimal.NewFromInt(200), LTV: decimal.NewFromInt(500),
			LTVCACRatio: 2.5, InitialPlan: "Starter", InitialBilling: entity.BillingMonthly},
		{CustomerID: "c3", CAC: decimal.NewFromInt(400), LTV: decimal.NewFromInt(400),
			LTVCACRatio: 1, InitialPlan: "Professional", InitialBilling: entity.BillingAnnual},
	}

	segments := SegmentRollup(customers, econ)
	require.Len(t, segments, 2)

	// Orden lexicográfico: Fintech antes que SaaS.
	assert.Equal(t, "Fintech", segments[0].Industry)
	assert.Equal(t, 1, segments[0].CustomerCount)

	saas := segments[1]
	assert.Equal(t, 2, saas.CustomerCount)
	assert.Equal(t, "150.00", saas.AvgCAC.StringFixed(2))
	assert.Equal(t, "400.00", saas.AvgLTV.StringFixed(2))
	assert.InDelta(t, 2.75, saas.AvgLTVCAC, 1e-9)
}

func TestSegmentRollup_ExcluyeClientesSinSuscripcion(t *testing.T) {
	customers := []entity.Customer{
		{ID: "c1", Industry: "SaaS", CompanySize: "Small (11-50)"},
		{ID: "c2", Industry: "SaaS", CompanySize: "Small (11-50)"},
	}
	// c2 nunca contrató dentro del horizonte: sin plan inicial.
	econ := []entity.UnitEconomics{
		{CustomerID: "c1", CAC: decimal.NewFromInt(100), LTV: decimal.NewFromInt(300),
			LTVCACRatio: 3, InitialPlan: "Starter", InitialBilling: entity.BillingMonthly},
		{CustomerID: "c2", CAC: decimal.NewFromInt(250)},
	}

	segments := SegmentRollup(customers, econ)
	require.Len(t, segments, 1, "el cliente sin plan no debe formar segmento")
	assert.Equal(t, "Starter", segments[0].InitialPlan)
	assert.Equal(t, 1, segments[0].CustomerCount)
	assert.Equal(t, "100.00", segments[0].AvgCAC.StringFixed(2))
}

func TestSummarize_DatasetVacio(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.CustomerCount)
	assert.Zero(t, s.ChurnRate)
	assert.True(t, s.TotalRevenue.IsZero())
}

func TestSummarize_PromediosYChurnRate(t *testing.T) {
	econ := []entity.UnitEconomics{
		{TotalRevenue: decimal.NewFromInt(100), CAC: decimal.NewFromInt(100),
			LTV: decimal.NewFromInt(100), LTVCACRatio: 1, HealthScore: 1, Churned: true},
		{TotalRevenue: decimal.NewFromInt(300), CAC: decimal.NewFromInt(200),
			LTV: decimal.NewFromInt(300), LTVCACRatio: 1.5, HealthScore: 0.5},
	}

	s := Summarize(econ)
	assert.Equal(t, 2, s.CustomerCount)
	assert.Equal(t, 1, s.ChurnedCount)
	assert.InDelta(t, 0.5, s.ChurnRate, 1e-9)
	assert.Equal(t, "400.00", s.TotalRevenue.StringFixed(2))
	assert.Equal(t, "150.00", s.AvgCAC.StringFixed(2))
	assert.Equal(t, "200.00", s.AvgLTV.StringFixed(2))
	assert.InDelta(t, 1.25, s.AvgLTVCAC, 1e-9)
	assert.InDelta(t, 0.75, s.AvgHealthScore, 1e-9)
}
