package entity

import "github.com/shopspring/decimal"

// UnitEconomics métricas derivadas por cliente, calculadas como
// post-proceso sobre pagos, uso y soporte. LTV = revenue total de
// pagos exitosos; los ratios con divisor 0 se definen como 0.
type UnitEconomics struct {
	CustomerID   string
	TotalRevenue decimal.Decimal
	CAC          decimal.Decimal
	LTV          decimal.Decimal
	LTVCACRatio  float64

	// ActiveMonths = días entre primera y última actividad de suscripción / 30.4, mínimo 1.
	ActiveMonths     float64
	MonthlyRevenue   decimal.Decimal
	CACPaybackMonths float64

	Churned bool

	// Insumos del health score.
	ActiveDays       int
	TotalUsageEvents int
	UsageScore       float64 // [0,1]
	AvgSentiment     float64 // [0,1]; 0.5 si el cliente no tiene tickets
	HealthScore      float64 // [0,1], reescalado por el máximo observado

	// Segmentación: plan y frecuencia de la suscripción inicial.
	InitialPlan    string
	InitialBilling string
}

// SegmentEconomics rollup de unit economics por
// industria × tamaño de empresa × plan inicial × frecuencia de facturación.
type SegmentEconomics struct {
	Industry       string
	CompanySize    string
	InitialPlan    string
	InitialBilling string

	AvgCAC           decimal.Decimal
	AvgLTV           decimal.Decimal
	AvgLTVCAC        float64
	AvgPaybackMonths float64
	AvgHealthScore   float64
	CustomerCount    int
}
