package entity

import "time"

// Pre-agregaciones de uso para consumo del dashboard: el stream crudo de
// usage events es el archivo más pesado del dataset, así que se exportan
// también resúmenes mensual, por feature y por cliente.

// MonthlyUsageSummary actividad agregada de un mes calendario.
type MonthlyUsageSummary struct {
	Month           time.Time // primer día del mes
	TotalEvents     int
	UniqueCustomers int
	AvgSeatsUsed    float64
}

// FeatureUsage conteo total de eventos por feature.
type FeatureUsage struct {
	Feature string
	Count   int
}

// CustomerUsageSummary resumen de uso por cliente.
type CustomerUsageSummary struct {
	CustomerID       string
	TotalEvents      int
	ActiveDays       int // días distintos con al menos un evento
	AvgSeatsPerEvent float64
	// AvgDailyEvents = TotalEvents / ActiveDays; 0 si no hay días activos.
	AvgDailyEvents float64
}
