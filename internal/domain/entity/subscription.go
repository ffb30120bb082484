package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento de suscripción. Un cliente tiene a lo sumo una
// suscripción initial; los demás tipos la referencian en el tiempo
// (mismo linaje) y heredan su fecha de fin.
const (
	SubscriptionInitial       = "initial"
	SubscriptionSeatExpansion = "seat_expansion"
	SubscriptionPlanUpgrade   = "plan_upgrade"
	SubscriptionAddon         = "addon"
)

// Frecuencias de facturación.
const (
	BillingMonthly = "monthly"
	BillingAnnual  = "annual"
)

// Subscription representa un evento de suscripción: la contratación
// inicial, una expansión de seats, un upgrade de plan o un add-on.
type Subscription struct {
	ID           string
	CustomerID   string
	PlanName     string // nombre del plan, o del add-on para tipo addon
	Billing      string // monthly | annual
	MonthlyPrice decimal.Decimal // MRR efectivo (ya con descuento anual aplicado)
	Seats        int
	StartDate    time.Time
	// EndDate nil = activa hasta el fin del horizonte de simulación.
	// Una vez fijada por churn, los eventos de expansión del linaje la heredan sin cambios.
	EndDate     *time.Time
	Kind        string // initial | seat_expansion | plan_upgrade | addon
	ChurnReason string // vacío si no hubo churn
}

// ActiveThrough devuelve la fecha efectiva de fin: EndDate si existe, si no el horizonte.
func (s Subscription) ActiveThrough(horizon time.Time) time.Time {
	if s.EndDate != nil {
		return *s.EndDate
	}
	return horizon
}

// Churned indica si el linaje terminó antes del horizonte de simulación.
func (s Subscription) Churned(horizon time.Time) bool {
	return s.EndDate != nil && s.EndDate.Before(horizon)
}
