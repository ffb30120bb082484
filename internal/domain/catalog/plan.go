// Package catalog contiene la configuración estática del negocio SaaS
// ficticio: planes, add-ons, estacionalidad, canales de adquisición y
// tablas de probabilidad. Todo es dato puro de lookup, sin comportamiento;
// el orden de los slices es significativo (upgrades avanzan al siguiente
// plan, y la iteración ordenada mantiene el determinismo de la corrida).
package catalog

import "github.com/shopspring/decimal"

// Plan define un tier de suscripción.
type Plan struct {
	Name           string
	BasePrice      decimal.Decimal // precio base mensual
	PerSeatPrice   decimal.Decimal // por seat adicional (0 = precio fijo)
	MaxSeats       int
	AnnualDiscount float64 // fracción de descuento al facturar anual
	BaseChurnRate  float64 // probabilidad base de churn mensual
	Features       []string

	// Multiplicadores derivados del tier.
	UsageMultiplier float64 // escala el volumen de usage events
	AddonMultiplier float64 // escala las tasas de attachment de add-ons
}

// Plans catálogo ordenado de menor a mayor tier; un upgrade pasa al índice siguiente.
var Plans = []Plan{
	{
		Name:            "Starter",
		BasePrice:       decimal.NewFromInt(29),
		PerSeatPrice:    decimal.NewFromInt(0),
		MaxSeats:        5,
		AnnualDiscount:  0.10,
		BaseChurnRate:   0.10,
		Features:        []string{"basic_analytics", "email_support"},
		UsageMultiplier: 0.5,
		AddonMultiplier: 0.5,
	},
	{
		Name:            "Professional",
		BasePrice:       decimal.NewFromInt(49),
		PerSeatPrice:    decimal.NewFromInt(15),
		MaxSeats:        50,
		AnnualDiscount:  0.15,
		BaseChurnRate:   0.06,
		Features:        []string{"advanced_analytics", "integrations", "phone_support"},
		UsageMultiplier: 1.0,
		AddonMultiplier: 1.0,
	},
	{
		Name:            "Business",
		BasePrice:       decimal.NewFromInt(99),
		PerSeatPrice:    decimal.NewFromInt(25),
		MaxSeats:        200,
		AnnualDiscount:  0.20,
		BaseChurnRate:   0.04,
		Features:        []string{"custom_dashboards", "api_access", "dedicated_support"},
		UsageMultiplier: 1.8,
		AddonMultiplier: 1.5,
	},
	{
		Name:            "Enterprise",
		BasePrice:       decimal.NewFromInt(299),
		PerSeatPrice:    decimal.NewFromInt(35),
		MaxSeats:        1000,
		AnnualDiscount:  0.25,
		BaseChurnRate:   0.02,
		Features:        []string{"white_label", "sso", "custom_integrations", "customer_success_manager"},
		UsageMultiplier: 3.0,
		AddonMultiplier: 2.0,
	},
}

// PlanByName busca un plan por nombre.
func PlanByName(name string) (Plan, bool) {
	for _, p := range Plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}

// NextPlan devuelve el tier inmediatamente superior, o false si ya es el tope.
func NextPlan(name string) (Plan, bool) {
	for i, p := range Plans {
		if p.Name == name {
			if i+1 < len(Plans) {
				return Plans[i+1], true
			}
			return Plan{}, false
		}
	}
	return Plan{}, false
}

// HasFeature indica si el plan incluye la feature.
func (p Plan) HasFeature(feature string) bool {
	for _, f := range p.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Addon producto adicional adjuntable a una suscripción inicial.
type Addon struct {
	Name           string
	MonthlyPrice   decimal.Decimal
	AttachmentRate float64
	OneTime        bool // true = cargo único, genera un solo pago
}

// Addons catálogo ordenado de add-ons.
var Addons = []Addon{
	{Name: "advanced_reporting", MonthlyPrice: decimal.NewFromInt(50), AttachmentRate: 0.3},
	{Name: "api_premium", MonthlyPrice: decimal.NewFromInt(100), AttachmentRate: 0.15},
	{Name: "data_export", MonthlyPrice: decimal.NewFromInt(25), AttachmentRate: 0.4},
	{Name: "priority_support", MonthlyPrice: decimal.NewFromInt(75), AttachmentRate: 0.2},
	{Name: "custom_integrations", MonthlyPrice: decimal.NewFromInt(200), AttachmentRate: 0.1},
	{Name: "training_package", MonthlyPrice: decimal.NewFromInt(500), AttachmentRate: 0.05, OneTime: true},
}

// AddonByName busca un add-on por nombre.
func AddonByName(name string) (Addon, bool) {
	for _, a := range Addons {
		if a.Name == name {
			return a, true
		}
	}
	return Addon{}, false
}
