package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente sintético de la empresa SaaS ficticia.
// Se crea una vez por corrida y es inmutable; las métricas derivadas
// (LTV, churn, health) viven en UnitEconomics.
type Customer struct {
	ID                 string
	CompanyName        string
	ContactEmail       string
	Industry           string
	CompanySize        string // categoría: Startup (1-10) .. Enterprise (1000+)
	AcquisitionDate    time.Time
	AcquisitionChannel string
	AcquisitionCost    decimal.Decimal // CAC del cliente
	Geography          string

	// Tendencias derivadas del tamaño de empresa; gobiernan seats,
	// upgrades y volumen de soporte aguas abajo.
	SeatsTendency   float64
	UpgradeTendency float64
	BudgetFactor    float64

	HasTrial   bool
	TrialStart *time.Time
	TrialEnd   *time.Time

	// ReferredBy referencia informacional a otro cliente (puede haber ciclos).
	// Vacío = sin referido.
	ReferredBy string
}
