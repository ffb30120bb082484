package synth

import (
	"github.com/shopspring/decimal"
	"github.com/kpilab/saasmetrics/internal/domain/catalog"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// EffectiveMonthlyPrice calcula el MRR efectivo de una suscripción:
// base del plan más seats adicionales (el primero no cobra), con el
// descuento anual aplicado directamente a la cifra mensual. La factura
// anual es este valor × 12.
//
// La fórmula se aplica idéntica en la contratación inicial, expansiones
// y upgrades; junto con la regla "solo se emite un evento si el precio
// sube", mantiene el precio monótono no decreciente dentro de un linaje.
func EffectiveMonthlyPrice(plan catalog.Plan, seats int, billing string) decimal.Decimal {
	price := plan.BasePrice
	if seats > 1 {
		additional := seats - 1
		if additional > plan.MaxSeats-1 {
			additional = plan.MaxSeats - 1
		}
		price = price.Add(plan.PerSeatPrice.Mul(decimal.NewFromInt(int64(additional))))
	}

	if billing == entity.BillingAnnual {
		price = price.Mul(decimal.NewFromFloat(1 - plan.AnnualDiscount))
	}
	return price
}
