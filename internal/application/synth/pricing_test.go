package synth

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpilab/saasmetrics/internal/domain/catalog"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

func mustPlan(t *testing.T, name string) catalog.Plan {
	t.Helper()
	plan, ok := catalog.PlanByName(name)
	require.True(t, ok, "plan %s debe existir en el catálogo", name)
	return plan
}

func TestEffectiveMonthlyPrice_ProfessionalMensual(t *testing.T) {
	plan := mustPlan(t, "Professional")

	// 49 base + 2 seats adicionales × 15 = 79
	price := EffectiveMonthlyPrice(plan, 3, entity.BillingMonthly)
	assert.Equal(t, "79.00", price.StringFixed(2))
}

func TestEffectiveMonthlyPrice_ProfessionalAnual(t *testing.T) {
	plan := mustPlan(t, "Professional")

	// 79 × (1 - 0.15) = 67.15
	price := EffectiveMonthlyPrice(plan, 3, entity.BillingAnnual)
	assert.Equal(t, "67.15", price.StringFixed(2))
}

func TestEffectiveMonthlyPrice_PrimerSeatIncluido(t *testing.T) {
	plan := mustPlan(t, "Professional")

	// Con 1 seat no hay cargo por seat: solo el precio base.
	price := EffectiveMonthlyPrice(plan, 1, entity.BillingMonthly)
	assert.Equal(t, "49.00", price.StringFixed(2))
}

func TestEffectiveMonthlyPrice_StarterIgnoraSeats(t *testing.T) {
	plan := mustPlan(t, "Starter")

	// Starter tiene per-seat 0: el precio no depende de los seats.
	for _, seats := range []int{1, 2, 5} {
		price := EffectiveMonthlyPrice(plan, seats, entity.BillingMonthly)
		assert.Equal(t, "29.00", price.StringFixed(2), "seats=%d", seats)
	}
}

func TestEffectiveMonthlyPrice_SeatsPorEncimaDelTope(t *testing.T) {
	plan := mustPlan(t, "Professional")

	// Seats por encima de MaxSeats cobran como MaxSeats.
	atMax := EffectiveMonthlyPrice(plan, plan.MaxSeats, entity.BillingMonthly)
	overMax := EffectiveMonthlyPrice(plan, plan.MaxSeats+40, entity.BillingMonthly)
	assert.True(t, atMax.Equal(overMax), "esperado %s, obtenido %s", atMax, overMax)
}

func TestEffectiveMonthlyPrice_DescuentoAnualPorPlan(t *testing.T) {
	// Facturar anual aplica el descuento del plan sobre la cifra mensual.
	for _, plan := range catalog.Plans {
		monthly := EffectiveMonthlyPrice(plan, 10, entity.BillingMonthly)
		annual := EffectiveMonthlyPrice(plan, 10, entity.BillingAnnual)

		want := monthly.Mul(decimal.NewFromFloat(1 - plan.AnnualDiscount))
		assert.True(t, annual.Equal(want), "plan %s: esperaba %s, obtuvo %s", plan.Name, want, annual)
		assert.True(t, annual.LessThan(monthly), "plan %s: anual debe ser más barato", plan.Name)
	}
}
