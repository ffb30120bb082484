package synth

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpilab/saasmetrics/internal/domain/catalog"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// testParams corrida chica pero representativa para los tests de invariantes.
func testParams(seed int64) Params {
	return Params{
		Seed:          seed,
		Start:         time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		End:           time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		NumCustomers:  400,
		BaseUsageRate: 20,
	}
}

func generateDataset(t *testing.T, seed int64) *Dataset {
	t.Helper()
	ds := New(testParams(seed)).Generate()
	require.NotEmpty(t, ds.Customers)
	require.NotEmpty(t, ds.Subscriptions)
	return ds
}

func coreByCustomer(ds *Dataset) map[string][]entity.Subscription {
	out := make(map[string][]entity.Subscription)
	for _, sub := range ds.Subscriptions {
		if sub.Kind == entity.SubscriptionAddon {
			continue
		}
		out[sub.CustomerID] = append(out[sub.CustomerID], sub)
	}
	return out
}

func TestGenerate_UnaInicialPorClienteYPrimeraDelLinaje(t *testing.T) {
	ds := generateDataset(t, 42)

	for customerID, lineage := range coreByCustomer(ds) {
		var initials []entity.Subscription
		for _, sub := range lineage {
			if sub.Kind == entity.SubscriptionInitial {
				initials = append(initials, sub)
			}
		}
		require.Len(t, initials, 1, "cliente %s debe tener exactamente una inicial", customerID)

		for _, sub := range lineage {
			assert.False(t, sub.StartDate.Before(initials[0].StartDate),
				"evento %s empieza antes que la inicial", sub.Kind)
		}
	}
}

func TestGenerate_SeatsDentroDelRangoDelPlan(t *testing.T) {
	ds := generateDataset(t, 42)

	for _, sub := range ds.Subscriptions {
		if sub.Kind == entity.SubscriptionAddon {
			continue
		}
		plan, ok := catalog.PlanByName(sub.PlanName)
		require.True(t, ok, "plan desconocido %q", sub.PlanName)
		assert.GreaterOrEqual(t, sub.Seats, 1)
		assert.LessOrEqual(t, sub.Seats, plan.MaxSeats)
	}
}

func TestGenerate_PrecioMonotonoDentroDelLinaje(t *testing.T) {
	ds := generateDataset(t, 42)

	for customerID, lineage := range coreByCustomer(ds) {
		sort.Slice(lineage, func(i, j int) bool {
			return lineage[i].StartDate.Before(lineage[j].StartDate)
		})
		for i := 1; i < len(lineage); i++ {
			assert.True(t, lineage[i].MonthlyPrice.GreaterThan(lineage[i-1].MonthlyPrice),
				"cliente %s: el precio debe subir estrictamente en cada evento (%s -> %s)",
				customerID, lineage[i-1].MonthlyPrice, lineage[i].MonthlyPrice)
		}
	}
}

func TestGenerate_ExpansionesHeredanFechaDeFin(t *testing.T) {
	ds := generateDataset(t, 42)

	for _, lineage := range coreByCustomer(ds) {
		var initial *entity.Subscription
		for i := range lineage {
			if lineage[i].Kind == entity.SubscriptionInitial {
				initial = &lineage[i]
				break
			}
		}
		require.NotNil(t, initial)

		for _, sub := range lineage {
			if sub.Kind == entity.SubscriptionInitial {
				continue
			}
			if initial.EndDate == nil {
				assert.Nil(t, sub.EndDate, "linaje activo: la expansión no puede tener fin")
			} else {
				require.NotNil(t, sub.EndDate)
				assert.True(t, sub.EndDate.Equal(*initial.EndDate),
					"la expansión debe heredar el fin del linaje sin cambios")
			}
			assert.Equal(t, initial.Billing, sub.Billing)
		}
	}
}

func TestGenerate_FechasDentroDelHorizonte(t *testing.T) {
	p := testParams(42)
	ds := New(p).Generate()

	for _, sub := range ds.Subscriptions {
		assert.False(t, sub.StartDate.After(p.End), "inicio fuera del horizonte")
		if sub.EndDate != nil {
			assert.False(t, sub.EndDate.Before(sub.StartDate), "fin antes del inicio")
		}
	}
	for _, c := range ds.Customers {
		assert.False(t, c.AcquisitionDate.Before(p.Start))
		assert.False(t, c.AcquisitionDate.After(p.End))
	}
}

func TestGenerate_MismaSeedMismoDataset(t *testing.T) {
	a := New(testParams(7)).Generate()
	b := New(testParams(7)).Generate()

	assert.Equal(t, a.Customers, b.Customers)
	assert.Equal(t, a.Subscriptions, b.Subscriptions)
	assert.Equal(t, a.Payments, b.Payments)
	assert.Equal(t, a.UsageEvents, b.UsageEvents)
	assert.Equal(t, a.Support, b.Support)
}

func TestGenerate_SeedsDistintasDatasetsDistintos(t *testing.T) {
	a := New(testParams(7)).Generate()
	b := New(testParams(8)).Generate()

	assert.NotEqual(t, a.Customers, b.Customers)
}
