package synth

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/kpilab/saasmetrics/internal/domain/catalog"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// generateCustomers produce hasta NumCustomers clientes. El muestreo por
// rechazo está acotado: un intento por candidato, nunca un loop abierto.
// Se rechaza un candidato si su fecha cae fuera del horizonte o si falla
// el test estacional de aceptación (probabilidad factor/2).
func (s *Synthesizer) generateCustomers() []entity.Customer {
	customers := make([]entity.Customer, 0, s.p.NumCustomers)

	for i := 0; i < s.p.NumCustomers; i++ {
		year := s.rng.IntBetween(s.p.Start.Year(), s.p.End.Year())
		month := s.rng.IntBetween(1, 12)
		day := s.rng.IntBetween(1, daysInMonth(year, time.Month(month)))
		acquired := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

		if acquired.Before(s.p.Start) || acquired.After(s.p.End) {
			continue
		}
		if s.rng.Float64() > catalog.SeasonalAcquisition[month]/2 {
			continue
		}

		size := catalog.CompanySizes[s.rng.Intn(len(catalog.CompanySizes))]
		factors := catalog.SizeFactors[size]
		channel := catalog.AcquisitionChannels[s.rng.Intn(len(catalog.AcquisitionChannels))]

		cost := math.Max(50, s.rng.Normal(catalog.ChannelBaseCAC[channel]*factors.CACMultiplier, 50))

		c := entity.Customer{
			ID:                 s.rng.UUID(),
			CompanyName:        s.faker.Company(),
			ContactEmail:       s.faker.Email(),
			Industry:           catalog.Industries[s.rng.Intn(len(catalog.Industries))],
			CompanySize:        size,
			AcquisitionDate:    acquired,
			AcquisitionChannel: channel,
			AcquisitionCost:    decimal.NewFromFloat(cost).Round(2),
			Geography:          catalog.Geographies[s.rng.Intn(len(catalog.Geographies))],
			SeatsTendency:      factors.SeatsTendency,
			UpgradeTendency:    factors.UpgradeTendency,
			BudgetFactor:       factors.Budget,
		}

		// 30% de los clientes pasaron por trial; arranca 1-7 días antes de
		// la adquisición y puede extenderse más allá de ella (la suscripción
		// inicial se corre hasta después del fin del trial).
		if s.rng.Bool(0.3) {
			duration := s.rng.IntBetween(7, 30)
			offset := s.rng.IntBetween(1, 7)
			start := acquired.AddDate(0, 0, -offset)
			end := start.AddDate(0, 0, duration)
			c.HasTrial = true
			c.TrialStart = &start
			c.TrialEnd = &end
		}

		customers = append(customers, c)
	}

	// Referidos se asignan al final, sobre el conjunto completo de IDs:
	// 70% sin referido, 30% uniforme entre los generados. El campo es
	// informacional; los ciclos (incluida la auto-referencia) son válidos.
	for i := range customers {
		if s.rng.Bool(0.3) {
			customers[i].ReferredBy = customers[s.rng.Intn(len(customers))].ID
		}
	}

	return customers
}

// daysInMonth días del mes calendario.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
