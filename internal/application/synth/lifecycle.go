package synth

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/kpilab/saasmetrics/internal/domain/catalog"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// maxChurnMonths tope de la simulación mes a mes de churn (10 años);
// quien sobrevive se considera activo hasta el fin del horizonte.
const maxChurnMonths = 120

// initialSubscription crea la suscripción inicial de un cliente, o nil si
// el inicio (adquisición + delay + trial) cae después del horizonte.
func (s *Synthesizer) initialSubscription(c entity.Customer) *entity.Subscription {
	plan := s.pickInitialPlan(c.CompanySize)

	seats := int(math.Round(s.rng.Exponential(2) * c.SeatsTendency))
	if seats < 1 {
		seats = 1
	}
	if seats > plan.MaxSeats {
		seats = plan.MaxSeats
	}

	billing := s.pickBilling(c.CompanySize)
	price := EffectiveMonthlyPrice(plan, seats, billing)

	start := c.AcquisitionDate.AddDate(0, 0, int(s.rng.Exponential(7)))
	if c.HasTrial && c.TrialEnd != nil && start.Before(*c.TrialEnd) {
		start = c.TrialEnd.AddDate(0, 0, 1)
	}
	if start.After(s.p.End) {
		return nil
	}

	end, reason := s.churnDate(start, plan)

	return &entity.Subscription{
		ID:           s.rng.UUID(),
		CustomerID:   c.ID,
		PlanName:     plan.Name,
		Billing:      billing,
		MonthlyPrice: price,
		Seats:        seats,
		StartDate:    start,
		EndDate:      end,
		Kind:         entity.SubscriptionInitial,
		ChurnReason:  reason,
	}
}

// pickInitialPlan distribución de plan condicionada al tamaño de empresa.
func (s *Synthesizer) pickInitialPlan(size string) catalog.Plan {
	var name string
	switch size {
	case "Startup (1-10)", "Small (11-50)":
		if s.rng.Bool(0.6) {
			name = "Starter"
		} else {
			name = "Professional"
		}
	case "Medium (51-200)":
		if s.rng.Bool(0.5) {
			name = "Professional"
		} else {
			name = "Business"
		}
	default: // Large y Enterprise
		if s.rng.Bool(0.4) {
			name = "Business"
		} else {
			name = "Enterprise"
		}
	}
	plan, _ := catalog.PlanByName(name)
	return plan
}

// pickBilling frecuencia de facturación; Enterprise se inclina a anual.
func (s *Synthesizer) pickBilling(size string) string {
	annualP := 0.4
	if size == "Enterprise (1000+)" {
		annualP = 0.8
	}
	if s.rng.Bool(annualP) {
		return entity.BillingAnnual
	}
	return entity.BillingMonthly
}

// churnDate simula la supervivencia mes a mes desde start. La probabilidad
// mensual es base_churn × factor estacional del mes. Devuelve (nil, "") si
// el cliente sigue activo al fin del horizonte o tras maxChurnMonths meses.
func (s *Synthesizer) churnDate(start time.Time, plan catalog.Plan) (*time.Time, string) {
	current := start
	for i := 0; i < maxChurnMonths; i++ {
		if current.After(s.p.End) {
			return nil, ""
		}

		monthly := plan.BaseChurnRate * catalog.SeasonalChurn[current.Month()]
		if s.rng.Float64() < monthly {
			// Churn: último día del mes en curso, sin exceder el horizonte.
			end := time.Date(current.Year(), current.Month()+1, 0, 0, 0, 0, 0, time.UTC)
			if end.After(s.p.End) {
				end = s.p.End
			}
			return &end, s.rng.Choice(catalog.ChurnReasons)
		}

		current = time.Date(current.Year(), current.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	}
	return nil, ""
}

// expansionEvents genera expansiones de seats y upgrades de plan a partir
// de la suscripción inicial. El reloj avanza en saltos de 60-180 días; cada
// evento aceptado solo se materializa si el precio recalculado supera
// estrictamente al vigente, hereda la fecha de fin y frecuencia del linaje,
// y actualiza el estado corriente (plan/seats/precio) para los chequeos
// siguientes.
func (s *Synthesizer) expansionEvents(initial entity.Subscription, c entity.Customer) []entity.Subscription {
	var events []entity.Subscription

	effectiveEnd := initial.ActiveThrough(s.p.End)
	clock := initial.StartDate

	plan, ok := catalog.PlanByName(initial.PlanName)
	if !ok {
		return nil
	}
	seats := initial.Seats
	price := initial.MonthlyPrice

	for clock.Before(effectiveEnd) {
		clock = clock.AddDate(0, 0, s.rng.IntBetween(60, 180))
		if !clock.Before(effectiveEnd) {
			break
		}

		month := clock.Month()
		expansionFactor := catalog.SeasonalExpansion[month]
		upgradeFactor := catalog.SeasonalUpgrades[month]

		if s.rng.Bool(0.3 * expansionFactor * c.SeatsTendency) {
			newSeats := seats + s.rng.IntBetween(1, 5)
			if newSeats > plan.MaxSeats {
				newSeats = plan.MaxSeats
			}
			if newSeats <= seats {
				continue
			}
			newPrice := EffectiveMonthlyPrice(plan, newSeats, initial.Billing)
			if !newPrice.GreaterThan(price) {
				continue
			}
			events = append(events, s.lineageEvent(initial, c.ID, plan.Name, newSeats, newPrice, clock, entity.SubscriptionSeatExpansion))
			seats = newSeats
			price = newPrice
		} else if s.rng.Bool(0.15 * upgradeFactor * c.UpgradeTendency) {
			next, ok := catalog.NextPlan(plan.Name)
			if !ok {
				continue // ya está en el tope
			}
			newSeats := seats
			if newSeats > next.MaxSeats {
				newSeats = next.MaxSeats
			}
			newPrice := EffectiveMonthlyPrice(next, newSeats, initial.Billing)
			if !newPrice.GreaterThan(price) {
				continue
			}
			events = append(events, s.lineageEvent(initial, c.ID, next.Name, newSeats, newPrice, clock, entity.SubscriptionPlanUpgrade))
			plan = next
			seats = newSeats
			price = newPrice
		}
	}

	return events
}

// lineageEvent arma un evento de expansión/upgrade heredando fin de
// suscripción, frecuencia y razón de churn del linaje inicial.
func (s *Synthesizer) lineageEvent(
	initial entity.Subscription,
	customerID, planName string,
	seats int,
	price decimal.Decimal,
	start time.Time,
	kind string,
) entity.Subscription {
	var end *time.Time
	if initial.EndDate != nil {
		e := *initial.EndDate
		end = &e
	}
	return entity.Subscription{
		ID:           s.rng.UUID(),
		CustomerID:   customerID,
		PlanName:     planName,
		Billing:      initial.Billing,
		MonthlyPrice: price,
		Seats:        seats,
		StartDate:    start,
		EndDate:      end,
		Kind:         kind,
		ChurnReason:  initial.ChurnReason,
	}
}
