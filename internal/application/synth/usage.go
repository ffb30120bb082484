package synth

import (
	"math"
	"time"

	"github.com/kpilab/saasmetrics/internal/domain/catalog"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// usageEvents genera eventos de uso para suscripciones initial,
// seat_expansion y plan_upgrade (los add-ons nunca producen uso; el slice
// de entrada ya viene filtrado a linajes core). El objetivo mensual es
// max(10, round(base × multiplicador_plan × ln(seats+1))), repartido por
// día con un draw Poisson de media objetivo/días_del_mes.
func (s *Synthesizer) usageEvents(core []entity.Subscription) []entity.UsageEvent {
	var events []entity.UsageEvent

	for _, sub := range core {
		if sub.Kind == entity.SubscriptionAddon {
			continue
		}
		plan, ok := catalog.PlanByName(sub.PlanName)
		if !ok {
			continue
		}

		target := math.Round(float64(s.p.BaseUsageRate) * plan.UsageMultiplier * math.Log(float64(sub.Seats)+1))
		monthlyTarget := math.Max(10, target)

		features, weights := catalog.FeatureWeights(plan)

		end := sub.ActiveThrough(s.p.End)
		if end.After(s.p.End) {
			end = s.p.End
		}

		month := time.Date(sub.StartDate.Year(), sub.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !month.After(end) {
			days := daysInMonth(month.Year(), month.Month())
			dailyMean := monthlyTarget / float64(days)

			for day := 1; day <= days; day++ {
				n := s.rng.Poisson(dailyMean)
				for i := 0; i < n; i++ {
					ts := time.Date(month.Year(), month.Month(), day,
						s.rng.IntBetween(0, 23), s.rng.IntBetween(0, 59), 0, 0, time.UTC)
					if ts.Before(sub.StartDate) || ts.After(end) {
						continue
					}

					events = append(events, entity.UsageEvent{
						ID:             s.rng.UUID(),
						CustomerID:     sub.CustomerID,
						SubscriptionID: sub.ID,
						Date:           ts,
						EventType:      "feature_used",
						Feature:        features[s.rng.WeightedIndex(weights)],
						SeatsUsed:      s.seatsUsed(sub.Seats),
					})
				}
			}

			month = month.AddDate(0, 1, 0)
		}
	}

	return events
}

// seatsUsed sortea cuántos seats participaron del evento: cota superior
// sesgada con Beta(0.8, 1.5) sobre el total de seats, luego uniforme en
// [1, cota]. Nunca excede los seats de la suscripción.
func (s *Synthesizer) seatsUsed(seats int) int {
	upper := int(float64(seats) * s.rng.Beta(0.8, 1.5))
	if upper > seats {
		upper = seats
	}
	if upper < 1 {
		upper = 1
	}
	return s.rng.IntBetween(1, upper)
}
