package synth

import (
	"time"

	"github.com/kpilab/saasmetrics/internal/domain/catalog"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// recurringAddonDays duración máxima de un add-on recurrente (10 años).
const recurringAddonDays = 3650

// attachAddons adjunta add-ons probabilísticamente a cada suscripción
// initial. La tasa de attachment se escala por el multiplicador del plan.
// Un add-on arranca 30-180 días después de la suscripción (se omite si eso
// lo dejaría fuera de la vida de la suscripción) y queda marcado one-time
// (fin = un día) o recurrente (fin = min(inicio+duración, fin del linaje),
// o abierto si el linaje sigue activo). Los add-ons nunca generan uso.
func (s *Synthesizer) attachAddons(subscriptions []entity.Subscription) []entity.Subscription {
	var addons []entity.Subscription

	for _, sub := range subscriptions {
		if sub.Kind != entity.SubscriptionInitial {
			continue
		}
		plan, ok := catalog.PlanByName(sub.PlanName)
		if !ok {
			continue
		}

		for _, addon := range catalog.Addons {
			if !s.rng.Bool(addon.AttachmentRate * plan.AddonMultiplier) {
				continue
			}

			start := sub.StartDate.AddDate(0, 0, s.rng.IntBetween(30, 180))
			if sub.EndDate != nil && start.After(*sub.EndDate) {
				continue
			}

			var end *time.Time
			switch {
			case addon.OneTime:
				e := start.AddDate(0, 0, 1)
				end = &e
			case sub.EndDate != nil:
				e := start.AddDate(0, 0, recurringAddonDays)
				if e.After(*sub.EndDate) {
					e = *sub.EndDate
				}
				end = &e
			default:
				// Linaje activo: el add-on recurrente queda abierto.
			}

			addons = append(addons, entity.Subscription{
				ID:           s.rng.UUID(),
				CustomerID:   sub.CustomerID,
				PlanName:     addon.Name,
				Billing:      sub.Billing,
				MonthlyPrice: addon.MonthlyPrice,
				Seats:        1,
				StartDate:    start,
				EndDate:      end,
				Kind:         entity.SubscriptionAddon,
			})
		}
	}

	return addons
}
