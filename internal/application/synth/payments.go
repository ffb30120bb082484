package synth

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/kpilab/saasmetrics/internal/domain/catalog"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// maxPaymentCycles tope de ciclos de facturación por suscripción (10 años).
const maxPaymentCycles = 120

var twelve = decimal.NewFromInt(12)

// paymentEvents genera el stream de pagos de todas las suscripciones
// (add-ons incluidos). Los cobros caen en fronteras de ciclo calendario
// (+1 mes o +1 año desde el inicio) hasta el fin de la suscripción o el
// horizonte, acotados a maxPaymentCycles. Un add-on one-time genera
// exactamente un pago en su fecha de inicio.
func (s *Synthesizer) paymentEvents(subscriptions []entity.Subscription) []entity.Payment {
	var payments []entity.Payment

	for _, sub := range subscriptions {
		if sub.Kind == entity.SubscriptionAddon {
			if addon, ok := catalog.AddonByName(sub.PlanName); ok && addon.OneTime {
				payments = append(payments, entity.Payment{
					ID:             s.rng.UUID(),
					SubscriptionID: sub.ID,
					CustomerID:     sub.CustomerID,
					Date:           sub.StartDate,
					Amount:         sub.MonthlyPrice,
					Status:         entity.PaymentSuccessful,
					Method:         s.rng.Choice(catalog.PaymentMethods),
					Kind:           sub.Kind,
				})
				continue
			}
		}

		end := sub.ActiveThrough(s.p.End)
		if end.After(s.p.End) {
			end = s.p.End
		}

		for cycle := 0; cycle < maxPaymentCycles; cycle++ {
			var date time.Time
			if sub.Billing == entity.BillingAnnual {
				date = addMonthsClamped(sub.StartDate, 12*cycle)
			} else {
				date = addMonthsClamped(sub.StartDate, cycle)
			}
			if date.After(end) {
				break
			}

			method := s.rng.Choice(catalog.PaymentMethods)
			status := s.paymentStatus(method)

			amount := decimal.Zero
			if status == entity.PaymentSuccessful {
				amount = sub.MonthlyPrice
				if sub.Billing == entity.BillingAnnual {
					amount = amount.Mul(twelve)
				}
			}

			payments = append(payments, entity.Payment{
				ID:             s.rng.UUID(),
				SubscriptionID: sub.ID,
				CustomerID:     sub.CustomerID,
				Date:           date,
				Amount:         amount,
				Status:         status,
				Method:         method,
				Kind:           sub.Kind,
			})
		}
	}

	return payments
}

// addMonthsClamped suma meses calendario ajustando el día al último del mes
// destino cuando el día original no existe (31 de enero + 1 mes = 28 de
// febrero, no 2/3 de marzo como normaliza time.AddDate).
func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	day := t.Day()
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// paymentStatus sortea el estado según la tasa de éxito del método:
// refund fijo en RefundRate, el resto del residuo es fallo.
func (s *Synthesizer) paymentStatus(method string) string {
	success := catalog.PaymentSuccessRate[method]
	u := s.rng.Float64()
	switch {
	case u < success:
		return entity.PaymentSuccessful
	case u < success+catalog.RefundRate:
		return entity.PaymentRefunded
	default:
		return entity.PaymentFailed
	}
}
