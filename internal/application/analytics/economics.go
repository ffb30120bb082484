// Package analytics contiene el post-proceso del dataset generado:
// unit economics por cliente, rollup por segmento, resúmenes de uso y el
// caso de uso del dashboard de KPIs.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// daysPerMonth divisor convencional para convertir días a meses.
const daysPerMonth = 30.4

// Pesos del health score.
const (
	weightUsage     = 0.4
	weightSentiment = 0.3
	weightRetention = 0.2
	weightBudget    = 0.1
)

// neutralSentiment default documentado para clientes sin tickets.
const neutralSentiment = 0.5

// Aggregator deriva las métricas de unit economics por cliente.
// Política de defaults: conteos faltantes = 0, sentimiento desconocido =
// neutralSentiment, y toda división con divisor 0 se define como 0.
type Aggregator struct {
	horizon time.Time
}

// NewAggregator construye el agregador para el horizonte de simulación dado.
func NewAggregator(horizon time.Time) *Aggregator {
	return &Aggregator{horizon: horizon}
}

// UnitEconomics calcula las métricas derivadas de cada cliente, en el
// mismo orden del slice de clientes.
func (a *Aggregator) UnitEconomics(
	customers []entity.Customer,
	subscriptions []entity.Subscription,
	payments []entity.Payment,
	usage []entity.UsageEvent,
	support []entity.SupportInteraction,
) []entity.UnitEconomics {
	revenue := a.revenueByCustomer(payments)
	subsByCustomer := groupSubscriptions(subscriptions)
	usageStats := a.usageByCustomer(usage)
	sentiment := a.sentimentByCustomer(support)

	// Máximos observados para normalizar uso y presupuesto.
	var maxActiveDays, maxEvents int
	for _, st := range usageStats {
		if st.activeDays > maxActiveDays {
			maxActiveDays = st.activeDays
		}
		if st.totalEvents > maxEvents {
			maxEvents = st.totalEvents
		}
	}
	var maxBudget float64
	for _, c := range customers {
		if c.BudgetFactor > maxBudget {
			maxBudget = c.BudgetFactor
		}
	}

	result := make([]entity.UnitEconomics, 0, len(customers))
	var maxHealth float64

	for _, c := range customers {
		subs := subsByCustomer[c.ID]

		ue := entity.UnitEconomics{
			CustomerID:   c.ID,
			TotalRevenue: revenue[c.ID],
			CAC:          c.AcquisitionCost,
			AvgSentiment: neutralSentiment,
			ActiveMonths: 1,
		}
		ue.LTV = ue.TotalRevenue

		if ue.CAC.IsPositive() {
			ue.LTVCACRatio, _ = ue.LTV.Div(ue.CAC).Float64()
		}

		if len(subs) > 0 {
			first, last := activitySpan(subs, a.horizon)
			months := last.Sub(first).Hours() / 24 / daysPerMonth
			if months > 1 {
				ue.ActiveMonths = months
			}
			ue.Churned = churned(subs, a.horizon)

			initial := initialOf(subs)
			if initial != nil {
				ue.InitialPlan = initial.PlanName
				ue.InitialBilling = initial.Billing
			}
		}

		ue.MonthlyRevenue = ue.TotalRevenue.Div(decimal.NewFromFloat(ue.ActiveMonths)).Round(2)
		if ue.MonthlyRevenue.IsPositive() {
			ue.CACPaybackMonths, _ = ue.CAC.Div(ue.MonthlyRevenue).Float64()
		}

		if st, ok := usageStats[c.ID]; ok {
			ue.ActiveDays = st.activeDays
			ue.TotalUsageEvents = st.totalEvents
			ue.UsageScore = 0.5*ratio(st.activeDays, maxActiveDays) + 0.5*ratio(st.totalEvents, maxEvents)
		}

		if sc, ok := sentiment[c.ID]; ok {
			ue.AvgSentiment = sc
		}

		retention := 1.0
		if ue.Churned {
			retention = 0
		}
		budgetNorm := 0.0
		if maxBudget > 0 {
			budgetNorm = c.BudgetFactor / maxBudget
		}
		ue.HealthScore = weightUsage*ue.UsageScore +
			weightSentiment*ue.AvgSentiment +
			weightRetention*retention +
			weightBudget*budgetNorm
		if ue.HealthScore > maxHealth {
			maxHealth = ue.HealthScore
		}

		result = append(result, ue)
	}

	// Reescalar el health score a [0,1] por el máximo observado.
	if maxHealth > 0 {
		for i := range result {
			result[i].HealthScore /= maxHealth
		}
	}

	return result
}

// revenueByCustomer suma los pagos exitosos por cliente.
func (a *Aggregator) revenueByCustomer(payments []entity.Payment) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if p.Status != entity.PaymentSuccessful {
			continue
		}
		out[p.CustomerID] = out[p.CustomerID].Add(p.Amount)
	}
	return out
}

type usageStat struct {
	totalEvents int
	activeDays  int
}

// usageByCustomer cuenta eventos y días activos distintos por cliente.
func (a *Aggregator) usageByCustomer(usage []entity.UsageEvent) map[string]usageStat {
	days := make(map[string]map[string]struct{})
	counts := make(map[string]int)
	for _, e := range usage {
		counts[e.CustomerID]++
		d := days[e.CustomerID]
		if d == nil {
			d = make(map[string]struct{})
			days[e.CustomerID] = d
		}
		d[e.Date.Format("2006-01-02")] = struct{}{}
	}

	out := make(map[string]usageStat, len(counts))
	for id, n := range counts {
		out[id] = usageStat{totalEvents: n, activeDays: len(days[id])}
	}
	return out
}

// sentimentByCustomer promedia el score numérico de sentimiento
// (Positive=1, Neutral=0.5, Negative=0) por cliente.
func (a *Aggregator) sentimentByCustomer(support []entity.SupportInteraction) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, t := range support {
		var v float64
		switch t.Sentiment {
		case entity.SentimentPositive:
			v = 1.0
		case entity.SentimentNeutral:
			v = 0.5
		}
		sums[t.CustomerID] += v
		counts[t.CustomerID]++
	}

	out := make(map[string]float64, len(counts))
	for id, n := range counts {
		out[id] = sums[id] / float64(n)
	}
	return out
}

func groupSubscriptions(subs []entity.Subscription) map[string][]entity.Subscription {
	out := make(map[string][]entity.Subscription)
	for _, s := range subs {
		out[s.CustomerID] = append(out[s.CustomerID], s)
	}
	return out
}

// activitySpan primera y última actividad de suscripción del cliente.
func activitySpan(subs []entity.Subscription, horizon time.Time) (first, last time.Time) {
	first = subs[0].StartDate
	last = subs[0].ActiveThrough(horizon)
	for _, s := range subs[1:] {
		if s.StartDate.Before(first) {
			first = s.StartDate
		}
		if end := s.ActiveThrough(horizon); end.After(last) {
			last = end
		}
	}
	return first, last
}

// churned true si la última actividad del cliente terminó antes del horizonte.
func churned(subs []entity.Subscription, horizon time.Time) bool {
	var latest time.Time
	for _, s := range subs {
		if s.EndDate == nil {
			return false // algún linaje sigue activo
		}
		if s.EndDate.After(latest) {
			latest = *s.EndDate
		}
	}
	return latest.Before(horizon)
}

func initialOf(subs []entity.Subscription) *entity.Subscription {
	for i := range subs {
		if subs[i].Kind == entity.SubscriptionInitial {
			return &subs[i]
		}
	}
	return nil
}

func ratio(n, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(n) / float64(max)
}
