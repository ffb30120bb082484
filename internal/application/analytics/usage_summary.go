package analytics

import (
	"sort"
	"time"

	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// MonthlyUsage agrega el stream de uso por mes calendario: total de
// eventos, clientes únicos y promedio de seats usados.
func MonthlyUsage(events []entity.UsageEvent) []entity.MonthlyUsageSummary {
	type acc struct {
		events    int
		seats     int
		customers map[string]struct{}
	}

	groups := make(map[time.Time]*acc)
	for _, e := range events {
		month := time.Date(e.Date.Year(), e.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		g := groups[month]
		if g == nil {
			g = &acc{customers: make(map[string]struct{})}
			groups[month] = g
		}
		g.events++
		g.seats += e.SeatsUsed
		g.customers[e.CustomerID] = struct{}{}
	}

	out := make([]entity.MonthlyUsageSummary, 0, len(groups))
	for month, g := range groups {
		out = append(out, entity.MonthlyUsageSummary{
			Month:           month,
			TotalEvents:     g.events,
			UniqueCustomers: len(g.customers),
			AvgSeatsUsed:    float64(g.seats) / float64(g.events),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// TopFeatures conteo de eventos por feature, de mayor a menor
// (desempate alfabético para mantener el orden determinista).
func TopFeatures(events []entity.UsageEvent) []entity.FeatureUsage {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Feature]++
	}

	out := make([]entity.FeatureUsage, 0, len(counts))
	for f, n := range counts {
		out = append(out, entity.FeatureUsage{Feature: f, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Feature < out[j].Feature
	})
	return out
}

// CustomerUsage resumen de uso por cliente, ordenado por ID.
// AvgDailyEvents se define 0 cuando no hay días activos.
func CustomerUsage(events []entity.UsageEvent) []entity.CustomerUsageSummary {
	type acc struct {
		events int
		seats  int
		days   map[string]struct{}
	}

	groups := make(map[string]*acc)
	for _, e := range events {
		g := groups[e.CustomerID]
		if g == nil {
			g = &acc{days: make(map[string]struct{})}
			groups[e.CustomerID] = g
		}
		g.events++
		g.seats += e.SeatsUsed
		g.days[e.Date.Format("2006-01-02")] = struct{}{}
	}

	out := make([]entity.CustomerUsageSummary, 0, len(groups))
	for id, g := range groups {
		s := entity.CustomerUsageSummary{
			CustomerID:       id,
			TotalEvents:      g.events,
			ActiveDays:       len(g.days),
			AvgSeatsPerEvent: float64(g.seats) / float64(g.events),
		}
		if s.ActiveDays > 0 {
			s.AvgDailyEvents = float64(s.TotalEvents) / float64(s.ActiveDays)
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}
