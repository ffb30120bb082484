package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
	"github.com/kpilab/saasmetrics/internal/domain/repository"
)

// MonthlyRevenue agrega los pagos exitosos por mes calendario.
func MonthlyRevenue(payments []entity.Payment) []repository.MonthlyRevenuePoint {
	revenue := make(map[time.Time]decimal.Decimal)
	counts := make(map[time.Time]int)
	for _, p := range payments {
		if p.Status != entity.PaymentSuccessful {
			continue
		}
		month := time.Date(p.Date.Year(), p.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		revenue[month] = revenue[month].Add(p.Amount)
		counts[month]++
	}

	out := make([]repository.MonthlyRevenuePoint, 0, len(revenue))
	for month, total := range revenue {
		out = append(out, repository.MonthlyRevenuePoint{
			Month:        month,
			Revenue:      total,
			PaymentCount: counts[month],
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}
