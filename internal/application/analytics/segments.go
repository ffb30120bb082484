package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
	"github.com/kpilab/saasmetrics/internal/domain/repository"
)

// SegmentRollup agrupa las unit economics por
// industria × tamaño de empresa × plan inicial × frecuencia de facturación
// y promedia las métricas de cada grupo. El orden de salida es
// determinista (orden lexicográfico de la clave de segmento).
func SegmentRollup(customers []entity.Customer, econ []entity.UnitEconomics) []entity.SegmentEconomics {
	industry := make(map[string]string, len(customers))
	size := make(map[string]string, len(customers))
	for _, c := range customers {
		industry[c.ID] = c.Industry
		size[c.ID] = c.CompanySize
	}

	type key struct{ industry, size, plan, billing string }
	type acc struct {
		cac, ltv         decimal.Decimal
		ltvcac, payback  float64
		health           float64
		count            int
	}

	groups := make(map[key]*acc)
	for _, ue := range econ {
		if ue.InitialPlan == "" {
			// Cliente sin suscripción dentro del horizonte: no hay segmento
			// plan/frecuencia al que asignarlo.
			continue
		}
		k := key{industry[ue.CustomerID], size[ue.CustomerID], ue.InitialPlan, ue.InitialBilling}
		g := groups[k]
		if g == nil {
			g = &acc{}
			groups[k] = g
		}
		g.cac = g.cac.Add(ue.CAC)
		g.ltv = g.ltv.Add(ue.LTV)
		g.ltvcac += ue.LTVCACRatio
		g.payback += ue.CACPaybackMonths
		g.health += ue.HealthScore
		g.count++
	}

	segments := make([]entity.SegmentEconomics, 0, len(groups))
	for k, g := range groups {
		n := decimal.NewFromInt(int64(g.count))
		fn := float64(g.count)
		segments = append(segments, entity.SegmentEconomics{
			Industry:         k.industry,
			CompanySize:      k.size,
			InitialPlan:      k.plan,
			InitialBilling:   k.billing,
			AvgCAC:           g.cac.Div(n).Round(2),
			AvgLTV:           g.ltv.Div(n).Round(2),
			AvgLTVCAC:        g.ltvcac / fn,
			AvgPaybackMonths: g.payback / fn,
			AvgHealthScore:   g.health / fn,
			CustomerCount:    g.count,
		})
	}

	sort.Slice(segments, func(i, j int) bool {
		a, b := segments[i], segments[j]
		if a.Industry != b.Industry {
			return a.Industry < b.Industry
		}
		if a.CompanySize != b.CompanySize {
			return a.CompanySize < b.CompanySize
		}
		if a.InitialPlan != b.InitialPlan {
			return a.InitialPlan < b.InitialPlan
		}
		return a.InitialBilling < b.InitialBilling
	})

	return segments
}

// Summarize condensa las unit economics en los KPIs globales del dashboard.
func Summarize(econ []entity.UnitEconomics) *repository.DashboardSummary {
	s := &repository.DashboardSummary{CustomerCount: len(econ)}
	if len(econ) == 0 {
		return s
	}

	var ltvcac, payback, health float64
	for _, ue := range econ {
		s.TotalRevenue = s.TotalRevenue.Add(ue.TotalRevenue)
		s.AvgCAC = s.AvgCAC.Add(ue.CAC)
		s.AvgLTV = s.AvgLTV.Add(ue.LTV)
		ltvcac += ue.LTVCACRatio
		payback += ue.CACPaybackMonths
		health += ue.HealthScore
		if ue.Churned {
			s.ChurnedCount++
		}
	}

	n := decimal.NewFromInt(int64(len(econ)))
	fn := float64(len(econ))
	s.AvgCAC = s.AvgCAC.Div(n).Round(2)
	s.AvgLTV = s.AvgLTV.Div(n).Round(2)
	s.AvgLTVCAC = ltvcac / fn
	s.AvgPaybackMonths = payback / fn
	s.AvgHealthScore = health / fn
	s.ChurnRate = float64(s.ChurnedCount) / fn

	return s
}
