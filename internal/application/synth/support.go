package synth

import (
	"math"

	"github.com/kpilab/saasmetrics/internal/domain/catalog"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// supportInteractions genera tickets de soporte por cliente. El volumen
// sigue Poisson(1.5 / budget_factor): a mayor presupuesto, menos fricción.
// El sentimiento queda correlacionado con el estado y la velocidad de
// resolución (resolución rápida sesga positivo; pendiente/escalado, negativo).
func (s *Synthesizer) supportInteractions(customers []entity.Customer) []entity.SupportInteraction {
	var interactions []entity.SupportInteraction

	horizonDays := int(s.p.End.Sub(s.p.Start).Hours() / 24)

	for _, c := range customers {
		count := s.rng.Poisson(1.5 / c.BudgetFactor)

		for i := 0; i < count; i++ {
			date := s.p.Start.AddDate(0, 0, s.rng.IntBetween(0, horizonDays))
			category := s.rng.Choice(catalog.IssueCategories)
			status := s.resolutionStatus()

			var hours *float64
			if status == entity.SupportResolved {
				h := math.Max(0.5, s.rng.Normal(catalog.BaseResolutionHours[category], 2))
				hours = &h
			}

			rating, score := s.sentiment(status, hours)

			interactions = append(interactions, entity.SupportInteraction{
				ID:              s.rng.UUID(),
				CustomerID:      c.ID,
				Date:            date,
				IssueCategory:   category,
				Status:          status,
				ResolutionHours: hours,
				Sentiment:       rating,
				SentimentScore:  score,
			})
		}
	}

	return interactions
}

// resolutionStatus distribución fija: Resolved 0.85, Pending 0.10, Escalated 0.05.
func (s *Synthesizer) resolutionStatus() string {
	u := s.rng.Float64()
	switch {
	case u < 0.85:
		return entity.SupportResolved
	case u < 0.95:
		return entity.SupportPending
	default:
		return entity.SupportEscalated
	}
}

// sentiment sortea calificación y score según estado y horas de resolución.
func (s *Synthesizer) sentiment(status string, hours *float64) (string, float64) {
	switch {
	case status == entity.SupportResolved && hours != nil && *hours < 4:
		rating := entity.SentimentNeutral
		if s.rng.Bool(0.7) {
			rating = entity.SentimentPositive
		}
		return rating, s.rng.UniformRange(0.7, 1.0)

	case status == entity.SupportResolved:
		u := s.rng.Float64()
		rating := entity.SentimentNegative
		if u < 0.4 {
			rating = entity.SentimentPositive
		} else if u < 0.9 {
			rating = entity.SentimentNeutral
		}
		return rating, s.rng.UniformRange(0.4, 0.8)

	default: // Pending o Escalated
		rating := entity.SentimentNegative
		if s.rng.Bool(0.3) {
			rating = entity.SentimentNeutral
		}
		return rating, s.rng.UniformRange(0.0, 0.5)
	}
}
