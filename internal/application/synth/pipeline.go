package synth

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// Params parámetros de una corrida de generación.
type Params struct {
	Seed          int64
	Start         time.Time // inicio del horizonte de simulación
	End           time.Time // fin del horizonte de simulación
	NumCustomers  int       // candidatos objetivo (el rechazo estacional produce menos)
	BaseUsageRate int       // eventos de uso base por mes antes de multiplicadores
}

// Dataset streams crudos producidos por una corrida.
type Dataset struct {
	Customers     []entity.Customer
	Subscriptions []entity.Subscription // initial + expansiones + upgrades + add-ons
	Payments      []entity.Payment
	UsageEvents   []entity.UsageEvent
	Support       []entity.SupportInteraction
}

// Synthesizer orquesta el pipeline de síntesis. Secuencial y determinista:
// misma seed, mismo dataset.
type Synthesizer struct {
	p     Params
	rng   *Rand
	faker *gofakeit.Faker
}

// New construye el sintetizador con su fuente de aleatoriedad sembrada.
func New(p Params) *Synthesizer {
	if p.BaseUsageRate <= 0 {
		p.BaseUsageRate = 50
	}
	return &Synthesizer{
		p:     p,
		rng:   NewRand(p.Seed),
		faker: gofakeit.New(uint64(p.Seed)),
	}
}

// Generate corre el pipeline completo:
// clientes → suscripciones → (add-ons, pagos, uso, soporte).
func (s *Synthesizer) Generate() *Dataset {
	customers := s.generateCustomers()

	subscriptions := make([]entity.Subscription, 0, len(customers)*2)
	core := make([]entity.Subscription, 0, len(customers)*2)
	for _, c := range customers {
		initial := s.initialSubscription(c)
		if initial == nil {
			// Adquirido demasiado tarde: sin suscripción dentro del horizonte.
			continue
		}
		lineage := append([]entity.Subscription{*initial}, s.expansionEvents(*initial, c)...)
		core = append(core, lineage...)
		subscriptions = append(subscriptions, lineage...)
	}

	addons := s.attachAddons(core)
	subscriptions = append(subscriptions, addons...)

	return &Dataset{
		Customers:     customers,
		Subscriptions: subscriptions,
		Payments:      s.paymentEvents(subscriptions),
		UsageEvents:   s.usageEvents(core),
		Support:       s.supportInteractions(customers),
	}
}
