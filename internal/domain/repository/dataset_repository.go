package repository

import (
	"context"

	"github.com/kpilab/saasmetrics/internal/domain/entity"
)

// DatasetSnapshot resultado completo de una corrida de generación,
// listo para persistir como un reemplazo atómico del dataset anterior.
type DatasetSnapshot struct {
	Customers     []entity.Customer
	Subscriptions []entity.Subscription
	Payments      []entity.Payment
	UsageEvents   []entity.UsageEvent
	Support       []entity.SupportInteraction
	UnitEconomics []entity.UnitEconomics
	Segments      []entity.SegmentEconomics
}

// DatasetRepository sink de persistencia del dataset generado.
type DatasetRepository interface {
	// InitSchema crea las tablas si no existen.
	InitSchema(ctx context.Context) error
	// ReplaceDataset trunca y carga el snapshot completo.
	ReplaceDataset(ctx context.Context, snap *DatasetSnapshot) error
}
