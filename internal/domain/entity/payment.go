package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago.
const (
	PaymentSuccessful = "successful"
	PaymentFailed     = "failed"
	PaymentRefunded   = "refunded"
)

// Payment representa un cobro en una frontera de ciclo de facturación.
// Amount es 0 salvo que el pago sea successful.
type Payment struct {
	ID             string
	SubscriptionID string
	CustomerID     string
	Date           time.Time
	Amount         decimal.Decimal
	Status         string // successful | failed | refunded
	Method         string // Credit Card | ACH | Wire Transfer | PayPal
	Kind           string // tipo de la suscripción que lo originó
}
