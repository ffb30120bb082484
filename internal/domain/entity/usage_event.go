package entity

import "time"

// UsageEvent representa el uso de una feature por parte de un cliente.
// Solo lo generan suscripciones initial/seat_expansion/plan_upgrade;
// los add-ons nunca producen uso.
type UsageEvent struct {
	ID             string
	CustomerID     string
	SubscriptionID string
	Date           time.Time
	EventType      string // siempre "feature_used"
	Feature        string
	SeatsUsed      int
}
