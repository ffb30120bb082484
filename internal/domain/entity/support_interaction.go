package entity

import "time"

// Estados de resolución de un ticket de soporte.
const (
	SupportResolved  = "Resolved"
	SupportPending   = "Pending"
	SupportEscalated = "Escalated"
)

// Calificaciones de sentimiento.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// SupportInteraction representa un ticket de soporte de un cliente.
// ResolutionHours solo está presente si el ticket quedó Resolved.
type SupportInteraction struct {
	ID              string
	CustomerID      string
	Date            time.Time
	IssueCategory   string
	Status          string // Resolved | Pending | Escalated
	ResolutionHours *float64
	Sentiment       string  // Positive | Neutral | Negative
	SentimentScore  float64 // [0,1], correlacionado con estado y velocidad de resolución
}
