package domain

import "time"

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment represents a payment for a ride.
type Payment struct {
	ID        string
	RideID    string
	UserID    string
	Amount    float64
	Method    string
	Status    PaymentStatus
	CreatedAt time.Time
}

// PaymentMethod is a saved payment instrument belonging to a user.
type PaymentMethod struct {
	ID          string
	UserID      string
	Type        string
	Brand       string
	Last4       string
	ExpiryMonth int
	ExpiryYear  int
	IsDefault   bool
	CreatedAt   time.Time
}
