package repository

import (
	"context"

	"rideshare/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// GetByUser retrieves all payments made by a user, in insertion order.
	GetByUser(ctx context.Context, userID string) ([]*domain.Payment, error)

	// UpdateStatus updates the status of a payment.
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}

// PaymentMethodRepository defines the persistence operations for saved
// payment methods.
type PaymentMethodRepository interface {
	// Create persists a new payment method.
	Create(ctx context.Context, method *domain.PaymentMethod) error

	// GetByID retrieves a payment method by ID.
	GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error)

	// ListByUser retrieves a user's payment methods, in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*domain.PaymentMethod, error)

	// SetDefault marks the given method as the user's default and clears
	// the flag on all of the user's other methods.
	SetDefault(ctx context.Context, userID, methodID string) error

	// Delete removes a payment method.
	Delete(ctx context.Context, id string) error
}
