package memory

import (
	"context"
	"sync"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// PaymentRepository is an in-memory implementation of repository.PaymentRepository.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
	order    []string
}

// NewPaymentRepository creates an empty in-memory payment repository.
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[string]*domain.Payment)}
}

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[payment.ID]; ok {
		return repository.ErrDuplicateID
	}

	clone := *payment
	r.payments[payment.ID] = &clone
	r.order = append(r.order, payment.ID)
	return nil
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *payment
	return &clone, nil
}

// GetByUser retrieves all payments made by a user, in insertion order.
func (r *PaymentRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []*domain.Payment
	for _, id := range r.order {
		if p := r.payments[id]; p.UserID == userID {
			clone := *p
			payments = append(payments, &clone)
		}
	}
	return payments, nil
}

// UpdateStatus updates the status of a payment.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	payment.Status = status
	return nil
}

// PaymentMethodRepository is an in-memory implementation of
// repository.PaymentMethodRepository.
type PaymentMethodRepository struct {
	mu      sync.RWMutex
	methods map[string]*domain.PaymentMethod
	order   []string
}

// NewPaymentMethodRepository creates an empty in-memory payment method repository.
func NewPaymentMethodRepository() *PaymentMethodRepository {
	return &PaymentMethodRepository{methods: make(map[string]*domain.PaymentMethod)}
}

// Create persists a new payment method.
func (r *PaymentMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.methods[method.ID]; ok {
		return repository.ErrDuplicateID
	}

	clone := *method
	r.methods[method.ID] = &clone
	r.order = append(r.order, method.ID)
	return nil
}

// GetByID retrieves a payment method by ID.
func (r *PaymentMethodRepository) GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	method, ok := r.methods[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *method
	return &clone, nil
}

// ListByUser retrieves a user's payment methods, in insertion order.
func (r *PaymentMethodRepository) ListByUser(ctx context.Context, userID string) ([]*domain.PaymentMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var methods []*domain.PaymentMethod
	for _, id := range r.order {
		if m := r.methods[id]; m.UserID == userID {
			clone := *m
			methods = append(methods, &clone)
		}
	}
	return methods, nil
}

// SetDefault marks the given method as the user's default.
func (r *PaymentMethodRepository) SetDefault(ctx context.Context, userID, methodID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.methods[methodID]
	if !ok || target.UserID != userID {
		return repository.ErrNotFound
	}

	for _, m := range r.methods {
		if m.UserID == userID {
			m.IsDefault = false
		}
	}
	target.IsDefault = true
	return nil
}

// Delete removes a payment method.
func (r *PaymentMethodRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.methods[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.methods, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
