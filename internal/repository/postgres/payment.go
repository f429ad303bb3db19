package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, ride_id, user_id, amount, method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID, payment.RideID, payment.UserID,
		payment.Amount, payment.Method, payment.Status, payment.CreatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return repository.ErrDuplicateID
	}
	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `
		SELECT id, ride_id, user_id, amount, method, status, created_at
		FROM payments WHERE id = $1
	`

	var p domain.Payment
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.RideID, &p.UserID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByUser retrieves all payments made by a user, in insertion order.
func (r *PaymentRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	query := `
		SELECT id, ride_id, user_id, amount, method, status, created_at
		FROM payments WHERE user_id = $1 ORDER BY created_at ASC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID, &p.RideID, &p.UserID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// UpdateStatus updates the status of a payment.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	query := `UPDATE payments SET status = $2 WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// PaymentMethodRepository is a PostgreSQL implementation of
// repository.PaymentMethodRepository.
type PaymentMethodRepository struct {
	q Querier
}

// NewPaymentMethodRepository creates a new PostgreSQL payment method repository.
func NewPaymentMethodRepository(db *sql.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{q: db}
}

// Create persists a new payment method.
func (r *PaymentMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (id, user_id, type, brand, last4, expiry_month, expiry_year, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		method.ID, method.UserID, method.Type, method.Brand, method.Last4,
		method.ExpiryMonth, method.ExpiryYear, method.IsDefault, method.CreatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return repository.ErrDuplicateID
	}
	return err
}

// GetByID retrieves a payment method by ID.
func (r *PaymentMethodRepository) GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	query := `
		SELECT id, user_id, type, brand, last4, expiry_month, expiry_year, is_default, created_at
		FROM payment_methods WHERE id = $1
	`

	var m domain.PaymentMethod
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.UserID, &m.Type, &m.Brand, &m.Last4,
		&m.ExpiryMonth, &m.ExpiryYear, &m.IsDefault, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByUser retrieves a user's payment methods, in insertion order.
func (r *PaymentMethodRepository) ListByUser(ctx context.Context, userID string) ([]*domain.PaymentMethod, error) {
	query := `
		SELECT id, user_id, type, brand, last4, expiry_month, expiry_year, is_default, created_at
		FROM payment_methods WHERE user_id = $1 ORDER BY created_at ASC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []*domain.PaymentMethod
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Type, &m.Brand, &m.Last4,
			&m.ExpiryMonth, &m.ExpiryYear, &m.IsDefault, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		methods = append(methods, &m)
	}
	return methods, rows.Err()
}

// SetDefault marks the given method as the user's default.
func (r *PaymentMethodRepository) SetDefault(ctx context.Context, userID, methodID string) error {
	clear := `UPDATE payment_methods SET is_default = FALSE WHERE user_id = $1`
	if _, err := r.q.ExecContext(ctx, clear, userID); err != nil {
		return err
	}

	set := `UPDATE payment_methods SET is_default = TRUE WHERE id = $1 AND user_id = $2`
	result, err := r.q.ExecContext(ctx, set, methodID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a payment method.
func (r *PaymentMethodRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
