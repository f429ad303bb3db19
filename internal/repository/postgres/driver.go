package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

const driverColumns = `
	id, name, phone, email, rating, photo,
	car_model, car_color, car_plate,
	lat, lng, available, created_at, updated_at
`

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.q.ExecContext(ctx, query,
		driver.ID, driver.Name, driver.Phone, driver.Email, driver.Rating, driver.Photo,
		driver.Car.Model, driver.Car.Color, driver.Car.Plate,
		driver.Location.Latitude, driver.Location.Longitude, driver.Available,
		driver.CreatedAt, driver.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return repository.ErrDuplicateID
	}
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	driver, err := scanDriver(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return driver, nil
}

// GetAll retrieves all drivers.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY created_at ASC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, rows.Err()
}

// ApplyRating folds a rating into the driver's running average. The update
// happens in a single statement so concurrent submissions for the same
// driver cannot lose writes.
func (r *DriverRepository) ApplyRating(ctx context.Context, id string, value, priorWeight float64) (float64, error) {
	query := `
		UPDATE drivers
		SET rating = (rating * $2 + $3) / ($2 + 1), updated_at = NOW()
		WHERE id = $1
		RETURNING rating
	`

	var newRating float64
	err := r.q.QueryRowContext(ctx, query, id, priorWeight, value).Scan(&newRating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	return newRating, nil
}

// UpdateLocation records the driver's last known position.
func (r *DriverRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	query := `UPDATE drivers SET lat = $2, lng = $3, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, lat, lng)
}

// SetAvailability marks a driver as available for matching or not.
func (r *DriverRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	query := `UPDATE drivers SET available = $2, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, available)
}

func (r *DriverRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
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

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var driver domain.Driver
	err := row.Scan(
		&driver.ID, &driver.Name, &driver.Phone, &driver.Email, &driver.Rating, &driver.Photo,
		&driver.Car.Model, &driver.Car.Color, &driver.Car.Plate,
		&driver.Location.Latitude, &driver.Location.Longitude, &driver.Available,
		&driver.CreatedAt, &driver.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &driver, nil
}
