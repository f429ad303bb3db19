package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

const rideColumns = `
	id, user_id, driver_id,
	origin_address, origin_lat, origin_lng,
	destination_address, destination_lat, destination_lng,
	ride_type, estimated_price, estimated_time, distance_km, status,
	payment_id, payment_amount, payment_method, payment_status,
	rating_value, rating_comment, rating_created_at,
	created_at, updated_at
`

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := r.q.ExecContext(ctx, query, rideArgs(ride)...)
	if err != nil && isUniqueViolation(err) {
		return repository.ErrDuplicateID
	}
	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// GetByUser retrieves all rides belonging to a user, in insertion order.
func (r *RideRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Update replaces an existing ride.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides SET
			driver_id = $2,
			origin_address = $4, origin_lat = $5, origin_lng = $6,
			destination_address = $7, destination_lat = $8, destination_lng = $9,
			ride_type = $10, estimated_price = $11, estimated_time = $12, distance_km = $13, status = $14,
			payment_id = $15, payment_amount = $16, payment_method = $17, payment_status = $18,
			rating_value = $19, rating_comment = $20, rating_created_at = $21,
			updated_at = $23
		WHERE id = $1 AND user_id = $3
	`

	result, err := r.q.ExecContext(ctx, query, rideArgs(ride)...)
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

// rideArgs flattens a ride into the positional arguments matching rideColumns.
func rideArgs(ride *domain.Ride) []any {
	var driverID sql.NullString
	if ride.DriverID != "" {
		driverID = sql.NullString{String: ride.DriverID, Valid: true}
	}

	var payID, payMethod, payStatus sql.NullString
	var payAmount sql.NullFloat64
	if ride.Payment != nil {
		payID = sql.NullString{String: ride.Payment.PaymentID, Valid: true}
		payAmount = sql.NullFloat64{Float64: ride.Payment.Amount, Valid: true}
		payMethod = sql.NullString{String: ride.Payment.Method, Valid: true}
		payStatus = sql.NullString{String: string(ride.Payment.Status), Valid: true}
	}

	var ratingValue sql.NullFloat64
	var ratingComment sql.NullString
	var ratingCreatedAt sql.NullTime
	if ride.Rating != nil {
		ratingValue = sql.NullFloat64{Float64: ride.Rating.Value, Valid: true}
		ratingComment = sql.NullString{String: ride.Rating.Comment, Valid: true}
		ratingCreatedAt = sql.NullTime{Time: ride.Rating.CreatedAt, Valid: true}
	}

	return []any{
		ride.ID, ride.UserID, driverID,
		ride.Origin.Address, ride.Origin.Latitude, ride.Origin.Longitude,
		ride.Destination.Address, ride.Destination.Latitude, ride.Destination.Longitude,
		ride.RideType, ride.EstimatedPrice, ride.EstimatedTime, ride.DistanceKm, ride.Status,
		payID, payAmount, payMethod, payStatus,
		ratingValue, ratingComment, ratingCreatedAt,
		ride.CreatedAt, ride.UpdatedAt,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var driverID sql.NullString
	var payID, payMethod, payStatus sql.NullString
	var payAmount sql.NullFloat64
	var ratingValue sql.NullFloat64
	var ratingComment sql.NullString
	var ratingCreatedAt sql.NullTime

	err := row.Scan(
		&ride.ID, &ride.UserID, &driverID,
		&ride.Origin.Address, &ride.Origin.Latitude, &ride.Origin.Longitude,
		&ride.Destination.Address, &ride.Destination.Latitude, &ride.Destination.Longitude,
		&ride.RideType, &ride.EstimatedPrice, &ride.EstimatedTime, &ride.DistanceKm, &ride.Status,
		&payID, &payAmount, &payMethod, &payStatus,
		&ratingValue, &ratingComment, &ratingCreatedAt,
		&ride.CreatedAt, &ride.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		ride.DriverID = driverID.String
	}
	if payID.Valid {
		ride.Payment = &domain.RidePayment{
			PaymentID: payID.String,
			Amount:    payAmount.Float64,
			Method:    payMethod.String,
			Status:    domain.PaymentStatus(payStatus.String),
		}
	}
	if ratingValue.Valid {
		ride.Rating = &domain.RideRating{
			Value:     ratingValue.Float64,
			Comment:   ratingComment.String,
			CreatedAt: ratingCreatedAt.Time,
		}
	}

	return &ride, nil
}
