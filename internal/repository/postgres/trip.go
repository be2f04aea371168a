package postgres

import (
	"context"
	"database/sql"
	"errors"

	"travelplan/internal/domain"
	"travelplan/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `id, user_id, destination_city_id, title, start_date, end_date, total_budget, status,
		chosen_tier, chosen_hotel_id, chosen_outbound_flight_id, chosen_inbound_flight_id, last_build_error, created_at`

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, user_id, destination_city_id, title, start_date, end_date, total_budget, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.UserID,
		trip.DestinationCityID,
		trip.Title,
		trip.StartDate,
		trip.EndDate,
		trip.TotalBudget,
		trip.Status,
		trip.CreatedAt,
	)

	return err
}

func scanTrip(row interface{ Scan(...any) error }) (*domain.Trip, error) {
	var trip domain.Trip
	var tier sql.NullString
	var hotelID, outboundID, inboundID sql.NullInt64
	var buildErr sql.NullString

	err := row.Scan(
		&trip.ID,
		&trip.UserID,
		&trip.DestinationCityID,
		&trip.Title,
		&trip.StartDate,
		&trip.EndDate,
		&trip.TotalBudget,
		&trip.Status,
		&tier,
		&hotelID,
		&outboundID,
		&inboundID,
		&buildErr,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tier.Valid {
		trip.ChosenTier = domain.Tier(tier.String)
	}
	trip.ChosenHotelID = hotelID.Int64
	trip.ChosenOutboundFlightID = outboundID.Int64
	trip.ChosenInboundFlightID = inboundID.Int64
	trip.LastBuildError = buildErr.String

	return &trip, nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return trip, nil
}

// GetAllByUserID retrieves all trips owned by a user, newest first.
func (r *TripRepository) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// SelectOption records the chosen option and moves the trip from pending to
// processing in a single compare-and-set.
func (r *TripRepository) SelectOption(ctx context.Context, id string, sel repository.OptionSelection) (bool, error) {
	query := `
		UPDATE trips
		SET status = $1, chosen_tier = $2, chosen_hotel_id = $3, chosen_outbound_flight_id = $4, chosen_inbound_flight_id = $5
		WHERE id = $6 AND status = $7
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.TripStatusProcessing,
		sel.Tier,
		sel.HotelID,
		sel.OutboundFlightID,
		sel.InboundFlightID,
		id,
		domain.TripStatusPending,
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// UpdateStatusIf moves the trip between statuses with a compare-and-set.
func (r *TripRepository) UpdateStatusIf(ctx context.Context, id string, from, to domain.TripStatus) (bool, error) {
	query := `UPDATE trips SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.q.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// Cancel marks the trip cancelled unless it already is.
func (r *TripRepository) Cancel(ctx context.Context, id string) error {
	query := `UPDATE trips SET status = $1 WHERE id = $2 AND status != $1`

	result, err := r.q.ExecContext(ctx, query, domain.TripStatusCancelled, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// Either the trip is gone or it was already cancelled; only the
		// former is an error.
		var exists bool
		if err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM trips WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
	}

	return nil
}

// RecordBuildError stores the last itinerary build failure for the trip.
func (r *TripRepository) RecordBuildError(ctx context.Context, id string, msg string) error {
	var stored sql.NullString
	if msg != "" {
		stored = sql.NullString{String: msg, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, `UPDATE trips SET last_build_error = $1 WHERE id = $2`, stored, id)
	return err
}

// Delete removes the trip row.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
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

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
