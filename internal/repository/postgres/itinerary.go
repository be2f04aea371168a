package postgres

import (
	"context"
	"database/sql"
	"errors"

	"travelplan/internal/domain"
	"travelplan/internal/repository"
)

// ItineraryRepository is a PostgreSQL implementation of repository.ItineraryRepository.
type ItineraryRepository struct {
	q Querier
}

// NewItineraryRepository creates a new PostgreSQL itinerary repository.
func NewItineraryRepository(db *sql.DB) *ItineraryRepository {
	return &ItineraryRepository{q: db}
}

// NewItineraryRepositoryWithTx creates an itinerary repository using a transaction.
func NewItineraryRepositoryWithTx(tx *sql.Tx) *ItineraryRepository {
	return &ItineraryRepository{q: tx}
}

// CreateDay persists one itinerary day.
func (r *ItineraryRepository) CreateDay(ctx context.Context, day *domain.ItineraryDay) error {
	query := `
		INSERT INTO itinerary_days (id, trip_id, day_number, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		day.ID,
		day.TripID,
		day.DayNumber,
		day.Date,
		day.Notes,
		day.CreatedAt,
	)

	return err
}

// GetDaysByTripID retrieves a trip's days ordered by day number.
func (r *ItineraryRepository) GetDaysByTripID(ctx context.Context, tripID string) ([]*domain.ItineraryDay, error) {
	query := `
		SELECT id, trip_id, day_number, date, notes, created_at
		FROM itinerary_days WHERE trip_id = $1 ORDER BY day_number ASC
	`

	rows, err := r.q.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []*domain.ItineraryDay
	for rows.Next() {
		var day domain.ItineraryDay
		if err := rows.Scan(&day.ID, &day.TripID, &day.DayNumber, &day.Date, &day.Notes, &day.CreatedAt); err != nil {
			return nil, err
		}
		days = append(days, &day)
	}

	return days, rows.Err()
}

// GetDayByID retrieves a single itinerary day.
func (r *ItineraryRepository) GetDayByID(ctx context.Context, id string) (*domain.ItineraryDay, error) {
	query := `
		SELECT id, trip_id, day_number, date, notes, created_at
		FROM itinerary_days WHERE id = $1
	`

	var day domain.ItineraryDay
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&day.ID, &day.TripID, &day.DayNumber, &day.Date, &day.Notes, &day.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &day, nil
}

// DeleteByTripID removes all days belonging to a trip.
func (r *ItineraryRepository) DeleteByTripID(ctx context.Context, tripID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM itinerary_days WHERE trip_id = $1`, tripID)
	return err
}

// ActivityRepository is a PostgreSQL implementation of repository.ActivityRepository.
type ActivityRepository struct {
	q Querier
}

// NewActivityRepository creates a new PostgreSQL activity repository.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{q: db}
}

// NewActivityRepositoryWithTx creates an activity repository using a transaction.
func NewActivityRepositoryWithTx(tx *sql.Tx) *ActivityRepository {
	return &ActivityRepository{q: tx}
}

// Create persists one activity.
func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (id, day_id, kind, entity_id, start_time, end_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		activity.ID,
		activity.DayID,
		activity.Kind,
		activity.EntityID,
		activity.StartTime,
		activity.EndTime,
		activity.Notes,
	)

	return err
}

// GetByDayID retrieves a day's activities ordered by start time.
func (r *ActivityRepository) GetByDayID(ctx context.Context, dayID string) ([]*domain.Activity, error) {
	query := `
		SELECT id, day_id, kind, entity_id, start_time, end_time, notes
		FROM activities WHERE day_id = $1 ORDER BY start_time ASC
	`

	rows, err := r.q.QueryContext(ctx, query, dayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.DayID, &a.Kind, &a.EntityID, &a.StartTime, &a.EndTime, &a.Notes); err != nil {
			return nil, err
		}
		activities = append(activities, &a)
	}

	return activities, rows.Err()
}

// DeleteByTripID removes all activities of all days of a trip.
func (r *ActivityRepository) DeleteByTripID(ctx context.Context, tripID string) error {
	query := `
		DELETE FROM activities
		WHERE day_id IN (SELECT id FROM itinerary_days WHERE trip_id = $1)
	`

	_, err := r.q.ExecContext(ctx, query, tripID)
	return err
}

// Ensure implementations satisfy their interfaces.
var (
	_ repository.ItineraryRepository = (*ItineraryRepository)(nil)
	_ repository.ActivityRepository  = (*ActivityRepository)(nil)
)
