package repository

import (
	"context"

	"travelplan/internal/domain"
)

// OptionSelection carries the references recorded when a traveler commits
// to a trip option.
type OptionSelection struct {
	Tier             domain.Tier
	HotelID          int64
	OutboundFlightID int64
	InboundFlightID  int64
}

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAllByUserID retrieves all trips owned by a user, newest first.
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Trip, error)

	// SelectOption records the chosen option and moves the trip from
	// pending to processing in a single compare-and-set. Returns false
	// without error when the trip exists but is no longer pending.
	SelectOption(ctx context.Context, id string, sel OptionSelection) (bool, error)

	// UpdateStatusIf moves the trip from one status to another only if it
	// is currently in the expected status. Returns false when the
	// compare-and-set did not apply.
	UpdateStatusIf(ctx context.Context, id string, from, to domain.TripStatus) (bool, error)

	// Cancel marks the trip cancelled regardless of its current
	// non-terminal status.
	Cancel(ctx context.Context, id string) error

	// RecordBuildError stores the last itinerary build failure for the
	// trip; an empty message clears it.
	RecordBuildError(ctx context.Context, id string, msg string) error

	// Delete removes the trip row.
	Delete(ctx context.Context, id string) error
}
