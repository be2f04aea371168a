package repository

import (
	"context"

	"travelplan/internal/domain"
)

// ItineraryRepository defines the persistence operations for itinerary days.
type ItineraryRepository interface {
	// CreateDay persists one itinerary day.
	CreateDay(ctx context.Context, day *domain.ItineraryDay) error

	// GetDaysByTripID retrieves a trip's days ordered by day number.
	GetDaysByTripID(ctx context.Context, tripID string) ([]*domain.ItineraryDay, error)

	// GetDayByID retrieves a single itinerary day.
	GetDayByID(ctx context.Context, id string) (*domain.ItineraryDay, error)

	// DeleteByTripID removes all days belonging to a trip.
	DeleteByTripID(ctx context.Context, tripID string) error
}

// ActivityRepository defines the persistence operations for activities.
type ActivityRepository interface {
	// Create persists one activity.
	Create(ctx context.Context, activity *domain.Activity) error

	// GetByDayID retrieves a day's activities ordered by start time.
	GetByDayID(ctx context.Context, dayID string) ([]*domain.Activity, error)

	// DeleteByTripID removes all activities of all days of a trip.
	DeleteByTripID(ctx context.Context, tripID string) error
}
