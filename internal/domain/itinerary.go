package domain

import "time"

// ActivityKind is the closed set of schedulable activity types.
type ActivityKind string

const (
	ActivityHotel      ActivityKind = "hotel"
	ActivityAttraction ActivityKind = "attraction"
	ActivityRestaurant ActivityKind = "restaurant"
	ActivityFlight     ActivityKind = "flight"
)

// ItineraryDay is one calendar day of a generated itinerary. Days are owned
// by exactly one trip and numbered 1..N from the start date.
type ItineraryDay struct {
	ID        string
	TripID    string
	DayNumber int
	Date      time.Time
	Notes     string
	CreatedAt time.Time
}

// Activity is a single scheduled occurrence within one itinerary day. The
// kind tags which catalog table EntityID refers to; the reference is
// non-owning since catalog entities are shared across all trips.
type Activity struct {
	ID        string
	DayID     string
	Kind      ActivityKind
	EntityID  int64
	StartTime time.Time
	EndTime   time.Time
	Notes     string
}

// Overlaps reports whether two activities share any instant of their time
// windows. Windows are half-open, so back-to-back activities do not overlap.
func (a *Activity) Overlaps(b *Activity) bool {
	return a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime)
}

// EnrichedActivity is an activity joined with its catalog entity, ready for
// display. The detail/extra pair is type-specific: category and entry fee
// for attractions, cuisine and price range for restaurants, address and
// nightly price for hotels, duration and ticket price for flights.
type EnrichedActivity struct {
	ActivityID   string
	Kind         ActivityKind
	EntityName   string
	EntityDetail string
	EntityExtra  string
	EntityRating float64
	StartTime    time.Time
	EndTime      time.Time
	Notes        string
}
