package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	// TripStatusPlanned is not produced by the creation path but remains
	// reachable for manually imported trips.
	TripStatusPlanned    TripStatus = "planned"
	TripStatusPending    TripStatus = "pending"
	TripStatusProcessing TripStatus = "processing"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

// Tier identifies one of the three package classes offered per trip.
type Tier string

const (
	TierBudget   Tier = "budget"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Tiers lists all tiers in their fixed presentation order.
func Tiers() []Tier {
	return []Tier{TierBudget, TierStandard, TierPremium}
}

// ValidTier reports whether s names a known tier.
func ValidTier(s string) bool {
	switch Tier(s) {
	case TierBudget, TierStandard, TierPremium:
		return true
	}
	return false
}

// Trip represents a planned or in-progress trip in the system.
type Trip struct {
	ID                string
	UserID            int64
	Title             string
	DestinationCityID int64
	StartDate         time.Time
	EndDate           time.Time
	TotalBudget       float64
	Status            TripStatus

	// Recorded atomically with the pending -> processing transition.
	ChosenTier             Tier
	ChosenHotelID          int64
	ChosenOutboundFlightID int64
	ChosenInboundFlightID  int64

	// Last itinerary build failure, cleared on success. A trip with a
	// recorded error stays in processing and is rebuilt on the next fetch.
	LastBuildError string

	CreatedAt time.Time
}

// Days returns the number of calendar days the trip spans, inclusive.
func (t *Trip) Days() int {
	return int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
}

// Nights returns the number of hotel nights for the stay.
func (t *Trip) Nights() int {
	return t.Days() - 1
}

// Terminal reports whether the trip can accept no further transitions.
func (t *Trip) Terminal() bool {
	return t.Status == TripStatusCancelled
}
