package domain

// TripOption is one priced travel package for a trip. Options are computed
// on demand and never persisted; only the selected references are recorded
// on the trip itself.
type TripOption struct {
	Tier           Tier
	OutboundFlight *Flight
	InboundFlight  *Flight
	Hotel          *Hotel

	LogisticsBudget  float64
	ActivitiesBudget float64

	// RemainingMoney is the slack between the trip budget and the priced
	// logistics, never negative in a returned option.
	RemainingMoney float64

	// TotalPrice is outbound + inbound + hotel price for the full stay.
	TotalPrice float64
}
