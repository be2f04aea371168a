package service

import "travelplan/internal/domain"

// Tier-dependent logistics fractions. Logistics (flights + hotel for the
// full stay) takes a larger share of the budget as the tier climbs;
// whatever is left is the informational activities budget. The exact
// constants are tunable.
const (
	budgetLogisticsFraction   = 0.55
	standardLogisticsFraction = 0.65
	premiumLogisticsFraction  = 0.75

	// flightShare is the portion of the logistics budget reserved for both
	// flight legs combined; the rest is available for the hotel.
	flightShare = 0.60
)

// LogisticsFraction returns the share of the total budget allocated to
// logistics for a tier.
func LogisticsFraction(tier domain.Tier) float64 {
	switch tier {
	case domain.TierBudget:
		return budgetLogisticsFraction
	case domain.TierStandard:
		return standardLogisticsFraction
	case domain.TierPremium:
		return premiumLogisticsFraction
	default:
		return budgetLogisticsFraction
	}
}

// AllocateBudget splits a trip's total budget into a logistics sub-budget
// and an activities sub-budget for the given tier. For every tier and
// total: logistics + activities <= total, and both are non-negative.
func AllocateBudget(tier domain.Tier, total float64) (logistics, activities float64) {
	if total <= 0 {
		return 0, 0
	}

	logistics = total * LogisticsFraction(tier)
	activities = total - logistics
	if activities < 0 {
		activities = 0
	}

	return logistics, activities
}

// FlightLegBudget returns the sub-budget for a single flight leg given a
// tier's logistics budget.
func FlightLegBudget(logistics float64) float64 {
	return logistics * flightShare / 2
}
