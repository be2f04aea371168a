package tests

import (
	"testing"

	"travelplan/internal/domain"
	"travelplan/internal/service"
)

// ──────────────────────────────────────────────
// 1. BUDGET ALLOCATOR INVARIANTS
// ──────────────────────────────────────────────

func TestAllocateBudget_SumNeverExceedsTotal(t *testing.T) {
	t.Parallel()

	totals := []float64{0, 1, 99.99, 1000, 3000, 1e6}

	for _, tier := range domain.Tiers() {
		for _, total := range totals {
			logistics, activities := service.AllocateBudget(tier, total)

			if logistics < 0 || activities < 0 {
				t.Errorf("tier %s total %.2f: negative allocation (%.2f, %.2f)",
					tier, total, logistics, activities)
			}
			if logistics+activities > total+1e-9 {
				t.Errorf("tier %s total %.2f: allocation %.2f exceeds total",
					tier, total, logistics+activities)
			}
		}
	}
}

func TestAllocateBudget_LogisticsShareGrowsWithTier(t *testing.T) {
	t.Parallel()

	total := 3000.0
	budget, _ := service.AllocateBudget(domain.TierBudget, total)
	standard, _ := service.AllocateBudget(domain.TierStandard, total)
	premium, _ := service.AllocateBudget(domain.TierPremium, total)

	if !(budget < standard && standard < premium) {
		t.Errorf("expected logistics budget to grow with tier, got %.2f / %.2f / %.2f",
			budget, standard, premium)
	}
}

func TestAllocateBudget_ZeroAndNegativeTotals(t *testing.T) {
	t.Parallel()

	for _, total := range []float64{0, -1, -500} {
		logistics, activities := service.AllocateBudget(domain.TierStandard, total)
		if logistics != 0 || activities != 0 {
			t.Errorf("total %.2f: expected zero allocations, got %.2f / %.2f",
				total, logistics, activities)
		}
	}
}

func TestFlightLegBudget_SplitsLogisticsAcrossTwoLegs(t *testing.T) {
	t.Parallel()

	logistics := 1000.0
	perLeg := service.FlightLegBudget(logistics)

	if perLeg <= 0 || perLeg*2 > logistics {
		t.Errorf("per-leg budget %.2f does not leave room for the hotel", perLeg)
	}
}
