package tests

import (
	"context"
	"testing"
	"time"

	"travelplan/internal/domain"
	"travelplan/internal/service"
)

// ──────────────────────────────────────────────
// 5. ACTIVITY ENRICHMENT
// ──────────────────────────────────────────────

func newEnricherFixture() (*service.EnricherService, *MockCatalogRepository) {
	catalogRepo := NewMockCatalogRepository()

	catalogRepo.AddHotel(&domain.Hotel{ID: 30, CityID: 5, Name: "Mid Hotel", Address: "12 Istiklal St", Stars: 4, Rating: 4.3, PricePerNight: 140})
	catalogRepo.AddAttraction(&domain.Attraction{ID: 40, CityID: 5, Name: "Hagia Sophia", Category: "museum", Rating: 4.9, EntryFee: 25})
	catalogRepo.AddRestaurant(&domain.Restaurant{ID: 50, CityID: 5, Name: "Meze House", Cuisine: "turkish", Rating: 4.6, PriceRange: "$$"})
	catalogRepo.AddFlight(&domain.Flight{ID: 10, FromCityID: 1, ToCityID: 5, Airline: "AirA", DurationMinutes: 180, Price: 200})

	return service.NewEnricherService(service.NewCatalogService(catalogRepo, nil)), catalogRepo
}

func activityAt(id string, kind domain.ActivityKind, entityID int64, hour int) *domain.Activity {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return &domain.Activity{
		ID:        id,
		DayID:     "day-1",
		Kind:      kind,
		EntityID:  entityID,
		StartTime: day.Add(time.Duration(hour) * time.Hour),
		EndTime:   day.Add(time.Duration(hour+2) * time.Hour),
	}
}

func TestEnrichDay_ResolvesEachKind(t *testing.T) {
	t.Parallel()

	svc, _ := newEnricherFixture()

	activities := []*domain.Activity{
		activityAt("a1", domain.ActivityFlight, 10, 8),
		activityAt("a2", domain.ActivityHotel, 30, 11),
		activityAt("a3", domain.ActivityAttraction, 40, 14),
		activityAt("a4", domain.ActivityRestaurant, 50, 19),
	}

	enriched, err := svc.EnrichDay(context.Background(), activities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enriched) != 4 {
		t.Fatalf("expected 4 enriched entries, got %d", len(enriched))
	}

	byID := make(map[string]domain.EnrichedActivity)
	for _, e := range enriched {
		byID[e.ActivityID] = e
	}

	if e := byID["a1"]; e.EntityName != "AirA" || e.EntityDetail != "180 min" {
		t.Errorf("flight enrichment wrong: %+v", e)
	}
	if e := byID["a2"]; e.EntityName != "Mid Hotel" || e.EntityDetail != "12 Istiklal St" || e.EntityRating != 4.3 {
		t.Errorf("hotel enrichment wrong: %+v", e)
	}
	if e := byID["a3"]; e.EntityName != "Hagia Sophia" || e.EntityDetail != "museum" {
		t.Errorf("attraction enrichment wrong: %+v", e)
	}
	if e := byID["a4"]; e.EntityName != "Meze House" || e.EntityDetail != "turkish" || e.EntityExtra != "$$" {
		t.Errorf("restaurant enrichment wrong: %+v", e)
	}
}

func TestEnrichDay_DanglingReferencesSkippedNotFatal(t *testing.T) {
	t.Parallel()

	svc, _ := newEnricherFixture()

	activities := []*domain.Activity{
		activityAt("a1", domain.ActivityAttraction, 40, 10),
		activityAt("a2", domain.ActivityAttraction, 999, 14), // removed from catalog
		activityAt("a3", domain.ActivityRestaurant, 50, 19),
		activityAt("a4", domain.ActivityHotel, 888, 21), // removed from catalog
	}

	enriched, err := svc.EnrichDay(context.Background(), activities)
	if err != nil {
		t.Fatalf("a dangling reference must not abort enrichment: %v", err)
	}

	// Output count equals input count minus dangling count.
	if len(enriched) != 2 {
		t.Fatalf("expected 2 enriched entries, got %d", len(enriched))
	}
	for _, e := range enriched {
		if e.ActivityID == "a2" || e.ActivityID == "a4" {
			t.Errorf("dangling activity %s should have been skipped", e.ActivityID)
		}
	}
}

func TestEnrichDay_EmptyInput(t *testing.T) {
	t.Parallel()

	svc, _ := newEnricherFixture()

	enriched, err := svc.EnrichDay(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enriched) != 0 {
		t.Errorf("expected empty result, got %d entries", len(enriched))
	}
}
