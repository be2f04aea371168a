package tests

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"travelplan/internal/domain"
	"travelplan/internal/service"
)

// ──────────────────────────────────────────────
// 7. ITINERARY READS AND PDF EXPORT
// ──────────────────────────────────────────────

func newItineraryFixture() (*service.ItineraryService, *MockTripRepository, *MockItineraryRepository, *MockActivityRepository) {
	tripRepo := NewMockTripRepository()
	itineraryRepo := NewMockItineraryRepository()
	activityRepo := NewMockActivityRepository(itineraryRepo)
	catalogRepo := NewMockCatalogRepository()

	catalogRepo.AddCity(&domain.City{ID: 5, Name: "Istanbul", CountryID: 90, Country: "Turkiye"})
	catalogRepo.AddAttraction(&domain.Attraction{ID: 40, CityID: 5, Name: "Hagia Sophia", Category: "museum", Rating: 4.9, EntryFee: 25})

	catalogService := service.NewCatalogService(catalogRepo, nil)
	enricher := service.NewEnricherService(catalogService)
	svc := service.NewItineraryService(tripRepo, itineraryRepo, activityRepo, catalogService, enricher, nil)

	return svc, tripRepo, itineraryRepo, activityRepo
}

func completedTripWithDay(tripRepo *MockTripRepository, itineraryRepo *MockItineraryRepository, activityRepo *MockActivityRepository) *domain.Trip {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := &domain.Trip{
		ID:                "trip-1",
		UserID:            1,
		Title:             "Summer in Istanbul",
		DestinationCityID: 5,
		StartDate:         start,
		EndDate:           start.AddDate(0, 0, 3),
		TotalBudget:       3000,
		Status:            domain.TripStatusCompleted,
		ChosenTier:        domain.TierStandard,
	}
	tripRepo.AddTrip(trip)

	day := &domain.ItineraryDay{ID: "day-1", TripID: trip.ID, DayNumber: 1, Date: start, Notes: "Plan for day 1."}
	itineraryRepo.AddDay(day)
	activityRepo.AddActivity(&domain.Activity{
		ID:        "a1",
		DayID:     day.ID,
		Kind:      domain.ActivityAttraction,
		EntityID:  40,
		StartTime: start.Add(10 * time.Hour),
		EndTime:   start.Add(12 * time.Hour),
	})

	return trip
}

func TestItineraryDays_EmptyWhileProcessing(t *testing.T) {
	t.Parallel()

	svc, tripRepo, itineraryRepo, activityRepo := newItineraryFixture()
	trip := completedTripWithDay(tripRepo, itineraryRepo, activityRepo)
	tripRepo.GetTrip(trip.ID).Status = domain.TripStatusProcessing

	_, days, err := svc.Days(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("expected no days exposed while processing, got %d", len(days))
	}
}

func TestItineraryActivities_Enriched(t *testing.T) {
	t.Parallel()

	svc, tripRepo, itineraryRepo, activityRepo := newItineraryFixture()
	completedTripWithDay(tripRepo, itineraryRepo, activityRepo)

	activities, err := svc.Activities(context.Background(), "day-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(activities) != 1 || activities[0].EntityName != "Hagia Sophia" {
		t.Errorf("expected the enriched attraction, got %+v", activities)
	}
}

func TestExportPDF_RequiresCompletedTrip(t *testing.T) {
	t.Parallel()

	svc, tripRepo, itineraryRepo, activityRepo := newItineraryFixture()
	trip := completedTripWithDay(tripRepo, itineraryRepo, activityRepo)
	tripRepo.GetTrip(trip.ID).Status = domain.TripStatusProcessing

	if _, err := svc.ExportPDF(context.Background(), trip.ID); !errors.Is(err, service.ErrItineraryNotReady) {
		t.Errorf("expected ErrItineraryNotReady, got %v", err)
	}
}

func TestExportPDF_RendersDocument(t *testing.T) {
	t.Parallel()

	svc, tripRepo, itineraryRepo, activityRepo := newItineraryFixture()
	trip := completedTripWithDay(tripRepo, itineraryRepo, activityRepo)

	pdfBytes, err := svc.ExportPDF(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("expected a PDF document")
	}
}
