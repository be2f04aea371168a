package tests

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"travelplan/internal/domain"
	"travelplan/internal/service"
)

// ──────────────────────────────────────────────
// 2. OPTION GENERATION
// ──────────────────────────────────────────────

func newOptionFixture() (*service.OptionService, *MockCatalogRepository, *MockPreferencesRepository) {
	catalogRepo := NewMockCatalogRepository()
	prefsRepo := NewMockPreferencesRepository()

	catalogRepo.AddCity(&domain.City{ID: 1, Name: "Tashkent"})
	catalogRepo.AddCity(&domain.City{ID: 5, Name: "Istanbul"})

	// Outbound 1 -> 5.
	catalogRepo.AddFlight(&domain.Flight{ID: 10, FromCityID: 1, ToCityID: 5, Airline: "AirA", DepartureMinutes: 8 * 60, DurationMinutes: 180, Price: 200})
	catalogRepo.AddFlight(&domain.Flight{ID: 11, FromCityID: 1, ToCityID: 5, Airline: "AirB", DepartureMinutes: 14 * 60, DurationMinutes: 150, Price: 350})

	// Inbound 5 -> 1.
	catalogRepo.AddFlight(&domain.Flight{ID: 20, FromCityID: 5, ToCityID: 1, Airline: "AirA", DepartureMinutes: 18 * 60, DurationMinutes: 180, Price: 220})
	catalogRepo.AddFlight(&domain.Flight{ID: 21, FromCityID: 5, ToCityID: 1, Airline: "AirB", DepartureMinutes: 10 * 60, DurationMinutes: 160, Price: 400})

	catalogRepo.AddHotel(&domain.Hotel{ID: 30, CityID: 5, Name: "Cheap Inn", Stars: 2, Rating: 3.8, PricePerNight: 60})
	catalogRepo.AddHotel(&domain.Hotel{ID: 31, CityID: 5, Name: "Mid Hotel", Stars: 4, Rating: 4.3, PricePerNight: 140})
	catalogRepo.AddHotel(&domain.Hotel{ID: 32, CityID: 5, Name: "Grand Palace", Stars: 5, Rating: 4.8, PricePerNight: 280})

	prefsRepo.AddPreferences(&domain.Preferences{UserID: 1, HomeCityID: 1})

	catalogService := service.NewCatalogService(catalogRepo, nil)
	return service.NewOptionService(catalogService, prefsRepo), catalogRepo, prefsRepo
}

func pendingTrip(budget float64) *domain.Trip {
	return &domain.Trip{
		ID:                "trip-1",
		UserID:            1,
		Title:             "Summer in Istanbul",
		DestinationCityID: 5,
		StartDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		TotalBudget:       budget,
		Status:            domain.TripStatusPending,
	}
}

func TestGenerateOptions_TiersInFixedOrderWithinBudget(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOptionFixture()
	trip := pendingTrip(3000)

	options, err := svc.GenerateForTrip(context.Background(), trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) == 0 || len(options) > 3 {
		t.Fatalf("expected 1..3 options, got %d", len(options))
	}

	order := map[domain.Tier]int{domain.TierBudget: 0, domain.TierStandard: 1, domain.TierPremium: 2}
	for i := 1; i < len(options); i++ {
		if order[options[i-1].Tier] >= order[options[i].Tier] {
			t.Errorf("tiers out of order: %s before %s", options[i-1].Tier, options[i].Tier)
		}
	}

	for _, opt := range options {
		if opt.TotalPrice > trip.TotalBudget {
			t.Errorf("tier %s: total price %.2f exceeds budget %.2f",
				opt.Tier, opt.TotalPrice, trip.TotalBudget)
		}
		if opt.OutboundFlight.FromCityID != 1 || opt.OutboundFlight.ToCityID != 5 {
			t.Errorf("tier %s: outbound flight on wrong route", opt.Tier)
		}
		if opt.InboundFlight.FromCityID != 5 || opt.InboundFlight.ToCityID != 1 {
			t.Errorf("tier %s: inbound flight on wrong route", opt.Tier)
		}
	}
}

func TestGenerateOptions_Deterministic(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOptionFixture()
	trip := pendingTrip(3000)

	first, err := svc.GenerateForTrip(context.Background(), trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GenerateForTrip(context.Background(), trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different options")
	}
}

func TestGenerateOptions_UnviableTiersOmitted(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOptionFixture()

	// Enough for the cheap flights and hotel under the premium fraction
	// but too tight for the budget tier's narrower logistics slice.
	trip := pendingTrip(1100)

	options, err := svc.GenerateForTrip(context.Background(), trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, opt := range options {
		if opt.Tier == domain.TierBudget {
			// budget tier: logistics 605, per-leg 181.50 cannot cover the
			// 200 outbound flight
			t.Error("budget tier should be unviable at this total")
		}
	}
}

func TestGenerateOptions_NoFlightsYieldsEmptyResult(t *testing.T) {
	t.Parallel()

	catalogRepo := NewMockCatalogRepository()
	prefsRepo := NewMockPreferencesRepository()
	catalogRepo.AddCity(&domain.City{ID: 5, Name: "Istanbul"})
	catalogRepo.AddHotel(&domain.Hotel{ID: 30, CityID: 5, Name: "Cheap Inn", Stars: 2, Rating: 3.8, PricePerNight: 60})
	prefsRepo.AddPreferences(&domain.Preferences{UserID: 1, HomeCityID: 1})

	svc := service.NewOptionService(service.NewCatalogService(catalogRepo, nil), prefsRepo)

	options, err := svc.GenerateForTrip(context.Background(), pendingTrip(3000))
	if err != nil {
		t.Fatalf("empty result must not be an error, got: %v", err)
	}
	if len(options) != 0 {
		t.Errorf("expected no options without flights, got %d", len(options))
	}
}

func TestGenerateOptions_RequiresPendingStatus(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOptionFixture()

	trip := pendingTrip(3000)
	trip.Status = domain.TripStatusProcessing
	if _, err := svc.GenerateForTrip(context.Background(), trip); !errors.Is(err, service.ErrTripNotPending) {
		t.Errorf("expected ErrTripNotPending, got %v", err)
	}

	trip.Status = domain.TripStatusCancelled
	if _, err := svc.GenerateForTrip(context.Background(), trip); !errors.Is(err, service.ErrTripCancelled) {
		t.Errorf("expected ErrTripCancelled, got %v", err)
	}
}

func TestGenerateOptions_MissingHomeCity(t *testing.T) {
	t.Parallel()

	svc, _, prefsRepo := newOptionFixture()

	trip := pendingTrip(3000)
	trip.UserID = 42 // no stored preferences
	if _, err := svc.GenerateForTrip(context.Background(), trip); !errors.Is(err, service.ErrHomeCityNotSet) {
		t.Errorf("expected ErrHomeCityNotSet for missing preferences, got %v", err)
	}

	prefsRepo.AddPreferences(&domain.Preferences{UserID: 42, HomeCityID: 0})
	if _, err := svc.GenerateForTrip(context.Background(), trip); !errors.Is(err, service.ErrHomeCityNotSet) {
		t.Errorf("expected ErrHomeCityNotSet for zero home city, got %v", err)
	}
}

func TestGenerateOptions_PicksCheapestFlightAndBestAffordableHotel(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOptionFixture()

	options, err := svc.GenerateForTrip(context.Background(), pendingTrip(3000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, opt := range options {
		if opt.OutboundFlight.ID != 10 {
			t.Errorf("tier %s: expected cheapest outbound flight 10, got %d", opt.Tier, opt.OutboundFlight.ID)
		}
		if opt.InboundFlight.ID != 20 {
			t.Errorf("tier %s: expected cheapest inbound flight 20, got %d", opt.Tier, opt.InboundFlight.ID)
		}
	}

	// Premium logistics at 3000: 2250 total, 1350 for flights leaves 1830
	// after the two cheap legs; 610/night affords the five-star hotel.
	last := options[len(options)-1]
	if last.Tier == domain.TierPremium && last.Hotel.ID != 32 {
		t.Errorf("premium tier: expected Grand Palace (32), got %d", last.Hotel.ID)
	}
}
