package tests

import (
	"context"
	"sync"
	"testing"
	"time"

	"travelplan/internal/domain"
	"travelplan/internal/service"
)

// ──────────────────────────────────────────────
// 3. ITINERARY PLANNING
// ──────────────────────────────────────────────

func planningInput(days int, budget float64) service.BuildInput {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := &domain.Trip{
		ID:                "trip-1",
		UserID:            1,
		DestinationCityID: 5,
		StartDate:         start,
		EndDate:           start.AddDate(0, 0, days-1),
		TotalBudget:       budget,
		Status:            domain.TripStatusProcessing,
		ChosenTier:        domain.TierStandard,
	}

	_, activities := service.AllocateBudget(trip.ChosenTier, trip.TotalBudget)

	return service.BuildInput{
		Trip:     trip,
		Outbound: &domain.Flight{ID: 10, FromCityID: 1, ToCityID: 5, Airline: "AirA", DepartureMinutes: 8 * 60, DurationMinutes: 180, Price: 200},
		Inbound:  &domain.Flight{ID: 20, FromCityID: 5, ToCityID: 1, Airline: "AirA", DepartureMinutes: 18 * 60, DurationMinutes: 180, Price: 220},
		Hotel:    &domain.Hotel{ID: 30, CityID: 5, Name: "Mid Hotel", Stars: 4, Rating: 4.3, PricePerNight: 140},
		Attractions: []domain.Attraction{
			{ID: 40, CityID: 5, Name: "Hagia Sophia", Category: "museum", Rating: 4.9, EntryFee: 25},
			{ID: 41, CityID: 5, Name: "Blue Mosque", Category: "religious", Rating: 4.8, EntryFee: 0},
			{ID: 42, CityID: 5, Name: "Topkapi Palace", Category: "museum", Rating: 4.7, EntryFee: 30},
			{ID: 43, CityID: 5, Name: "Galata Tower", Category: "viewpoint", Rating: 4.4, EntryFee: 15},
		},
		Restaurants: []domain.Restaurant{
			{ID: 50, CityID: 5, Name: "Meze House", Cuisine: "turkish", Rating: 4.6, PriceRange: "$$"},
			{ID: 51, CityID: 5, Name: "Bosphorus Fish", Cuisine: "seafood", Rating: 4.5, PriceRange: "$$$"},
		},
		ActivitiesBudget: activities,
	}
}

func TestPlanItinerary_OneDayPerCalendarDate(t *testing.T) {
	t.Parallel()

	for _, days := range []int{2, 4, 7} {
		plan := service.PlanItinerary(planningInput(days, 3000))

		if len(plan) != days {
			t.Fatalf("%d-day trip: expected %d planned days, got %d", days, days, len(plan))
		}
		for i, p := range plan {
			if p.Day.DayNumber != i+1 {
				t.Errorf("day %d: expected day_number %d, got %d", i, i+1, p.Day.DayNumber)
			}
			wantDate := time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC)
			if !p.Day.Date.Equal(wantDate) {
				t.Errorf("day %d: expected date %s, got %s", i+1, wantDate, p.Day.Date)
			}
		}
	}
}

func TestPlanItinerary_EdgeDaysCarryFlights(t *testing.T) {
	t.Parallel()

	in := planningInput(4, 3000)
	plan := service.PlanItinerary(in)

	first := plan[0].Activities
	if len(first) < 2 {
		t.Fatalf("expected flight and hotel on day 1, got %d activities", len(first))
	}
	if first[0].Kind != domain.ActivityFlight || first[0].EntityID != in.Outbound.ID {
		t.Errorf("day 1: expected outbound flight first, got %s %d", first[0].Kind, first[0].EntityID)
	}
	if first[1].Kind != domain.ActivityHotel || first[1].EntityID != in.Hotel.ID {
		t.Errorf("day 1: expected hotel check-in after the flight, got %s %d", first[1].Kind, first[1].EntityID)
	}
	if !first[0].StartTime.Equal(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("outbound departure window wrong: %s", first[0].StartTime)
	}

	last := plan[len(plan)-1].Activities
	if len(last) != 1 || last[0].Kind != domain.ActivityFlight || last[0].EntityID != in.Inbound.ID {
		t.Errorf("last day: expected only the inbound flight, got %v", last)
	}

	// Hotel appears on the arrival day only.
	hotelDays := 0
	for _, p := range plan {
		for _, a := range p.Activities {
			if a.Kind == domain.ActivityHotel {
				hotelDays++
			}
		}
	}
	if hotelDays != 1 {
		t.Errorf("expected hotel activity on arrival day only, found %d", hotelDays)
	}
}

func TestPlanItinerary_NoOverlappingActivities(t *testing.T) {
	t.Parallel()

	plan := service.PlanItinerary(planningInput(6, 3000))

	for _, p := range plan {
		acts := p.Activities
		for i := 0; i < len(acts); i++ {
			for j := i + 1; j < len(acts); j++ {
				if acts[i].Overlaps(&acts[j]) {
					t.Errorf("day %d: activities %s and %s overlap",
						p.Day.DayNumber, acts[i].ID, acts[j].ID)
				}
			}
		}
	}
}

func TestPlanItinerary_MiddleDaysScheduleAttractionsAndDinner(t *testing.T) {
	t.Parallel()

	plan := service.PlanItinerary(planningInput(4, 3000))

	for _, p := range plan[1 : len(plan)-1] {
		attractions, restaurants := 0, 0
		for _, a := range p.Activities {
			switch a.Kind {
			case domain.ActivityAttraction:
				attractions++
			case domain.ActivityRestaurant:
				restaurants++
			}
		}
		if attractions == 0 {
			t.Errorf("day %d: expected at least one attraction", p.Day.DayNumber)
		}
		if restaurants != 1 {
			t.Errorf("day %d: expected one dinner, got %d", p.Day.DayNumber, restaurants)
		}
	}
}

func TestPlanItinerary_UnaffordableAttractionsDroppedNotFatal(t *testing.T) {
	t.Parallel()

	in := planningInput(4, 3000)
	in.ActivitiesBudget = 10 // below every paid entry fee

	plan := service.PlanItinerary(in)
	if len(plan) != 4 {
		t.Fatalf("expected 4 days regardless of budget, got %d", len(plan))
	}

	for _, p := range plan[1:3] {
		for _, a := range p.Activities {
			if a.Kind != domain.ActivityAttraction {
				continue
			}
			// Only the free attraction fits a 5-per-day budget.
			if a.EntityID != 41 {
				t.Errorf("day %d: unaffordable attraction %d scheduled", p.Day.DayNumber, a.EntityID)
			}
		}
	}
}

func TestPlanItinerary_PreferredCategoriesFilterAttractions(t *testing.T) {
	t.Parallel()

	in := planningInput(5, 3000)
	in.Preferences = &domain.Preferences{UserID: 1, HomeCityID: 1, PreferredCategories: "museum"}

	plan := service.PlanItinerary(in)

	for _, p := range plan[1 : len(plan)-1] {
		for _, a := range p.Activities {
			if a.Kind != domain.ActivityAttraction {
				continue
			}
			if a.EntityID != 40 && a.EntityID != 42 {
				t.Errorf("day %d: non-museum attraction %d scheduled despite preference",
					p.Day.DayNumber, a.EntityID)
			}
		}
	}
}

func TestPlanItinerary_EmptyPreferenceMatchFallsBackToAll(t *testing.T) {
	t.Parallel()

	in := planningInput(4, 3000)
	in.Preferences = &domain.Preferences{UserID: 1, HomeCityID: 1, PreferredCategories: "beach"}

	plan := service.PlanItinerary(in)

	scheduled := 0
	for _, p := range plan[1:3] {
		for _, a := range p.Activities {
			if a.Kind == domain.ActivityAttraction {
				scheduled++
			}
		}
	}
	if scheduled == 0 {
		t.Error("a preference with no catalog match must not empty the itinerary")
	}
}

// ──────────────────────────────────────────────
// BACKGROUND BUILD ORCHESTRATION
// ──────────────────────────────────────────────

// blockingCommitter parks inside CommitPlan until released or cancelled, so
// tests can hold a build in flight and observe how many commits ran.
type blockingCommitter struct {
	entered chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func newBlockingCommitter() *blockingCommitter {
	return &blockingCommitter{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (c *blockingCommitter) CommitPlan(ctx context.Context, trip *domain.Trip, plan []service.PlannedDay) error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	select {
	case c.entered <- struct{}{}:
	default:
	}

	select {
	case <-c.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *blockingCommitter) commits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newBuildFixture(committer service.PlanCommitter) (*service.BuilderService, *MockTripRepository) {
	tripRepo := NewMockTripRepository()

	catalogRepo := NewMockCatalogRepository()
	catalogRepo.AddFlight(&domain.Flight{ID: 10, FromCityID: 1, ToCityID: 5, Airline: "AirA", DepartureMinutes: 8 * 60, DurationMinutes: 180, Price: 200})
	catalogRepo.AddFlight(&domain.Flight{ID: 20, FromCityID: 5, ToCityID: 1, Airline: "AirA", DepartureMinutes: 18 * 60, DurationMinutes: 180, Price: 220})
	catalogRepo.AddHotel(&domain.Hotel{ID: 30, CityID: 5, Name: "Mid Hotel", Stars: 4, Rating: 4.3, PricePerNight: 140})
	catalogRepo.AddRestaurant(&domain.Restaurant{ID: 50, CityID: 5, Name: "Meze House", Cuisine: "turkish", Rating: 4.6, PriceRange: "$$"})

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tripRepo.AddTrip(&domain.Trip{
		ID:                     "trip-1",
		UserID:                 1,
		DestinationCityID:      5,
		StartDate:              start,
		EndDate:                start.AddDate(0, 0, 3),
		TotalBudget:            3000,
		Status:                 domain.TripStatusProcessing,
		ChosenTier:             domain.TierStandard,
		ChosenHotelID:          30,
		ChosenOutboundFlightID: 10,
		ChosenInboundFlightID:  20,
	})

	builder := service.NewBuilderServiceWithCommitter(
		committer,
		tripRepo,
		service.NewCatalogService(catalogRepo, nil),
		NewMockPreferencesRepository(),
		NewMockLockStore(),
	)
	return builder, tripRepo
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("build did not finish in time")
	}
}

func TestStartBuild_DuplicateRequestJoinsInFlightBuild(t *testing.T) {
	t.Parallel()

	committer := newBlockingCommitter()
	builder, _ := newBuildFixture(committer)

	first := builder.StartBuild("trip-1")
	second := builder.StartBuild("trip-1")

	if first != second {
		t.Error("expected the second request to join the in-flight build")
	}

	select {
	case <-committer.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("build never reached the commit step")
	}

	close(committer.release)
	waitDone(t, first)
	waitDone(t, second)

	if got := committer.commits(); got != 1 {
		t.Errorf("expected exactly one commit for concurrent requests, got %d", got)
	}
}

func TestStartBuild_NewBuildAllowedAfterPreviousFinishes(t *testing.T) {
	t.Parallel()

	committer := newBlockingCommitter()
	builder, _ := newBuildFixture(committer)

	close(committer.release)
	waitDone(t, builder.StartBuild("trip-1"))
	waitDone(t, builder.StartBuild("trip-1"))

	if got := committer.commits(); got != 2 {
		t.Errorf("expected a fresh build per completed request, got %d commits", got)
	}
}

func TestCancelBuild_AbortsWithoutRecordingBuildError(t *testing.T) {
	t.Parallel()

	committer := newBlockingCommitter()
	builder, tripRepo := newBuildFixture(committer)

	done := builder.StartBuild("trip-1")

	select {
	case <-committer.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("build never reached the commit step")
	}

	builder.CancelBuild("trip-1")
	waitDone(t, done)

	trip := tripRepo.GetTrip("trip-1")
	if trip.Status != domain.TripStatusProcessing {
		t.Errorf("expected trip untouched after abort, got status %s", trip.Status)
	}
	if trip.LastBuildError != "" {
		t.Errorf("an aborted build must not record a build error, got %q", trip.LastBuildError)
	}
}
