package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"travelplan/internal/domain"
	"travelplan/internal/redis"
	"travelplan/internal/repository"
	"travelplan/internal/repository/postgres"
)

const buildLockTTL = 2 * time.Minute

// Mid-stay day slots. The fixed windows never overlap each other, and the
// planner still checks every insertion so edge days with real flight times
// stay conflict-free.
const (
	morningSlotStart   = 10 * 60 // minutes after midnight
	morningSlotEnd     = 12 * 60
	afternoonSlotStart = 14 * 60
	afternoonSlotEnd   = 16 * 60
	eveningSlotStart   = 19 * 60
	eveningSlotEnd     = 19*60 + 90
)

const attractionsPerDay = 2

// PlanCommitter persists a computed plan for a trip.
type PlanCommitter interface {
	CommitPlan(ctx context.Context, trip *domain.Trip, plan []PlannedDay) error
}

// BuilderService generates itineraries for trips that entered processing.
// Builds run as background tasks keyed by trip id: a second request for the
// same trip joins the in-flight build instead of double-building, and an
// optional Redis lock guards against another process doing the same.
type BuilderService struct {
	committer PlanCommitter
	tripRepo  repository.TripRepository
	catalog   *CatalogService
	prefsRepo repository.PreferencesRepository
	lockStore redis.LockStoreInterface

	mu       sync.Mutex
	inflight map[string]*buildJob
}

type buildJob struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewBuilderService creates a new BuilderService committing plans to the
// database in a single transaction. lockStore may be nil when running
// without Redis.
func NewBuilderService(
	db *sql.DB,
	tripRepo repository.TripRepository,
	catalog *CatalogService,
	prefsRepo repository.PreferencesRepository,
	lockStore redis.LockStoreInterface,
) *BuilderService {
	return NewBuilderServiceWithCommitter(&txPlanCommitter{db: db}, tripRepo, catalog, prefsRepo, lockStore)
}

// NewBuilderServiceWithCommitter creates a BuilderService with an explicit
// persistence step. Tests use it to observe commits without a database.
func NewBuilderServiceWithCommitter(
	committer PlanCommitter,
	tripRepo repository.TripRepository,
	catalog *CatalogService,
	prefsRepo repository.PreferencesRepository,
	lockStore redis.LockStoreInterface,
) *BuilderService {
	return &BuilderService{
		committer: committer,
		tripRepo:  tripRepo,
		catalog:   catalog,
		prefsRepo: prefsRepo,
		lockStore: lockStore,
		inflight:  make(map[string]*buildJob),
	}
}

// StartBuild schedules an itinerary build for the trip. If a build for the
// same trip is already in flight this is a no-op that joins it. Returns a
// channel closed when the build finishes.
func (s *BuilderService) StartBuild(tripID string) <-chan struct{} {
	s.mu.Lock()
	if job, ok := s.inflight[tripID]; ok {
		s.mu.Unlock()
		return job.done
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &buildJob{cancel: cancel, done: make(chan struct{})}
	s.inflight[tripID] = job
	s.mu.Unlock()

	go func() {
		defer func() {
			cancel()
			s.mu.Lock()
			delete(s.inflight, tripID)
			s.mu.Unlock()
			close(job.done)
		}()
		s.run(ctx, tripID)
	}()

	return job.done
}

// CancelBuild aborts an in-flight build for the trip, if any. Safe to call
// when no build is running.
func (s *BuilderService) CancelBuild(tripID string) {
	s.mu.Lock()
	job, ok := s.inflight[tripID]
	s.mu.Unlock()
	if ok {
		job.cancel()
	}
}

func (s *BuilderService) run(ctx context.Context, tripID string) {
	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireBuildLock(ctx, tripID, buildLockTTL)
		if err != nil {
			log.Printf("build %s: lock error: %v", tripID, err)
			return
		}
		if !locked {
			// Another process is building this trip.
			return
		}
		defer func() {
			_ = s.lockStore.ReleaseBuildLock(context.Background(), tripID)
		}()
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("build %s: load trip: %v", tripID, err)
		}
		return
	}

	if trip.Status != domain.TripStatusProcessing {
		return
	}

	plan, err := s.plan(ctx, trip)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("build %s: %v", tripID, err)
		_ = s.tripRepo.RecordBuildError(context.Background(), tripID, err.Error())
		return
	}

	if err := s.committer.CommitPlan(ctx, trip, plan); err != nil {
		if ctx.Err() != nil {
			// Cancelled or deleted while building; the delete wins.
			return
		}
		log.Printf("build %s: commit: %v", tripID, err)
		_ = s.tripRepo.RecordBuildError(context.Background(), tripID, err.Error())
	}
}

// plan gathers the selected entities and catalog candidates and computes
// the day plans.
func (s *BuilderService) plan(ctx context.Context, trip *domain.Trip) ([]PlannedDay, error) {
	outbound, err := s.catalog.GetFlight(ctx, trip.ChosenOutboundFlightID)
	if err != nil {
		return nil, fmt.Errorf("outbound flight %d: %w", trip.ChosenOutboundFlightID, err)
	}

	inbound, err := s.catalog.GetFlight(ctx, trip.ChosenInboundFlightID)
	if err != nil {
		return nil, fmt.Errorf("inbound flight %d: %w", trip.ChosenInboundFlightID, err)
	}

	hotel, err := s.catalog.GetHotel(ctx, trip.ChosenHotelID)
	if err != nil {
		return nil, fmt.Errorf("hotel %d: %w", trip.ChosenHotelID, err)
	}

	attractions, err := s.catalog.AttractionsIn(ctx, trip.DestinationCityID)
	if err != nil {
		return nil, err
	}

	restaurants, err := s.catalog.RestaurantsIn(ctx, trip.DestinationCityID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefsRepo.GetByUserID(ctx, trip.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	_, activitiesBudget := AllocateBudget(trip.ChosenTier, trip.TotalBudget)

	return PlanItinerary(BuildInput{
		Trip:             trip,
		Outbound:         outbound,
		Inbound:          inbound,
		Hotel:            hotel,
		Attractions:      attractions,
		Restaurants:      restaurants,
		Preferences:      prefs,
		ActivitiesBudget: activitiesBudget,
	}), nil
}

// txPlanCommitter writes the plan in one transaction. The trip row is
// re-read under the transaction so a concurrent delete or cancel wins over
// the build, and any rows from a previous failed attempt are replaced, which
// makes the rebuild idempotent.
type txPlanCommitter struct {
	db *sql.DB
}

func (c *txPlanCommitter) CommitPlan(ctx context.Context, trip *domain.Trip, plan []PlannedDay) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txItineraryRepo := postgres.NewItineraryRepositoryWithTx(tx)
	txActivityRepo := postgres.NewActivityRepositoryWithTx(tx)

	current, err := txTripRepo.GetByID(ctx, trip.ID)
	if err != nil {
		return err
	}
	if current.Status != domain.TripStatusProcessing {
		err = fmt.Errorf("trip left processing state: %s", current.Status)
		return err
	}

	if err = txActivityRepo.DeleteByTripID(ctx, trip.ID); err != nil {
		return err
	}
	if err = txItineraryRepo.DeleteByTripID(ctx, trip.ID); err != nil {
		return err
	}

	for i := range plan {
		if err = txItineraryRepo.CreateDay(ctx, &plan[i].Day); err != nil {
			return err
		}
		for j := range plan[i].Activities {
			if err = txActivityRepo.Create(ctx, &plan[i].Activities[j]); err != nil {
				return err
			}
		}
	}

	var moved bool
	moved, err = txTripRepo.UpdateStatusIf(ctx, trip.ID, domain.TripStatusProcessing, domain.TripStatusCompleted)
	if err != nil {
		return err
	}
	if !moved {
		err = errors.New("trip status changed during build")
		return err
	}

	if err = txTripRepo.RecordBuildError(ctx, trip.ID, ""); err != nil {
		return err
	}

	return tx.Commit()
}

// BuildInput is everything the planner needs; it touches no storage so the
// planning rules can be exercised directly in tests.
type BuildInput struct {
	Trip             *domain.Trip
	Outbound         *domain.Flight
	Inbound          *domain.Flight
	Hotel            *domain.Hotel
	Attractions      []domain.Attraction
	Restaurants      []domain.Restaurant
	Preferences      *domain.Preferences
	ActivitiesBudget float64
}

// PlannedDay is one computed itinerary day with its scheduled activities.
type PlannedDay struct {
	Day        domain.ItineraryDay
	Activities []domain.Activity
}

// PlanItinerary expands the trip's date range into one day per calendar
// date and assigns activities with non-overlapping time windows.
//
// Day 1 carries the outbound flight at its real departure window followed
// by the hotel check-in; the last day carries the inbound flight. Mid-stay
// days get up to two attractions and one restaurant within the daily
// activities budget. The hotel activity appears on the arrival day only. A
// candidate that cannot be placed is dropped; the day itself never fails.
func PlanItinerary(in BuildInput) []PlannedDay {
	totalDays := in.Trip.Days()
	now := time.Now()

	attractions := preferredAttractions(in.Attractions, in.Preferences)
	restaurants := rankedRestaurants(in.Restaurants)

	middleDays := totalDays - 2
	dailyBudget := 0.0
	if middleDays > 0 {
		dailyBudget = in.ActivitiesBudget / float64(middleDays)
	}

	usedAttractions := make(map[int64]bool)
	usedRestaurants := make(map[int64]bool)

	plan := make([]PlannedDay, 0, totalDays)
	for i := 0; i < totalDays; i++ {
		date := in.Trip.StartDate.AddDate(0, 0, i)
		dayNumber := i + 1

		day := domain.ItineraryDay{
			ID:        uuid.New().String(),
			TripID:    in.Trip.ID,
			DayNumber: dayNumber,
			Date:      date,
			Notes:     fmt.Sprintf("Plan for day %d.", dayNumber),
			CreatedAt: now,
		}

		sched := &daySchedule{dayID: day.ID}

		switch {
		case dayNumber == 1:
			start, end := flightWindow(date, in.Outbound)
			sched.place(domain.ActivityFlight, in.Outbound.ID, start, end,
				"Please arrive at the airport 3 hours before departure.")
			sched.place(domain.ActivityHotel, in.Hotel.ID, end, end.Add(time.Hour),
				"Hotel check-in and rest after the flight.")

		case dayNumber == totalDays:
			start, end := flightWindow(date, in.Inbound)
			sched.place(domain.ActivityFlight, in.Inbound.ID, start, end,
				"Return flight. Check out of the hotel before departure.")

		default:
			planMiddleDay(sched, date, dailyBudget, attractions, restaurants, usedAttractions, usedRestaurants)
		}

		plan = append(plan, PlannedDay{Day: day, Activities: sched.activities})
	}

	return plan
}

// planMiddleDay fills a non-edge day: morning and afternoon attractions
// within the daily budget, then an evening restaurant.
func planMiddleDay(
	sched *daySchedule,
	date time.Time,
	dailyBudget float64,
	attractions []domain.Attraction,
	restaurants []domain.Restaurant,
	usedAttractions map[int64]bool,
	usedRestaurants map[int64]bool,
) {
	slots := [attractionsPerDay][2]int{
		{morningSlotStart, morningSlotEnd},
		{afternoonSlotStart, afternoonSlotEnd},
	}

	spent := 0.0
	placed := 0
	for _, a := range attractions {
		if placed == attractionsPerDay {
			break
		}
		if usedAttractions[a.ID] || spent+a.EntryFee > dailyBudget {
			continue
		}

		start := minuteOfDay(date, slots[placed][0])
		end := minuteOfDay(date, slots[placed][1])
		if sched.place(domain.ActivityAttraction, a.ID, start, end, "") {
			usedAttractions[a.ID] = true
			spent += a.EntryFee
			placed++
		}
	}

	if r, ok := pickRestaurant(restaurants, usedRestaurants); ok {
		start := minuteOfDay(date, eveningSlotStart)
		end := minuteOfDay(date, eveningSlotEnd)
		if sched.place(domain.ActivityRestaurant, r.ID, start, end, "Dinner reservation recommended.") {
			usedRestaurants[r.ID] = true
		}
	}
}

// daySchedule accumulates a day's activities and rejects any insertion that
// would overlap an already placed window.
type daySchedule struct {
	dayID      string
	activities []domain.Activity
}

func (s *daySchedule) place(kind domain.ActivityKind, entityID int64, start, end time.Time, notes string) bool {
	candidate := domain.Activity{
		ID:        uuid.New().String(),
		DayID:     s.dayID,
		Kind:      kind,
		EntityID:  entityID,
		StartTime: start,
		EndTime:   end,
		Notes:     notes,
	}

	for i := range s.activities {
		if candidate.Overlaps(&s.activities[i]) {
			return false
		}
	}

	s.activities = append(s.activities, candidate)
	return true
}

// flightWindow projects a flight's scheduled times onto a calendar day.
func flightWindow(date time.Time, f *domain.Flight) (time.Time, time.Time) {
	start := minuteOfDay(date, f.DepartureMinutes)
	return start, start.Add(time.Duration(f.DurationMinutes) * time.Minute)
}

func minuteOfDay(date time.Time, minutes int) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, date.Location()).
		Add(time.Duration(minutes) * time.Minute)
}

// preferredAttractions filters by the traveler's preferred categories when
// that leaves anything to schedule, then ranks by rating, cheaper entry and
// id so planning is deterministic.
func preferredAttractions(attractions []domain.Attraction, prefs *domain.Preferences) []domain.Attraction {
	ranked := make([]domain.Attraction, len(attractions))
	copy(ranked, attractions)

	if set := prefs.CategorySet(); set != nil {
		filtered := make([]domain.Attraction, 0, len(ranked))
		for _, a := range ranked {
			if set[strings.ToLower(a.Category)] {
				filtered = append(filtered, a)
			}
		}
		if len(filtered) > 0 {
			ranked = filtered
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		if ranked[i].EntryFee != ranked[j].EntryFee {
			return ranked[i].EntryFee < ranked[j].EntryFee
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}

func rankedRestaurants(restaurants []domain.Restaurant) []domain.Restaurant {
	ranked := make([]domain.Restaurant, len(restaurants))
	copy(ranked, restaurants)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}

// pickRestaurant prefers an unused restaurant; once all have been visited
// it falls back to the best-rated one.
func pickRestaurant(ranked []domain.Restaurant, used map[int64]bool) (domain.Restaurant, bool) {
	for _, r := range ranked {
		if !used[r.ID] {
			return r, true
		}
	}
	if len(ranked) > 0 {
		return ranked[0], true
	}
	return domain.Restaurant{}, false
}
