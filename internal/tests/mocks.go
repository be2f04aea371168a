package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"travelplan/internal/domain"
	"travelplan/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	CreateCallCount       int32
	SelectOptionCallCount int32
	CancelCallCount       int32
	DeleteCallCount       int32

	// Error injection
	CreateError       error
	SelectOptionError error
	CancelError       error
	DeleteError       error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

// GetTrip returns a trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0)
	for _, t := range m.trips {
		if t.UserID == userID {
			copy := *t
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockTripRepository) SelectOption(ctx context.Context, id string, sel repository.OptionSelection) (bool, error) {
	atomic.AddInt32(&m.SelectOptionCallCount, 1)
	if m.SelectOptionError != nil {
		return false, m.SelectOptionError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if trip.Status != domain.TripStatusPending {
		return false, nil
	}
	trip.Status = domain.TripStatusProcessing
	trip.ChosenTier = sel.Tier
	trip.ChosenHotelID = sel.HotelID
	trip.ChosenOutboundFlightID = sel.OutboundFlightID
	trip.ChosenInboundFlightID = sel.InboundFlightID
	return true, nil
}

func (m *MockTripRepository) UpdateStatusIf(ctx context.Context, id string, from, to domain.TripStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if trip.Status != from {
		return false, nil
	}
	trip.Status = to
	return true, nil
}

func (m *MockTripRepository) Cancel(ctx context.Context, id string) error {
	atomic.AddInt32(&m.CancelCallCount, 1)
	if m.CancelError != nil {
		return m.CancelError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	trip.Status = domain.TripStatusCancelled
	return nil
}

func (m *MockTripRepository) RecordBuildError(ctx context.Context, id string, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	trip.LastBuildError = msg
	return nil
}

func (m *MockTripRepository) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK ITINERARY REPOSITORY
// ──────────────────────────────────────────────

// MockItineraryRepository is a mock implementation of ItineraryRepository.
type MockItineraryRepository struct {
	mu   sync.RWMutex
	days map[string]*domain.ItineraryDay

	CreateDayCallCount int32
	CreateDayError     error
}

// NewMockItineraryRepository creates a new mock itinerary repository.
func NewMockItineraryRepository() *MockItineraryRepository {
	return &MockItineraryRepository{
		days: make(map[string]*domain.ItineraryDay),
	}
}

// AddDay adds a day to the mock repository.
func (m *MockItineraryRepository) AddDay(day *domain.ItineraryDay) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[day.ID] = day
}

// CountDays returns the number of days stored for a trip.
func (m *MockItineraryRepository) CountDays(tripID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, d := range m.days {
		if d.TripID == tripID {
			n++
		}
	}
	return n
}

func (m *MockItineraryRepository) CreateDay(ctx context.Context, day *domain.ItineraryDay) error {
	atomic.AddInt32(&m.CreateDayCallCount, 1)
	if m.CreateDayError != nil {
		return m.CreateDayError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *day
	m.days[day.ID] = &copy
	return nil
}

func (m *MockItineraryRepository) GetDaysByTripID(ctx context.Context, tripID string) ([]*domain.ItineraryDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.ItineraryDay, 0)
	for _, d := range m.days {
		if d.TripID == tripID {
			copy := *d
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DayNumber < result[j].DayNumber
	})
	return result, nil
}

func (m *MockItineraryRepository) GetDayByID(ctx context.Context, id string) (*domain.ItineraryDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	day, ok := m.days[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *day
	return &copy, nil
}

func (m *MockItineraryRepository) DeleteByTripID(ctx context.Context, tripID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, d := range m.days {
		if d.TripID == tripID {
			delete(m.days, id)
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK ACTIVITY REPOSITORY
// ──────────────────────────────────────────────

// MockActivityRepository is a mock implementation of ActivityRepository.
// DeleteByTripID needs the day-to-trip mapping, so it is wired to a
// MockItineraryRepository.
type MockActivityRepository struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
	days       *MockItineraryRepository

	CreateCallCount int32
	CreateError     error
}

// NewMockActivityRepository creates a new mock activity repository.
func NewMockActivityRepository(days *MockItineraryRepository) *MockActivityRepository {
	return &MockActivityRepository{
		activities: make(map[string]*domain.Activity),
		days:       days,
	}
}

// AddActivity adds an activity to the mock repository.
func (m *MockActivityRepository) AddActivity(activity *domain.Activity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities[activity.ID] = activity
}

// CountActivities returns the total number of stored activities.
func (m *MockActivityRepository) CountActivities() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.activities)
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *activity
	m.activities[activity.ID] = &copy
	return nil
}

func (m *MockActivityRepository) GetByDayID(ctx context.Context, dayID string) ([]*domain.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Activity, 0)
	for _, a := range m.activities {
		if a.DayID == dayID {
			copy := *a
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (m *MockActivityRepository) DeleteByTripID(ctx context.Context, tripID string) error {
	dayIDs := make(map[string]bool)
	if m.days != nil {
		days, _ := m.days.GetDaysByTripID(ctx, tripID)
		for _, d := range days {
			dayIDs[d.ID] = true
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.activities {
		if dayIDs[a.DayID] {
			delete(m.activities, id)
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK CATALOG REPOSITORY
// ──────────────────────────────────────────────

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mu          sync.RWMutex
	cities      map[int64]*domain.City
	hotels      map[int64]*domain.Hotel
	attractions map[int64]*domain.Attraction
	restaurants map[int64]*domain.Restaurant
	flights     map[int64]*domain.Flight

	FlightsByRouteCallCount int32
	HotelsByCityCallCount   int32
}

// NewMockCatalogRepository creates a new mock catalog repository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		cities:      make(map[int64]*domain.City),
		hotels:      make(map[int64]*domain.Hotel),
		attractions: make(map[int64]*domain.Attraction),
		restaurants: make(map[int64]*domain.Restaurant),
		flights:     make(map[int64]*domain.Flight),
	}
}

// AddCity adds a city to the mock catalog.
func (m *MockCatalogRepository) AddCity(c *domain.City) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cities[c.ID] = c
}

// AddHotel adds a hotel to the mock catalog.
func (m *MockCatalogRepository) AddHotel(h *domain.Hotel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotels[h.ID] = h
}

// AddAttraction adds an attraction to the mock catalog.
func (m *MockCatalogRepository) AddAttraction(a *domain.Attraction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attractions[a.ID] = a
}

// AddRestaurant adds a restaurant to the mock catalog.
func (m *MockCatalogRepository) AddRestaurant(r *domain.Restaurant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restaurants[r.ID] = r
}

// AddFlight adds a flight to the mock catalog.
func (m *MockCatalogRepository) AddFlight(f *domain.Flight) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flights[f.ID] = f
}

func (m *MockCatalogRepository) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *c
	return &copy, nil
}

func (m *MockCatalogRepository) HotelsByCity(ctx context.Context, cityID int64) ([]domain.Hotel, error) {
	atomic.AddInt32(&m.HotelsByCityCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Hotel, 0)
	for _, h := range m.hotels {
		if h.CityID == cityID {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockCatalogRepository) AttractionsByCity(ctx context.Context, cityID int64) ([]domain.Attraction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Attraction, 0)
	for _, a := range m.attractions {
		if a.CityID == cityID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockCatalogRepository) RestaurantsByCity(ctx context.Context, cityID int64) ([]domain.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Restaurant, 0)
	for _, r := range m.restaurants {
		if r.CityID == cityID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockCatalogRepository) FlightsByRoute(ctx context.Context, fromCityID, toCityID int64) ([]domain.Flight, error) {
	atomic.AddInt32(&m.FlightsByRouteCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Flight, 0)
	for _, f := range m.flights {
		if f.FromCityID == fromCityID && f.ToCityID == toCityID {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockCatalogRepository) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hotels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *h
	return &copy, nil
}

func (m *MockCatalogRepository) GetAttraction(ctx context.Context, id int64) (*domain.Attraction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attractions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *a
	return &copy, nil
}

func (m *MockCatalogRepository) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.restaurants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *r
	return &copy, nil
}

func (m *MockCatalogRepository) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.flights[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *f
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK PREFERENCES REPOSITORY
// ──────────────────────────────────────────────

// MockPreferencesRepository is a mock implementation of PreferencesRepository.
type MockPreferencesRepository struct {
	mu    sync.RWMutex
	prefs map[int64]*domain.Preferences
}

// NewMockPreferencesRepository creates a new mock preferences repository.
func NewMockPreferencesRepository() *MockPreferencesRepository {
	return &MockPreferencesRepository{
		prefs: make(map[int64]*domain.Preferences),
	}
}

// AddPreferences adds preferences to the mock repository.
func (m *MockPreferencesRepository) AddPreferences(p *domain.Preferences) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[p.UserID] = p
}

func (m *MockPreferencesRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.prefs[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	AcquireCallCount int32
	AcquireError     error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireBuildLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[tripID] {
		return false, nil
	}
	m.locks[tripID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseBuildLock(ctx context.Context, tripID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, tripID)
	return nil
}
