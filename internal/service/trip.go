package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelplan/internal/domain"
	"travelplan/internal/repository"
	"travelplan/internal/repository/postgres"
)

const dateLayout = "2006-01-02"

// CreateTripInput collects the validated fields for a new trip.
type CreateTripInput struct {
	UserID            int64
	Title             string
	DestinationCityID int64
	StartDate         string
	EndDate           string
	TotalBudget       float64
}

// TripService owns the trip lifecycle: creation, option selection,
// cancellation and deletion.
type TripService struct {
	db       *sql.DB
	tripRepo repository.TripRepository
	catalog  *CatalogService
	builder  *BuilderService
}

// NewTripService creates a new TripService.
func NewTripService(db *sql.DB, tripRepo repository.TripRepository, catalog *CatalogService, builder *BuilderService) *TripService {
	return &TripService{
		db:       db,
		tripRepo: tripRepo,
		catalog:  catalog,
		builder:  builder,
	}
}

// CreateTrip validates the input and persists a new trip in pending status.
func (s *TripService) CreateTrip(ctx context.Context, in CreateTripInput) (*domain.Trip, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}

	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	// A trip needs at least one night, so same-day ranges are rejected too.
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	if in.TotalBudget <= 0 {
		return nil, ErrInvalidBudget
	}

	if err := s.catalog.CityExists(ctx, in.DestinationCityID); err != nil {
		return nil, err
	}

	trip := &domain.Trip{
		ID:                uuid.New().String(),
		UserID:            in.UserID,
		Title:             title,
		DestinationCityID: in.DestinationCityID,
		StartDate:         start,
		EndDate:           end,
		TotalBudget:       in.TotalBudget,
		Status:            domain.TripStatusPending,
		CreatedAt:         time.Now(),
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// GetTrip returns a trip by id.
func (s *TripService) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	if id == "" {
		return nil, ErrInvalidTripID
	}
	return s.tripRepo.GetByID(ctx, id)
}

// ListTrips returns all trips owned by the user, newest first.
func (s *TripService) ListTrips(ctx context.Context, userID int64) ([]*domain.Trip, error) {
	return s.tripRepo.GetAllByUserID(ctx, userID)
}

// SelectOptionInput names the option the traveler committed to.
type SelectOptionInput struct {
	Tier             domain.Tier
	HotelID          int64
	OutboundFlightID int64
	InboundFlightID  int64
}

// SelectOption commits the traveler to one generated option. The trip moves
// from pending to processing atomically and the itinerary build starts in
// the background. Selecting on a non-pending trip fails with
// ErrTripNotPending (or ErrTripCancelled for cancelled trips).
func (s *TripService) SelectOption(ctx context.Context, tripID string, in SelectOptionInput) (*domain.Trip, error) {
	if !domain.ValidTier(string(in.Tier)) {
		return nil, ErrInvalidTier
	}

	if _, err := s.catalog.GetHotel(ctx, in.HotelID); err != nil {
		return nil, selectionErr(err)
	}
	if _, err := s.catalog.GetFlight(ctx, in.OutboundFlightID); err != nil {
		return nil, selectionErr(err)
	}
	if _, err := s.catalog.GetFlight(ctx, in.InboundFlightID); err != nil {
		return nil, selectionErr(err)
	}

	sel := repository.OptionSelection{
		Tier:             in.Tier,
		HotelID:          in.HotelID,
		OutboundFlightID: in.OutboundFlightID,
		InboundFlightID:  in.InboundFlightID,
	}

	moved, err := s.tripRepo.SelectOption(ctx, tripID, sel)
	if err != nil {
		return nil, err
	}
	if !moved {
		trip, err := s.tripRepo.GetByID(ctx, tripID)
		if err != nil {
			return nil, err
		}
		if trip.Status == domain.TripStatusCancelled {
			return nil, ErrTripCancelled
		}
		return nil, ErrTripNotPending
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if s.builder != nil {
		s.builder.StartBuild(trip.ID)
	}

	return trip, nil
}

// selectionErr turns a missing catalog row into ErrUnknownSelection so the
// caller sees a validation failure rather than a 404 for the trip itself.
func selectionErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUnknownSelection
	}
	return err
}

// CancelTrip marks the trip cancelled and aborts any in-flight itinerary
// build. Cancelling an already cancelled trip is a no-op.
func (s *TripService) CancelTrip(ctx context.Context, tripID string) error {
	if tripID == "" {
		return ErrInvalidTripID
	}

	if err := s.tripRepo.Cancel(ctx, tripID); err != nil {
		return err
	}

	if s.builder != nil {
		s.builder.CancelBuild(tripID)
	}

	return nil
}

// DeleteTrip removes the trip together with its itinerary days and
// activities in one transaction. A build in flight for the trip is aborted
// first so it cannot resurrect rows after the delete.
func (s *TripService) DeleteTrip(ctx context.Context, tripID string) error {
	if tripID == "" {
		return ErrInvalidTripID
	}

	if s.builder != nil {
		s.builder.CancelBuild(tripID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
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

	if _, err = txTripRepo.GetByID(ctx, tripID); err != nil {
		return err
	}

	if err = txActivityRepo.DeleteByTripID(ctx, tripID); err != nil {
		return err
	}
	if err = txItineraryRepo.DeleteByTripID(ctx, tripID); err != nil {
		return err
	}
	if err = txTripRepo.Delete(ctx, tripID); err != nil {
		return err
	}

	return tx.Commit()
}
