package service

import (
	"context"

	"travelplan/internal/domain"
	"travelplan/internal/repository"
)

// ItineraryService serves built itineraries and exposes the PDF export.
type ItineraryService struct {
	tripRepo      repository.TripRepository
	itineraryRepo repository.ItineraryRepository
	activityRepo  repository.ActivityRepository
	catalog       *CatalogService
	enricher      *EnricherService
	builder       *BuilderService
}

// NewItineraryService creates a new ItineraryService.
func NewItineraryService(
	tripRepo repository.TripRepository,
	itineraryRepo repository.ItineraryRepository,
	activityRepo repository.ActivityRepository,
	catalog *CatalogService,
	enricher *EnricherService,
	builder *BuilderService,
) *ItineraryService {
	return &ItineraryService{
		tripRepo:      tripRepo,
		itineraryRepo: itineraryRepo,
		activityRepo:  activityRepo,
		catalog:       catalog,
		enricher:      enricher,
		builder:       builder,
	}
}

// Days returns the trip's itinerary days ordered by day number. While the
// trip is still processing the list is empty; fetching a stuck processing
// trip whose last build failed kicks off a fresh build attempt.
func (s *ItineraryService) Days(ctx context.Context, tripID string) (*domain.Trip, []*domain.ItineraryDay, error) {
	if tripID == "" {
		return nil, nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	if trip.Status == domain.TripStatusProcessing {
		if trip.LastBuildError != "" && s.builder != nil {
			s.builder.StartBuild(trip.ID)
		}
		return trip, []*domain.ItineraryDay{}, nil
	}

	days, err := s.itineraryRepo.GetDaysByTripID(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	return trip, days, nil
}

// Activities returns the enriched activities of one itinerary day.
func (s *ItineraryService) Activities(ctx context.Context, dayID string) ([]domain.EnrichedActivity, error) {
	if _, err := s.itineraryRepo.GetDayByID(ctx, dayID); err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.GetByDayID(ctx, dayID)
	if err != nil {
		return nil, err
	}

	return s.enricher.EnrichDay(ctx, activities)
}

// ExportPDF renders the completed itinerary as a PDF document. Trips that
// have not finished building cannot be exported.
func (s *ItineraryService) ExportPDF(ctx context.Context, tripID string) ([]byte, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.Status != domain.TripStatusCompleted {
		return nil, ErrItineraryNotReady
	}

	city, err := s.catalog.GetCity(ctx, trip.DestinationCityID)
	if err != nil {
		return nil, err
	}

	days, err := s.itineraryRepo.GetDaysByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]domain.EnrichedActivity, len(days))
	for _, day := range days {
		activities, err := s.activityRepo.GetByDayID(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		enriched, err := s.enricher.EnrichDay(ctx, activities)
		if err != nil {
			return nil, err
		}
		byDay[day.ID] = enriched
	}

	return RenderItineraryPDF(ItineraryPDFData{
		Trip:       trip,
		City:       city,
		Days:       days,
		Activities: byDay,
	})
}
