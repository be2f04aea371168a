package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"travelplan/internal/domain"
	"travelplan/internal/repository"
)

// EnricherService resolves raw activity rows into display-ready entries by
// joining each activity's entity reference against the catalog.
type EnricherService struct {
	catalog *CatalogService
}

// NewEnricherService creates a new EnricherService.
func NewEnricherService(catalog *CatalogService) *EnricherService {
	return &EnricherService{catalog: catalog}
}

// EnrichDay enriches every activity of an itinerary day. An activity whose
// referenced entity no longer exists in the catalog is logged and skipped
// rather than failing the whole day; genuine lookup errors propagate.
func (s *EnricherService) EnrichDay(ctx context.Context, activities []*domain.Activity) ([]domain.EnrichedActivity, error) {
	enriched := make([]domain.EnrichedActivity, 0, len(activities))

	for _, a := range activities {
		e, err := s.enrich(ctx, a)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Printf("enrich: %s %d referenced by activity %s no longer exists, skipping", a.Kind, a.EntityID, a.ID)
				continue
			}
			return nil, err
		}

		enriched = append(enriched, e)
	}

	return enriched, nil
}

func (s *EnricherService) enrich(ctx context.Context, a *domain.Activity) (domain.EnrichedActivity, error) {
	e := domain.EnrichedActivity{
		ActivityID: a.ID,
		Kind:       a.Kind,
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		Notes:      a.Notes,
	}

	switch a.Kind {
	case domain.ActivityHotel:
		h, err := s.catalog.GetHotel(ctx, a.EntityID)
		if err != nil {
			return e, err
		}
		e.EntityName = h.Name
		e.EntityDetail = h.Address
		e.EntityExtra = fmt.Sprintf("%.2f per night", h.PricePerNight)
		e.EntityRating = h.Rating

	case domain.ActivityAttraction:
		at, err := s.catalog.GetAttraction(ctx, a.EntityID)
		if err != nil {
			return e, err
		}
		e.EntityName = at.Name
		e.EntityDetail = at.Category
		e.EntityExtra = fmt.Sprintf("entry fee %.2f", at.EntryFee)
		e.EntityRating = at.Rating

	case domain.ActivityRestaurant:
		r, err := s.catalog.GetRestaurant(ctx, a.EntityID)
		if err != nil {
			return e, err
		}
		e.EntityName = r.Name
		e.EntityDetail = r.Cuisine
		e.EntityExtra = r.PriceRange
		e.EntityRating = r.Rating

	case domain.ActivityFlight:
		f, err := s.catalog.GetFlight(ctx, a.EntityID)
		if err != nil {
			return e, err
		}
		e.EntityName = f.Airline
		e.EntityDetail = fmt.Sprintf("%d min", f.DurationMinutes)
		e.EntityExtra = fmt.Sprintf("%.2f", f.Price)

	default:
		return e, fmt.Errorf("unknown activity kind: %s", a.Kind)
	}

	return e, nil
}
