package service

import (
	"context"
	"errors"

	"travelplan/internal/domain"
	"travelplan/internal/repository"
)

// OptionService computes tiered trip packages. Generation is a pure
// read-then-compute path: identical trip parameters against an identical
// catalog snapshot always produce identical options, so the client may
// re-request options freely.
type OptionService struct {
	catalog   *CatalogService
	prefsRepo repository.PreferencesRepository
}

// NewOptionService creates a new OptionService.
func NewOptionService(catalog *CatalogService, prefsRepo repository.PreferencesRepository) *OptionService {
	return &OptionService{
		catalog:   catalog,
		prefsRepo: prefsRepo,
	}
}

// GenerateForTrip produces at most one option per tier, in the fixed order
// budget, standard, premium. A tier is omitted when no flight pair or hotel
// fits its logistics budget; an empty result is a valid outcome, not an
// error. The trip must still be pending.
func (s *OptionService) GenerateForTrip(ctx context.Context, trip *domain.Trip) ([]domain.TripOption, error) {
	if trip.Status != domain.TripStatusPending {
		if trip.Status == domain.TripStatusCancelled {
			return nil, ErrTripCancelled
		}
		return nil, ErrTripNotPending
	}

	prefs, err := s.prefsRepo.GetByUserID(ctx, trip.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHomeCityNotSet
		}
		return nil, err
	}
	if prefs.HomeCityID == 0 {
		return nil, ErrHomeCityNotSet
	}

	outbound, err := s.catalog.FlightsBetween(ctx, prefs.HomeCityID, trip.DestinationCityID)
	if err != nil {
		return nil, err
	}

	inbound, err := s.catalog.FlightsBetween(ctx, trip.DestinationCityID, prefs.HomeCityID)
	if err != nil {
		return nil, err
	}

	hotels, err := s.catalog.HotelsIn(ctx, trip.DestinationCityID)
	if err != nil {
		return nil, err
	}

	var options []domain.TripOption
	for _, tier := range domain.Tiers() {
		if opt, ok := buildOption(tier, trip.TotalBudget, trip.Nights(), outbound, inbound, hotels); ok {
			options = append(options, opt)
		}
	}

	return options, nil
}

// buildOption assembles a single tier's package. Returns false when the
// tier has no viable combination under its logistics budget.
func buildOption(tier domain.Tier, totalBudget float64, nights int, outbound, inbound []domain.Flight, hotels []domain.Hotel) (domain.TripOption, bool) {
	if nights <= 0 {
		return domain.TripOption{}, false
	}

	logistics, activities := AllocateBudget(tier, totalBudget)
	perLeg := FlightLegBudget(logistics)

	out, ok := cheapestFlight(outbound, perLeg)
	if !ok {
		return domain.TripOption{}, false
	}

	in, ok := cheapestFlight(inbound, perLeg)
	if !ok {
		return domain.TripOption{}, false
	}

	hotelBudget := logistics - out.Price - in.Price
	if hotelBudget <= 0 {
		return domain.TripOption{}, false
	}

	hotel, ok := bestHotel(hotels, hotelBudget/float64(nights))
	if !ok {
		return domain.TripOption{}, false
	}

	totalPrice := out.Price + in.Price + hotel.PricePerNight*float64(nights)
	remaining := totalBudget - totalPrice
	if remaining < 0 {
		return domain.TripOption{}, false
	}

	return domain.TripOption{
		Tier:             tier,
		OutboundFlight:   &out,
		InboundFlight:    &in,
		Hotel:            &hotel,
		LogisticsBudget:  logistics,
		ActivitiesBudget: activities,
		RemainingMoney:   remaining,
		TotalPrice:       totalPrice,
	}, true
}

// cheapestFlight picks the lowest-priced flight within the per-leg budget.
// Ties break by shortest duration, then lowest id, so selection is stable.
func cheapestFlight(flights []domain.Flight, budget float64) (domain.Flight, bool) {
	var best domain.Flight
	found := false

	for _, f := range flights {
		if f.Price > budget {
			continue
		}
		if !found || flightLess(f, best) {
			best = f
			found = true
		}
	}

	return best, found
}

func flightLess(a, b domain.Flight) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	if a.DurationMinutes != b.DurationMinutes {
		return a.DurationMinutes < b.DurationMinutes
	}
	return a.ID < b.ID
}

// bestHotel picks the best affordable hotel under the nightly limit,
// preferring more stars, then higher rating, then lower price, then lowest
// id for determinism.
func bestHotel(hotels []domain.Hotel, nightlyLimit float64) (domain.Hotel, bool) {
	var best domain.Hotel
	found := false

	for _, h := range hotels {
		if h.PricePerNight > nightlyLimit {
			continue
		}
		if !found || hotelBetter(h, best) {
			best = h
			found = true
		}
	}

	return best, found
}

func hotelBetter(a, b domain.Hotel) bool {
	if a.Stars != b.Stars {
		return a.Stars > b.Stars
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	if a.PricePerNight != b.PricePerNight {
		return a.PricePerNight < b.PricePerNight
	}
	return a.ID < b.ID
}
