package service

import (
	"context"
	"errors"

	"travelplan/internal/domain"
	"travelplan/internal/redis"
	"travelplan/internal/repository"
)

// CatalogService is the read-only accessor for travel catalog candidates.
// It is purely a read path: the engine never mutates catalog entities, so
// candidate lists are served through a Redis cache when one is configured.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	cacheStore  *redis.CacheStore
}

// NewCatalogService creates a new CatalogService. cacheStore may be nil, in
// which case every read goes to the repository.
func NewCatalogService(catalogRepo repository.CatalogRepository, cacheStore *redis.CacheStore) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		cacheStore:  cacheStore,
	}
}

// CityExists verifies the city is present in the catalog.
func (s *CatalogService) CityExists(ctx context.Context, cityID int64) error {
	_, err := s.catalogRepo.GetCity(ctx, cityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCityNotFound
		}
		return err
	}
	return nil
}

// GetCity retrieves a city by ID.
func (s *CatalogService) GetCity(ctx context.Context, cityID int64) (*domain.City, error) {
	return s.catalogRepo.GetCity(ctx, cityID)
}

// HotelsIn returns the hotel candidates for a city, ordered by id.
func (s *CatalogService) HotelsIn(ctx context.Context, cityID int64) ([]domain.Hotel, error) {
	if s.cacheStore != nil {
		if hotels, hit, err := s.cacheStore.GetHotels(ctx, cityID); err == nil && hit {
			return hotels, nil
		}
	}

	hotels, err := s.catalogRepo.HotelsByCity(ctx, cityID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetHotels(ctx, cityID, hotels)
	}

	return hotels, nil
}

// AttractionsIn returns the attraction candidates for a city, ordered by id.
func (s *CatalogService) AttractionsIn(ctx context.Context, cityID int64) ([]domain.Attraction, error) {
	if s.cacheStore != nil {
		if attractions, hit, err := s.cacheStore.GetAttractions(ctx, cityID); err == nil && hit {
			return attractions, nil
		}
	}

	attractions, err := s.catalogRepo.AttractionsByCity(ctx, cityID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetAttractions(ctx, cityID, attractions)
	}

	return attractions, nil
}

// RestaurantsIn returns the restaurant candidates for a city, ordered by id.
func (s *CatalogService) RestaurantsIn(ctx context.Context, cityID int64) ([]domain.Restaurant, error) {
	if s.cacheStore != nil {
		if restaurants, hit, err := s.cacheStore.GetRestaurants(ctx, cityID); err == nil && hit {
			return restaurants, nil
		}
	}

	restaurants, err := s.catalogRepo.RestaurantsByCity(ctx, cityID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetRestaurants(ctx, cityID, restaurants)
	}

	return restaurants, nil
}

// FlightsBetween returns the flight candidates for a route, ordered by id.
func (s *CatalogService) FlightsBetween(ctx context.Context, fromCityID, toCityID int64) ([]domain.Flight, error) {
	if s.cacheStore != nil {
		if flights, hit, err := s.cacheStore.GetFlights(ctx, fromCityID, toCityID); err == nil && hit {
			return flights, nil
		}
	}

	flights, err := s.catalogRepo.FlightsByRoute(ctx, fromCityID, toCityID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetFlights(ctx, fromCityID, toCityID, flights)
	}

	return flights, nil
}

// GetHotel retrieves a hotel by ID.
func (s *CatalogService) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	return s.catalogRepo.GetHotel(ctx, id)
}

// GetAttraction retrieves an attraction by ID.
func (s *CatalogService) GetAttraction(ctx context.Context, id int64) (*domain.Attraction, error) {
	return s.catalogRepo.GetAttraction(ctx, id)
}

// GetRestaurant retrieves a restaurant by ID.
func (s *CatalogService) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	return s.catalogRepo.GetRestaurant(ctx, id)
}

// GetFlight retrieves a flight by ID.
func (s *CatalogService) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.catalogRepo.GetFlight(ctx, id)
}
