package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelplan/internal/domain"
)

// CacheStore caches catalog candidate lists in Redis. Catalog entities are
// immutable from the engine's perspective, so a short TTL only bounds memory,
// not staleness correctness.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// CatalogCacheTTL bounds how long candidate lists are kept.
const CatalogCacheTTL = 10 * time.Minute

func cityKey(kind string, cityID int64) string {
	return fmt.Sprintf("cache:catalog:%s:%d", kind, cityID)
}

func routeKey(fromCityID, toCityID int64) string {
	return fmt.Sprintf("cache:catalog:flights:%d:%d", fromCityID, toCityID)
}

func (s *CacheStore) get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // Cache miss
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheStore) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, CatalogCacheTTL).Err()
}

// GetHotels retrieves the cached hotel list for a city.
func (s *CacheStore) GetHotels(ctx context.Context, cityID int64) ([]domain.Hotel, bool, error) {
	var hotels []domain.Hotel
	hit, err := s.get(ctx, cityKey("hotels", cityID), &hotels)
	return hotels, hit, err
}

// SetHotels caches the hotel list for a city.
func (s *CacheStore) SetHotels(ctx context.Context, cityID int64, hotels []domain.Hotel) error {
	return s.set(ctx, cityKey("hotels", cityID), hotels)
}

// GetAttractions retrieves the cached attraction list for a city.
func (s *CacheStore) GetAttractions(ctx context.Context, cityID int64) ([]domain.Attraction, bool, error) {
	var attractions []domain.Attraction
	hit, err := s.get(ctx, cityKey("attractions", cityID), &attractions)
	return attractions, hit, err
}

// SetAttractions caches the attraction list for a city.
func (s *CacheStore) SetAttractions(ctx context.Context, cityID int64, attractions []domain.Attraction) error {
	return s.set(ctx, cityKey("attractions", cityID), attractions)
}

// GetRestaurants retrieves the cached restaurant list for a city.
func (s *CacheStore) GetRestaurants(ctx context.Context, cityID int64) ([]domain.Restaurant, bool, error) {
	var restaurants []domain.Restaurant
	hit, err := s.get(ctx, cityKey("restaurants", cityID), &restaurants)
	return restaurants, hit, err
}

// SetRestaurants caches the restaurant list for a city.
func (s *CacheStore) SetRestaurants(ctx context.Context, cityID int64, restaurants []domain.Restaurant) error {
	return s.set(ctx, cityKey("restaurants", cityID), restaurants)
}

// GetFlights retrieves the cached flight list for a route.
func (s *CacheStore) GetFlights(ctx context.Context, fromCityID, toCityID int64) ([]domain.Flight, bool, error) {
	var flights []domain.Flight
	hit, err := s.get(ctx, routeKey(fromCityID, toCityID), &flights)
	return flights, hit, err
}

// SetFlights caches the flight list for a route.
func (s *CacheStore) SetFlights(ctx context.Context, fromCityID, toCityID int64, flights []domain.Flight) error {
	return s.set(ctx, routeKey(fromCityID, toCityID), flights)
}
