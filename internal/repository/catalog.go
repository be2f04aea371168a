package repository

import (
	"context"

	"travelplan/internal/domain"
)

// CatalogRepository defines read-only access to the travel catalog. The
// engine never writes through this interface; candidate lists are returned
// in ascending id order so selection stays deterministic.
type CatalogRepository interface {
	GetCity(ctx context.Context, id int64) (*domain.City, error)

	HotelsByCity(ctx context.Context, cityID int64) ([]domain.Hotel, error)
	AttractionsByCity(ctx context.Context, cityID int64) ([]domain.Attraction, error)
	RestaurantsByCity(ctx context.Context, cityID int64) ([]domain.Restaurant, error)
	FlightsByRoute(ctx context.Context, fromCityID, toCityID int64) ([]domain.Flight, error)

	GetHotel(ctx context.Context, id int64) (*domain.Hotel, error)
	GetAttraction(ctx context.Context, id int64) (*domain.Attraction, error)
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
}

// PreferencesRepository defines read access to stored traveler preferences.
type PreferencesRepository interface {
	// GetByUserID retrieves a user's preferences, or ErrNotFound when the
	// user never stored any.
	GetByUserID(ctx context.Context, userID int64) (*domain.Preferences, error)
}
