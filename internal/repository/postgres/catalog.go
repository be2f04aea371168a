package postgres

import (
	"context"
	"database/sql"
	"errors"

	"travelplan/internal/domain"
	"travelplan/internal/repository"
)

// CatalogRepository is a PostgreSQL implementation of repository.CatalogRepository.
// All list queries order by id so downstream selection is deterministic for a
// given catalog state.
type CatalogRepository struct {
	q Querier
}

// NewCatalogRepository creates a new PostgreSQL catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{q: db}
}

// GetCity retrieves a city by ID.
func (r *CatalogRepository) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	query := `
		SELECT c.id, c.country_id, COALESCE(co.name, ''), c.name, c.latitude, c.longitude
		FROM cities c
		LEFT JOIN countries co ON co.id = c.country_id
		WHERE c.id = $1
	`

	var city domain.City
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&city.ID, &city.CountryID, &city.Country, &city.Name, &city.Latitude, &city.Longitude,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &city, nil
}

// HotelsByCity retrieves all hotels located in a city.
func (r *CatalogRepository) HotelsByCity(ctx context.Context, cityID int64) ([]domain.Hotel, error) {
	query := `
		SELECT id, city_id, name, address, stars, rating, price_per_night
		FROM hotels WHERE city_id = $1 ORDER BY id ASC
	`

	rows, err := r.q.QueryContext(ctx, query, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hotels []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.CityID, &h.Name, &h.Address, &h.Stars, &h.Rating, &h.PricePerNight); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}

	return hotels, rows.Err()
}

// AttractionsByCity retrieves all attractions located in a city.
func (r *CatalogRepository) AttractionsByCity(ctx context.Context, cityID int64) ([]domain.Attraction, error) {
	query := `
		SELECT id, city_id, name, category, latitude, longitude, rating, entry_fee
		FROM attractions WHERE city_id = $1 ORDER BY id ASC
	`

	rows, err := r.q.QueryContext(ctx, query, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attractions []domain.Attraction
	for rows.Next() {
		var a domain.Attraction
		if err := rows.Scan(&a.ID, &a.CityID, &a.Name, &a.Category, &a.Latitude, &a.Longitude, &a.Rating, &a.EntryFee); err != nil {
			return nil, err
		}
		attractions = append(attractions, a)
	}

	return attractions, rows.Err()
}

// RestaurantsByCity retrieves all restaurants located in a city.
func (r *CatalogRepository) RestaurantsByCity(ctx context.Context, cityID int64) ([]domain.Restaurant, error) {
	query := `
		SELECT id, city_id, name, cuisine, latitude, longitude, rating, price_range
		FROM restaurants WHERE city_id = $1 ORDER BY id ASC
	`

	rows, err := r.q.QueryContext(ctx, query, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.CityID, &rest.Name, &rest.Cuisine, &rest.Latitude, &rest.Longitude, &rest.Rating, &rest.PriceRange); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}

	return restaurants, rows.Err()
}

// FlightsByRoute retrieves all flights between two cities.
func (r *CatalogRepository) FlightsByRoute(ctx context.Context, fromCityID, toCityID int64) ([]domain.Flight, error) {
	query := `
		SELECT id, from_city_id, to_city_id, airline, departure_minutes, duration_minutes, price
		FROM flights WHERE from_city_id = $1 AND to_city_id = $2 ORDER BY id ASC
	`

	rows, err := r.q.QueryContext(ctx, query, fromCityID, toCityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []domain.Flight
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FromCityID, &f.ToCityID, &f.Airline, &f.DepartureMinutes, &f.DurationMinutes, &f.Price); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}

	return flights, rows.Err()
}

// GetHotel retrieves a hotel by ID.
func (r *CatalogRepository) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	query := `SELECT id, city_id, name, address, stars, rating, price_per_night FROM hotels WHERE id = $1`

	var h domain.Hotel
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&h.ID, &h.CityID, &h.Name, &h.Address, &h.Stars, &h.Rating, &h.PricePerNight,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &h, nil
}

// GetAttraction retrieves an attraction by ID.
func (r *CatalogRepository) GetAttraction(ctx context.Context, id int64) (*domain.Attraction, error) {
	query := `SELECT id, city_id, name, category, latitude, longitude, rating, entry_fee FROM attractions WHERE id = $1`

	var a domain.Attraction
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.CityID, &a.Name, &a.Category, &a.Latitude, &a.Longitude, &a.Rating, &a.EntryFee,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

// GetRestaurant retrieves a restaurant by ID.
func (r *CatalogRepository) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	query := `SELECT id, city_id, name, cuisine, latitude, longitude, rating, price_range FROM restaurants WHERE id = $1`

	var rest domain.Restaurant
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&rest.ID, &rest.CityID, &rest.Name, &rest.Cuisine, &rest.Latitude, &rest.Longitude, &rest.Rating, &rest.PriceRange,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &rest, nil
}

// GetFlight retrieves a flight by ID.
func (r *CatalogRepository) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	query := `SELECT id, from_city_id, to_city_id, airline, departure_minutes, duration_minutes, price FROM flights WHERE id = $1`

	var f domain.Flight
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.FromCityID, &f.ToCityID, &f.Airline, &f.DepartureMinutes, &f.DurationMinutes, &f.Price,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &f, nil
}

// Ensure CatalogRepository implements repository.CatalogRepository.
var _ repository.CatalogRepository = (*CatalogRepository)(nil)
