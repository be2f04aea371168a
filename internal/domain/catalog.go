package domain

// Catalog entities are immutable reference data. The planning engine only
// reads them; activities point at them by identifier, never own them.

// City is a destination (or origin) city in the catalog.
type City struct {
	ID        int64
	CountryID int64
	Country   string
	Name      string
	Latitude  float64
	Longitude float64
}

// Flight is a bookable one-way flight between two cities.
type Flight struct {
	ID         int64
	FromCityID int64
	ToCityID   int64
	Airline    string
	// DepartureMinutes is the scheduled departure as minutes after local
	// midnight; the itinerary projects it onto the travel day.
	DepartureMinutes int
	DurationMinutes  int
	Price            float64
}

// Hotel is a bookable hotel in a city.
type Hotel struct {
	ID            int64
	CityID        int64
	Name          string
	Address       string
	Stars         int
	Rating        float64
	PricePerNight float64
}

// Attraction is a visitable sight in a city.
type Attraction struct {
	ID        int64
	CityID    int64
	Name      string
	Category  string
	Latitude  float64
	Longitude float64
	Rating    float64
	EntryFee  float64
}

// Restaurant is a dining option in a city.
type Restaurant struct {
	ID         int64
	CityID     int64
	Name       string
	Cuisine    string
	Latitude   float64
	Longitude  float64
	Rating     float64
	PriceRange string
}
