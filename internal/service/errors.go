package service

import "errors"

var (
	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidTitle is returned when the trip title is empty.
	ErrInvalidTitle = errors.New("trip title is required")

	// ErrInvalidDateFormat is returned when dates are not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")

	// ErrInvalidDateRange is returned when the end date is not after the start date.
	ErrInvalidDateRange = errors.New("end date must be after start date")

	// ErrInvalidBudget is returned when the total budget is not positive.
	ErrInvalidBudget = errors.New("total budget must be greater than zero")

	// ErrCityNotFound is returned when the destination city does not exist.
	ErrCityNotFound = errors.New("destination city not found")

	// ErrInvalidTier is returned when the tier is not budget, standard or premium.
	ErrInvalidTier = errors.New("invalid tier")

	// ErrHomeCityNotSet is returned when option generation has no flight
	// origin because the traveler never stored a home city.
	ErrHomeCityNotSet = errors.New("home city not set in preferences")

	// ErrTripNotPending is returned when an option is selected on a trip
	// that has already left the pending state.
	ErrTripNotPending = errors.New("trip is not pending")

	// ErrTripCancelled is returned when an operation targets a cancelled trip.
	ErrTripCancelled = errors.New("trip is cancelled")

	// ErrUnknownSelection is returned when a selected option references
	// catalog entities that do not exist.
	ErrUnknownSelection = errors.New("selected option references unknown entities")

	// ErrItineraryNotReady is returned when an export is requested before
	// the itinerary build has completed.
	ErrItineraryNotReady = errors.New("itinerary is not ready yet")
)
