package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelplan/internal/domain"
	"travelplan/internal/service"
)

// defaultUserID is used when the caller sends no X-User-ID header. Auth is
// handled upstream; the header only scopes list queries and the
// preferences lookup.
const defaultUserID int64 = 1

// TripHandler handles HTTP requests for trips and option generation.
type TripHandler struct {
	tripService   *service.TripService
	optionService *service.OptionService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService, optionService *service.OptionService) *TripHandler {
	return &TripHandler{
		tripService:   tripService,
		optionService: optionService,
	}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	Name              string  `json:"name"`
	DestinationCityID int64   `json:"destination_city_id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	TotalPrice        float64 `json:"total_price"`
}

// CreateTripResponse is the HTTP response for creating a trip.
type CreateTripResponse struct {
	TripID string `json:"trip_id"`
	UserID int64  `json:"user_id"`
}

// SelectOptionRequest is the HTTP request body for committing to an option.
type SelectOptionRequest struct {
	Tier             string `json:"tier"`
	HotelID          int64  `json:"hotel_id"`
	OutboundFlightID int64  `json:"outbound_flight_id"`
	InboundFlightID  int64  `json:"inbound_flight_id"`
}

// FlightResponse is the flight shape embedded in a trip option.
type FlightResponse struct {
	ID               int64   `json:"id"`
	Airline          string  `json:"airline"`
	FromCityID       int64   `json:"from_city_id"`
	ToCityID         int64   `json:"to_city_id"`
	DepartureMinutes int     `json:"departure_minutes"`
	DurationMinutes  int     `json:"duration_minutes"`
	Price            float64 `json:"price"`
}

// HotelResponse is the hotel shape embedded in a trip option.
type HotelResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Stars         int     `json:"stars"`
	Rating        float64 `json:"rating"`
	PricePerNight float64 `json:"price_per_night"`
}

// TripOptionResponse is one generated tier package. The misspelled
// activites_budget and the total_price_of_money name are part of the
// deployed client contract and must not be corrected.
type TripOptionResponse struct {
	Tier             string         `json:"tier"`
	OutboundFlight   FlightResponse `json:"outbound_flight"`
	InboundFlight    FlightResponse `json:"inbound_flight"`
	Hotel            HotelResponse  `json:"hotel"`
	LogisticsBudget  float64        `json:"logistics_budget"`
	ActivitiesBudget float64        `json:"activites_budget"`
	MoreMoney        float64        `json:"more_money"`
	TotalPrice       float64        `json:"total_price_of_money"`
}

// TripResponse is the HTTP response shape for a single trip.
type TripResponse struct {
	TripID            string  `json:"trip_id"`
	UserID            int64   `json:"user_id"`
	Title             string  `json:"title"`
	DestinationCityID int64   `json:"destination_city_id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	TotalBudget       float64 `json:"total_price"`
	Status            string  `json:"status"`
	ChosenTier        string  `json:"chosen_tier,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// CreateTrip handles POST /api/trips/create
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripInput{
		UserID:            callerID(c),
		Title:             req.Name,
		DestinationCityID: req.DestinationCityID,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		TotalBudget:       req.TotalPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, CreateTripResponse{
		TripID: trip.ID,
		UserID: trip.UserID,
	})
}

// GetTrip handles GET /api/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// ListTrips handles GET /api/trips
func (h *TripHandler) ListTrips(c *gin.Context) {
	trips, err := h.tripService.ListTrips(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		resp = append(resp, toTripResponse(t))
	}

	respondJSON(c, http.StatusOK, resp)
}

// GenerateOptions handles POST /api/trips/:id/generate-options
func (h *TripHandler) GenerateOptions(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	options, err := h.optionService.GenerateForTrip(c.Request.Context(), trip)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]TripOptionResponse, 0, len(options))
	for i := range options {
		resp = append(resp, toOptionResponse(&options[i]))
	}

	respondJSON(c, http.StatusOK, resp)
}

// SelectOption handles POST /api/trips/:id/select-option
func (h *TripHandler) SelectOption(c *gin.Context) {
	var req SelectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.SelectOption(c.Request.Context(), c.Param("id"), service.SelectOptionInput{
		Tier:             domain.Tier(req.Tier),
		HotelID:          req.HotelID,
		OutboundFlightID: req.OutboundFlightID,
		InboundFlightID:  req.InboundFlightID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// CancelTrip handles POST /api/trips/:id/cancel
func (h *TripHandler) CancelTrip(c *gin.Context) {
	if err := h.tripService.CancelTrip(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteTrip handles DELETE /api/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.tripService.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func callerID(c *gin.Context) int64 {
	if v := c.GetHeader("X-User-ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return defaultUserID
}

func toTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		TripID:            t.ID,
		UserID:            t.UserID,
		Title:             t.Title,
		DestinationCityID: t.DestinationCityID,
		StartDate:         t.StartDate.Format("2006-01-02"),
		EndDate:           t.EndDate.Format("2006-01-02"),
		TotalBudget:       t.TotalBudget,
		Status:            string(t.Status),
		ChosenTier:        string(t.ChosenTier),
		CreatedAt:         t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toOptionResponse(o *domain.TripOption) TripOptionResponse {
	return TripOptionResponse{
		Tier:             string(o.Tier),
		OutboundFlight:   toFlightResponse(o.OutboundFlight),
		InboundFlight:    toFlightResponse(o.InboundFlight),
		Hotel:            toHotelResponse(o.Hotel),
		LogisticsBudget:  o.LogisticsBudget,
		ActivitiesBudget: o.ActivitiesBudget,
		MoreMoney:        o.RemainingMoney,
		TotalPrice:       o.TotalPrice,
	}
}

func toFlightResponse(f *domain.Flight) FlightResponse {
	return FlightResponse{
		ID:               f.ID,
		Airline:          f.Airline,
		FromCityID:       f.FromCityID,
		ToCityID:         f.ToCityID,
		DepartureMinutes: f.DepartureMinutes,
		DurationMinutes:  f.DurationMinutes,
		Price:            f.Price,
	}
}

func toHotelResponse(h *domain.Hotel) HotelResponse {
	return HotelResponse{
		ID:            h.ID,
		Name:          h.Name,
		Address:       h.Address,
		Stars:         h.Stars,
		Rating:        h.Rating,
		PricePerNight: h.PricePerNight,
	}
}
