package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelplan/internal/domain"
	"travelplan/internal/service"
)

// ItineraryHandler handles HTTP requests for built itineraries.
type ItineraryHandler struct {
	itineraryService *service.ItineraryService
}

// NewItineraryHandler creates a new ItineraryHandler.
func NewItineraryHandler(itineraryService *service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

// ItineraryDayResponse is one itinerary day. The Itinerary_id casing is
// part of the deployed client contract.
type ItineraryDayResponse struct {
	ItineraryID string `json:"Itinerary_id"`
	DayNumber   int    `json:"day_number"`
	Date        string `json:"date"`
	Notes       string `json:"notes"`
}

// ActivityResponse is one enriched activity entry.
type ActivityResponse struct {
	ActivityID   string  `json:"activity_id"`
	ActivityType string  `json:"activity_type"`
	EntityName   string  `json:"entity_name"`
	EntityDetail string  `json:"entity_detail"`
	EntityExtra  string  `json:"entity_extra"`
	EntityRating float64 `json:"entity_rating"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Notes        string  `json:"notes"`
}

// GetItinerary handles GET /api/trips/:id/itinerary
func (h *ItineraryHandler) GetItinerary(c *gin.Context) {
	_, days, err := h.itineraryService.Days(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ItineraryDayResponse, 0, len(days))
	for _, d := range days {
		resp = append(resp, ItineraryDayResponse{
			ItineraryID: d.ID,
			DayNumber:   d.DayNumber,
			Date:        d.Date.Format("2006-01-02"),
			Notes:       d.Notes,
		})
	}

	respondJSON(c, http.StatusOK, resp)
}

// GetActivities handles GET /api/itineraries/:id/activities
func (h *ItineraryHandler) GetActivities(c *gin.Context) {
	activities, err := h.itineraryService.Activities(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		resp = append(resp, toActivityResponse(&a))
	}

	respondJSON(c, http.StatusOK, resp)
}

// ExportItineraryPDF handles GET /api/trips/:id/itinerary/pdf
func (h *ItineraryHandler) ExportItineraryPDF(c *gin.Context) {
	tripID := c.Param("id")

	pdfBytes, err := h.itineraryService.ExportPDF(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=itinerary-%s.pdf", tripID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func toActivityResponse(a *domain.EnrichedActivity) ActivityResponse {
	return ActivityResponse{
		ActivityID:   a.ActivityID,
		ActivityType: string(a.Kind),
		EntityName:   a.EntityName,
		EntityDetail: a.EntityDetail,
		EntityExtra:  a.EntityExtra,
		EntityRating: a.EntityRating,
		StartTime:    a.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		EndTime:      a.EndTime.Format("2006-01-02T15:04:05Z07:00"),
		Notes:        a.Notes,
	}
}
