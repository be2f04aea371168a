package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"travelplan/internal/domain"
)

// ItineraryPDFData bundles a completed trip with its enriched day plans for
// rendering.
type ItineraryPDFData struct {
	Trip       *domain.Trip
	City       *domain.City
	Days       []*domain.ItineraryDay
	Activities map[string][]domain.EnrichedActivity // keyed by day id
}

// RenderItineraryPDF renders a completed itinerary as an A4 PDF and returns
// the raw bytes.
func RenderItineraryPDF(data ItineraryPDFData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Header bar
	pdf.SetFillColor(21, 48, 74)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Trip Itinerary", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, data.Trip.Title, "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(21, 48, 74)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	sectionHeader("Trip Overview")
	if data.City != nil {
		destination := data.City.Name
		if data.City.Country != "" {
			destination = fmt.Sprintf("%s, %s", data.City.Name, data.City.Country)
		}
		row("Destination", destination)
	}
	row("Dates", fmt.Sprintf("%s to %s",
		data.Trip.StartDate.Format("02 Jan 2006"),
		data.Trip.EndDate.Format("02 Jan 2006")))
	row("Duration", fmt.Sprintf("%d days, %d nights", data.Trip.Days(), data.Trip.Nights()))
	row("Tier", string(data.Trip.ChosenTier))
	row("Budget", fmt.Sprintf("$%.2f", data.Trip.TotalBudget))
	pdf.Ln(4)

	for _, day := range data.Days {
		sectionHeader(fmt.Sprintf("Day %d - %s", day.DayNumber, day.Date.Format("02 Jan 2006 (Mon)")))
		acts := data.Activities[day.ID]
		if len(acts) == 0 {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(120, 120, 120)
			pdf.CellFormat(170, 6, "Free day", "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(2)
			continue
		}
		for _, a := range acts {
			window := fmt.Sprintf("%s - %s", a.StartTime.Format("15:04"), a.EndTime.Format("15:04"))
			row(window, fmt.Sprintf("%s (%s)", a.EntityName, a.Kind))
			if a.EntityDetail != "" {
				pdf.SetFont("Helvetica", "", 9)
				pdf.SetTextColor(100, 100, 100)
				pdf.CellFormat(55, 5, "", "", 0, "L", false, 0, "")
				pdf.CellFormat(115, 5, a.EntityDetail, "", 1, "L", false, 0, "")
				pdf.SetTextColor(0, 0, 0)
			}
		}
		pdf.Ln(4)
	}

	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8, "Generated by the trip planning service. Times are local to the destination.",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}
