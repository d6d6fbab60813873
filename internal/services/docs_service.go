package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"

	intconfig "jombo/internal/config"
	"jombo/internal/domain"
	"jombo/internal/domain/models"
	"jombo/internal/repositories"
	"jombo/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the driver's passenger manifest PDF for a trip.
type DocsService struct {
	TripRepo    repositories.TripRepo
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s DocsService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

// GenerateTripManifest builds the manifest of confirmed passengers. Driver
// only.
func (s DocsService) GenerateTripManifest(actorID, tripID int64) ([]byte, string, error) {
	trip, err := s.trips().GetByID(tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", domain.NotFoundError{Resource: "trip", Err: err}
		}
		return nil, "", domain.InternalError{Err: err}
	}
	if trip.DriverID != actorID {
		return nil, "", domain.ForbiddenError{Msg: "you are not the driver of this trip"}
	}

	bookings, passengers, err := s.bookings().ConfirmedByTrip(tripID)
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "docs", "generate_manifest", fmt.Sprintf("trip_id=%d passengers=%d", tripID, len(bookings)))

	pdfBytes, err := buildManifestPDF(trip, bookings, passengers)
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	filename := fmt.Sprintf("trip-%d-manifest.pdf", tripID)
	return pdfBytes, filename, nil
}

func buildManifestPDF(trip models.Trip, bookings []models.Booking, passengers []models.User) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Passenger Manifest", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s -> %s", trip.DepartureLocation, trip.ArrivalLocation), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, utils.FormatDateTime(trip.DepartureTime), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(15, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(70, 8, "Passenger", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, "Email", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Seats", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	totalSeats := 0
	for i, b := range bookings {
		name := ""
		email := ""
		if i < len(passengers) {
			name = passengers[i].Name
			email = passengers[i].Email
		}
		pdf.CellFormat(15, 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", b.Seats), "1", 1, "C", false, 0, "")
		totalSeats += b.Seats
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(155, 8, "Total confirmed seats", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, fmt.Sprintf("%d", totalSeats), "1", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Remaining seats: %d", trip.AvailableSeats), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
