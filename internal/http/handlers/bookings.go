package handlers

import (
	"net/http"

	"jombo/internal/http/middleware"
	"jombo/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Notifier:  notifier(c),
		RequestID: middleware.GetRequestID(c),
	}
}

type createBookingRequest struct {
	TripID int64 `json:"trip_id"`
	Seats  int   `json:"seats"`
}

// POST /api/v1/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Seats == 0 {
		req.Seats = 1
	}

	booking, err := bookingService(c).Create(middleware.CurrentUserID(c), req.TripID, req.Seats)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/v1/bookings
func ListMyBookings(c *gin.Context) {
	bookings, err := bookingService(c).ListForUser(middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/v1/bookings/:id
func GetBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	booking, err := bookingService(c).Get(middleware.CurrentUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PATCH /api/v1/bookings/:id/confirm
func ConfirmBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	booking, err := bookingService(c).Confirm(middleware.CurrentUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PATCH /api/v1/bookings/:id/reject
func RejectBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	booking, err := bookingService(c).Reject(middleware.CurrentUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DELETE /api/v1/bookings/:id cancels, passenger only.
func CancelBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	booking, err := bookingService(c).Cancel(middleware.CurrentUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled successfully", "booking": booking})
}

// GET /api/v1/trips/:id/bookings lists a trip's bookings, driver only.
func ListTripBookings(c *gin.Context) {
	tripID, ok := PathID(c, "id")
	if !ok {
		return
	}
	bookings, err := bookingService(c).ListForTrip(middleware.CurrentUserID(c), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
