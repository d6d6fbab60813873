package handlers

import (
	"net/http"
	"time"

	"jombo/internal/domain/models"
	"jombo/internal/http/middleware"
	"jombo/internal/services"

	"github.com/gin-gonic/gin"
)

func tripService(c *gin.Context) services.TripService {
	return services.TripService{RequestID: middleware.GetRequestID(c)}
}

type tripRequest struct {
	DepartureLocation string    `json:"departure_location"`
	ArrivalLocation   string    `json:"arrival_location"`
	DepartureTime     time.Time `json:"departure_time"`
	AvailableSeats    int       `json:"available_seats"`
	Price             float64   `json:"price"`
	Description       string    `json:"description"`
	Region            string    `json:"region"`
}

func (r tripRequest) toModel() models.Trip {
	return models.Trip{
		DepartureLocation: r.DepartureLocation,
		ArrivalLocation:   r.ArrivalLocation,
		DepartureTime:     r.DepartureTime,
		AvailableSeats:    r.AvailableSeats,
		Price:             r.Price,
		Description:       r.Description,
		Region:            r.Region,
	}
}

// GET /api/v1/trips
func ListTrips(c *gin.Context) {
	trips, err := tripService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/v1/trips/:id
func GetTrip(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	trip, err := tripService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// GET /api/v1/trips/search/:departure_location
func SearchTrips(c *gin.Context) {
	trips, err := tripService(c).Search(c.Param("departure_location"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/v1/trips/my_trips
func MyTrips(c *gin.Context) {
	trips, err := tripService(c).ListForDriver(middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// POST /api/v1/trips
func CreateTrip(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := tripService(c).Create(middleware.CurrentUserID(c), req.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// PUT /api/v1/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip := req.toModel()
	trip.ID = id
	updated, err := tripService(c).Update(middleware.CurrentUserID(c), trip)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/v1/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := tripService(c).Delete(middleware.CurrentUserID(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted successfully"})
}

// GET /api/v1/trips/:id/manifest returns the confirmed-passenger
// manifest PDF, driver only.
func GetTripManifest(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateTripManifest(middleware.CurrentUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
