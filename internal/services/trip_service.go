package services

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "jombo/internal/config"
	"jombo/internal/domain"
	"jombo/internal/domain/models"
	"jombo/internal/repositories"
	"jombo/internal/utils"
)

// TripService covers trip CRUD and search. Seat-counter mutations are
// deliberately absent here; they belong to the booking state machine.
type TripService struct {
	TripRepo  repositories.TripRepo
	DB        *sql.DB
	RequestID string
}

func (s TripService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TripService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s TripService) List() ([]models.Trip, error) {
	out, err := s.trips().List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s TripService) Get(id int64) (models.Trip, error) {
	trip, err := s.trips().GetWithDriver(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
		}
		return models.Trip{}, domain.InternalError{Err: err}
	}
	return trip, nil
}

func (s TripService) Search(departure string) ([]models.Trip, error) {
	out, err := s.trips().Search(departure)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s TripService) ListForDriver(driverID int64) ([]models.Trip, error) {
	out, err := s.trips().ListByDriver(driverID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// Create validates field presence and opens a trip owned by the actor.
func (s TripService) Create(actorID int64, trip models.Trip) (models.Trip, error) {
	trip = normalizeTripFields(trip)
	if err := validateTripFields(trip); err != nil {
		return models.Trip{}, err
	}
	trip.DriverID = actorID
	id, err := s.trips().Create(trip)
	if err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	trip.ID = id
	utils.LogEvent(s.RequestID, "trip", "create", fmt.Sprintf("trip_id=%d driver_id=%d", id, actorID))
	return trip, nil
}

// Update changes trip fields; the driver only.
func (s TripService) Update(actorID int64, trip models.Trip) (models.Trip, error) {
	existing, err := s.trips().GetByID(trip.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
		}
		return models.Trip{}, domain.InternalError{Err: err}
	}
	if existing.DriverID != actorID {
		return models.Trip{}, domain.ForbiddenError{Msg: "you are not the driver of this trip"}
	}
	trip = normalizeTripFields(trip)
	if err := validateTripFields(trip); err != nil {
		return models.Trip{}, err
	}
	trip.DriverID = existing.DriverID
	if err := s.trips().Update(trip); err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	return trip, nil
}

// Delete removes a trip and, through the schema's cascades, its bookings
// and conversation.
func (s TripService) Delete(actorID, tripID int64) error {
	existing, err := s.trips().GetByID(tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "trip", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if existing.DriverID != actorID {
		return domain.ForbiddenError{Msg: "you are not the driver of this trip"}
	}
	if err := s.trips().Delete(tripID); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "trip", "delete", fmt.Sprintf("trip_id=%d", tripID))
	return nil
}

// normalizeTripFields collapses stray whitespace in the free-text fields
// before validation, so " Douala " and "Douala" list as the same place.
func normalizeTripFields(trip models.Trip) models.Trip {
	trip.DepartureLocation = utils.NormalizeSpace(trip.DepartureLocation)
	trip.ArrivalLocation = utils.NormalizeSpace(trip.ArrivalLocation)
	trip.Region = utils.NormalizeSpace(trip.Region)
	trip.Description = utils.TrimOrEmpty(trip.Description)
	return trip
}

func validateTripFields(trip models.Trip) error {
	if utils.TrimOrEmpty(trip.DepartureLocation) == "" {
		return domain.ValidationError{Field: "departure_location", Msg: "is required"}
	}
	if utils.TrimOrEmpty(trip.ArrivalLocation) == "" {
		return domain.ValidationError{Field: "arrival_location", Msg: "is required"}
	}
	if trip.DepartureTime.IsZero() {
		return domain.ValidationError{Field: "departure_time", Msg: "is required"}
	}
	if trip.AvailableSeats < 0 {
		return domain.ValidationError{Field: "available_seats", Msg: "must be zero or more"}
	}
	if trip.Price < 0 {
		return domain.ValidationError{Field: "price", Msg: "must be zero or more"}
	}
	return nil
}
