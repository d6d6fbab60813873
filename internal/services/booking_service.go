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

// BookingService owns the booking lifecycle: the legal status transitions,
// the seat-ledger adjustments bound to them, and the side effects fired
// after a successful transition. Seats are only taken from the trip at
// confirm time; creation merely checks current capacity to bounce
// oversized requests early, so the authoritative sufficiency check is
// always re-done under the trip row lock inside the confirm transaction.
type BookingService struct {
	BookingRepo   repositories.BookingRepo
	TripRepo      repositories.TripRepo
	UserRepo      repositories.UserRepo
	Conversations ConversationService
	Notifier      NotificationService
	DB            *sql.DB
	RequestID     string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s BookingService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s BookingService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

func (s BookingService) conversations() ConversationService {
	c := s.Conversations
	if c.DB == nil {
		c.DB = s.db()
	}
	if c.RequestID == "" {
		c.RequestID = s.RequestID
	}
	return c
}

func (s BookingService) notifier() NotificationService {
	n := s.Notifier
	if n.DB == nil {
		n.DB = s.db()
	}
	if n.RequestID == "" {
		n.RequestID = s.RequestID
	}
	return n
}

// Create opens a booking in pending state. No seats are reserved yet; the
// capacity check here is an admission filter against the current counter.
func (s BookingService) Create(actorID, tripID int64, seats int) (models.Booking, error) {
	trip, err := s.trips().GetByID(tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "trip", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if seats <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "seats", Msg: "must be a positive integer"}
	}
	if actorID == trip.DriverID {
		return models.Booking{}, domain.ValidationError{Field: "user", Msg: "cannot book your own trip"}
	}
	if seats > trip.AvailableSeats {
		return models.Booking{}, domain.ValidationError{
			Field: "seats",
			Msg:   fmt.Sprintf("not enough available seats (only %d available)", trip.AvailableSeats),
		}
	}

	booking := models.Booking{
		UserID: actorID,
		TripID: tripID,
		Seats:  seats,
		Status: models.BookingPending,
	}
	id, err := s.bookings().Create(booking)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	booking.ID = id
	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("booking_id=%d trip_id=%d seats=%d", id, tripID, seats))

	s.notifyDriver(trip, booking, models.NotificationBooking,
		"New booking request",
		fmt.Sprintf("A passenger requested %d seat(s) on your trip %s → %s.", seats, trip.DepartureLocation, trip.ArrivalLocation),
		EmailBookingReceived)

	return booking, nil
}

// Confirm moves a pending booking to confirmed. The seat-sufficiency check
// and the decrement run under a row lock on the trip inside one
// transaction with the status change: either all of it commits or none.
func (s BookingService) Confirm(actorID, bookingID int64) (models.Booking, error) {
	booking, trip, err := s.load(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	if actorID != trip.DriverID {
		return models.Booking{}, domain.ForbiddenError{Msg: "only the driver can confirm bookings"}
	}
	if !models.CanTransition(booking.Status, models.BookingConfirmed) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "booking is not pending"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	available, err := s.trips().LockAvailableSeats(tx, trip.ID)
	if err != nil {
		_ = tx.Rollback()
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if booking.Seats > available {
		_ = tx.Rollback()
		return models.Booking{}, domain.ValidationError{
			Field: "seats",
			Msg:   fmt.Sprintf("not enough available seats (only %d available)", available),
		}
	}
	if err := s.trips().AdjustAvailableSeats(tx, trip.ID, -booking.Seats); err != nil {
		_ = tx.Rollback()
		return models.Booking{}, domain.InternalError{Err: err}
	}
	// The status write is predicated on the row still being pending: a
	// cancel that committed after our read must not be overwritten.
	flipped, err := s.bookings().UpdateStatusFromTx(tx, booking.ID, models.BookingPending, models.BookingConfirmed)
	if err != nil {
		_ = tx.Rollback()
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !flipped {
		_ = tx.Rollback()
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "booking is not pending"}
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	booking.Status = models.BookingConfirmed
	utils.LogEvent(s.RequestID, "booking", "confirm", fmt.Sprintf("booking_id=%d trip_id=%d seats=%d", booking.ID, trip.ID, booking.Seats))

	s.admitToConversation(trip, booking)
	s.notifyPassenger(trip, booking, models.NotificationBooking,
		"Booking confirmed",
		fmt.Sprintf("Your booking for %s → %s was confirmed by the driver.", trip.DepartureLocation, trip.ArrivalLocation),
		EmailBookingConfirmed)

	return booking, nil
}

// Reject declines a pending booking. Seats were never reserved, so the
// ledger is untouched.
func (s BookingService) Reject(actorID, bookingID int64) (models.Booking, error) {
	booking, trip, err := s.load(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	if actorID != trip.DriverID {
		return models.Booking{}, domain.ForbiddenError{Msg: "only the driver can reject bookings"}
	}
	if !models.CanTransition(booking.Status, models.BookingRejected) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "booking is not pending"}
	}

	flipped, err := s.bookings().UpdateStatusFrom(booking.ID, models.BookingPending, models.BookingRejected)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !flipped {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "booking is not pending"}
	}
	booking.Status = models.BookingRejected
	utils.LogEvent(s.RequestID, "booking", "reject", fmt.Sprintf("booking_id=%d trip_id=%d", booking.ID, trip.ID))

	s.notifyPassenger(trip, booking, models.NotificationBooking,
		"Booking rejected",
		fmt.Sprintf("Your booking for %s → %s was rejected by the driver.", trip.DepartureLocation, trip.ArrivalLocation),
		EmailBookingRejected)

	return booking, nil
}

// Cancel is the passenger's exit. Cancelling a confirmed booking restores
// the seats in the same transaction as the status change; cancelling a
// pending one touches no seats because none were ever taken.
func (s BookingService) Cancel(actorID, bookingID int64) (models.Booking, error) {
	booking, trip, err := s.load(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	if actorID != booking.UserID {
		return models.Booking{}, domain.ForbiddenError{Msg: "only the passenger can cancel their booking"}
	}
	if models.IsTerminalStatus(booking.Status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "booking already " + booking.Status}
	}

	if booking.Status == models.BookingConfirmed {
		tx, err := s.db().Begin()
		if err != nil {
			return models.Booking{}, domain.InternalError{Err: err}
		}
		// Flip the status before touching the ledger: if another cancel
		// already committed, no seats may be restored a second time.
		flipped, err := s.bookings().UpdateStatusFromTx(tx, booking.ID, models.BookingConfirmed, models.BookingCancelled)
		if err != nil {
			_ = tx.Rollback()
			return models.Booking{}, domain.InternalError{Err: err}
		}
		if !flipped {
			_ = tx.Rollback()
			return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "status changed concurrently"}
		}
		if err := s.trips().AdjustAvailableSeats(tx, trip.ID, booking.Seats); err != nil {
			_ = tx.Rollback()
			return models.Booking{}, domain.InternalError{Err: err}
		}
		if err := tx.Commit(); err != nil {
			return models.Booking{}, domain.InternalError{Err: err}
		}
	} else {
		flipped, err := s.bookings().UpdateStatusFrom(booking.ID, models.BookingPending, models.BookingCancelled)
		if err != nil {
			return models.Booking{}, domain.InternalError{Err: err}
		}
		if !flipped {
			return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "status changed concurrently"}
		}
	}

	booking.Status = models.BookingCancelled
	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("booking_id=%d trip_id=%d", booking.ID, trip.ID))

	s.notifyDriver(trip, booking, models.NotificationBooking,
		"Booking cancelled",
		fmt.Sprintf("A passenger cancelled their booking on your trip %s → %s.", trip.DepartureLocation, trip.ArrivalLocation),
		EmailBookingCancelled)

	return booking, nil
}

// Get returns a booking to its owning passenger.
func (s BookingService) Get(actorID, bookingID int64) (models.Booking, error) {
	booking, _, err := s.load(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.UserID != actorID {
		return models.Booking{}, domain.ForbiddenError{Msg: "you are not the owner of this booking"}
	}
	return booking, nil
}

// ListForUser returns the actor's own bookings, newest first.
func (s BookingService) ListForUser(actorID int64) ([]models.Booking, error) {
	out, err := s.bookings().ListByUser(actorID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// ListForTrip returns all bookings on a trip to its driver.
func (s BookingService) ListForTrip(actorID, tripID int64) ([]models.Booking, error) {
	trip, err := s.trips().GetByID(tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "trip", Err: err}
		}
		return nil, domain.InternalError{Err: err}
	}
	if trip.DriverID != actorID {
		return nil, domain.ForbiddenError{Msg: "you are not the driver of this trip"}
	}
	out, err := s.bookings().ListByTrip(tripID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s BookingService) load(bookingID int64) (models.Booking, models.Trip, error) {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.Trip{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, models.Trip{}, domain.InternalError{Err: err}
	}
	trip, err := s.trips().GetByID(booking.TripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
		}
		return models.Booking{}, models.Trip{}, domain.InternalError{Err: err}
	}
	return booking, trip, nil
}

// admitToConversation runs after a confirm commits: ensure the trip's
// conversation exists and both parties are members. Best-effort; a failure
// here never undoes the confirmed booking.
func (s BookingService) admitToConversation(trip models.Trip, booking models.Booking) {
	conv, err := s.conversations().EnsureForTrip(trip.ID)
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "admission_failed", fmt.Sprintf("trip_id=%d err=%v", trip.ID, err))
		return
	}
	if err := s.conversations().AddParticipant(conv.ID, booking.UserID); err != nil {
		utils.LogEvent(s.RequestID, "booking", "admission_failed", fmt.Sprintf("conversation_id=%d user_id=%d err=%v", conv.ID, booking.UserID, err))
	}
	if err := s.conversations().AddParticipant(conv.ID, trip.DriverID); err != nil {
		utils.LogEvent(s.RequestID, "booking", "admission_failed", fmt.Sprintf("conversation_id=%d user_id=%d err=%v", conv.ID, trip.DriverID, err))
	}
}

func (s BookingService) notifyPassenger(trip models.Trip, booking models.Booking, notificationType, title, content, emailType string) {
	id := booking.ID
	s.notifier().Notify(booking.UserID, notificationType, title, content, &id)
	if passenger, err := s.users().GetByID(booking.UserID); err == nil {
		s.notifier().NotifyEmail(passenger, emailType, content, &id)
	}
}

func (s BookingService) notifyDriver(trip models.Trip, booking models.Booking, notificationType, title, content, emailType string) {
	id := booking.ID
	s.notifier().Notify(trip.DriverID, notificationType, title, content, &id)
	if driver, err := s.users().GetByID(trip.DriverID); err == nil {
		s.notifier().NotifyEmail(driver, emailType, content, &id)
	}
}
