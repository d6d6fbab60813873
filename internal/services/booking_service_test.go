package services

import (
	"testing"
	"time"

	"jombo/internal/domain"
	"jombo/internal/domain/models"
	"jombo/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var testTime = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func bookingRows(id, userID, tripID int64, seats int, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "trip_id", "seats", "status", "created_at", "updated_at"}).
		AddRow(id, userID, tripID, seats, status, testTime, testTime)
}

func tripRows(id, driverID int64, seats int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "driver_id", "departure_location", "arrival_location",
		"departure_time", "available_seats", "price", "description", "region",
		"created_at", "updated_at",
	}).AddRow(id, driverID, "Douala", "Yaoundé", testTime, seats, 2500.0, "", "", testTime, testTime)
}

func TestBookingCreatePending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(2), int64(10), 2, models.BookingPending).
		WillReturnResult(sqlmock.NewResult(5, 1))

	svc := BookingService{DB: db}
	booking, err := svc.Create(2, 10, 2)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if booking.ID != 5 || booking.Status != models.BookingPending {
		t.Fatalf("unexpected booking: %+v", booking)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateRejectsOversizedRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 2))

	svc := BookingService{DB: db}
	if _, err := svc.Create(2, 10, 3); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateRejectsSelfBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))

	svc := BookingService{DB: db}
	if _, err := svc.Create(1, 10, 1); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookingCreateTripNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := BookingService{DB: db}
	if _, err := svc.Create(2, 99, 1); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestBookingConfirmDecrementsSeatsAtomically(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 2, 10, 2, models.BookingPending))
	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(3))
	mock.ExpectExec("UPDATE trips SET available_seats").
		WithArgs(-2, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(models.BookingConfirmed, int64(5), models.BookingPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := BookingService{DB: db, BookingRepo: repositories.BookingRepo{DB: db}, TripRepo: repositories.TripRepo{DB: db}}
	booking, err := svc.Confirm(1, 5)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if booking.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingConfirmRollsBackOnShortfall(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 2, 10, 4, models.BookingPending))
	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 4))

	mock.ExpectBegin()
	// another confirm slipped in between the read and the lock
	mock.ExpectQuery("FOR UPDATE").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(1))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	if _, err := svc.Confirm(1, 5); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingConfirmForbiddenForNonDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 2, 10, 1, models.BookingPending))
	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))

	svc := BookingService{DB: db}
	if _, err := svc.Confirm(2, 5); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingConfirmRejectsNonPending(t *testing.T) {
	for _, status := range []string{models.BookingConfirmed, models.BookingRejected, models.BookingCancelled} {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock init error: %v", err)
		}

		mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
			WillReturnRows(bookingRows(5, 2, 10, 1, status))
		mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
			WillReturnRows(tripRows(10, 1, 3))

		svc := BookingService{DB: db}
		if _, err := svc.Confirm(1, 5); !domain.IsValidation(err) {
			t.Errorf("status %s: expected validation error, got %v", status, err)
		}
		db.Close()
	}
}

func TestBookingCancelConfirmedRestoresSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 2, 10, 2, models.BookingConfirmed))
	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 1))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(models.BookingCancelled, int64(5), models.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trips SET available_seats").
		WithArgs(2, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := BookingService{DB: db}
	booking, err := svc.Cancel(2, 5)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if booking.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled, got %s", booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCancelPendingTouchesNoSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 2, 10, 2, models.BookingPending))
	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))

	// no transaction, no trips update
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(models.BookingCancelled, int64(5), models.BookingPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := BookingService{DB: db}
	if _, err := svc.Cancel(2, 5); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCancelTerminalIsRejected(t *testing.T) {
	for _, status := range []string{models.BookingRejected, models.BookingCancelled} {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock init error: %v", err)
		}

		mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
			WillReturnRows(bookingRows(5, 2, 10, 1, status))
		mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
			WillReturnRows(tripRows(10, 1, 3))

		svc := BookingService{DB: db}
		if _, err := svc.Cancel(2, 5); !domain.IsValidation(err) {
			t.Errorf("status %s: expected validation error, got %v", status, err)
		}
		db.Close()
	}
}

func TestBookingCancelForbiddenForNonOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 2, 10, 1, models.BookingPending))
	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))

	svc := BookingService{DB: db}
	// the driver cannot cancel on the passenger's behalf
	if _, err := svc.Cancel(1, 5); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestBookingRejectLeavesLedgerUntouched(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 2, 10, 2, models.BookingPending))
	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(models.BookingRejected, int64(5), models.BookingPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := BookingService{DB: db}
	booking, err := svc.Reject(1, 5)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if booking.Status != models.BookingRejected {
		t.Fatalf("expected rejected, got %s", booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingConfirmRollsBackOnConcurrentCancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 2, 10, 2, models.BookingPending))
	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(3))
	mock.ExpectExec("UPDATE trips SET available_seats").
		WithArgs(-2, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// the passenger's cancel committed between our read and the lock, so
	// the predicated status write matches nothing
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(models.BookingConfirmed, int64(5), models.BookingPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	if _, err := svc.Confirm(1, 5); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCancelDoesNotRestoreSeatsTwice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 2, 10, 2, models.BookingConfirmed))
	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 1))

	// another cancel of the same booking already committed; no trips
	// update may follow the failed flip
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(models.BookingCancelled, int64(5), models.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	if _, err := svc.Cancel(2, 5); !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRejectDetectsConcurrentTransition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 2, 10, 2, models.BookingPending))
	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(models.BookingRejected, int64(5), models.BookingPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := BookingService{DB: db}
	if _, err := svc.Reject(1, 5); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
