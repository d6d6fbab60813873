package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLockAndAdjustAvailableSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(3))
	mock.ExpectExec("UPDATE trips SET available_seats").
		WithArgs(-2, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := TripRepo{DB: db}
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	available, err := repo.LockAvailableSeats(tx, 10)
	if err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	if available != 3 {
		t.Fatalf("expected 3 available seats, got %d", available)
	}
	if err := repo.AdjustAvailableSeats(tx, 10, -2); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
