package services

import (
	"bytes"
	"testing"

	"jombo/internal/domain"
	"jombo/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGenerateTripManifest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))
	mock.ExpectQuery("JOIN users").WithArgs(int64(10), models.BookingConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "trip_id", "seats", "status", "created_at", "updated_at",
			"id", "email", "name",
		}).
			AddRow(5, 2, 10, 2, models.BookingConfirmed, testTime, testTime, 2, "amira@example.com", "Amira").
			AddRow(6, 3, 10, 1, models.BookingConfirmed, testTime, testTime, 3, "bob@example.com", "Bob"))

	svc := DocsService{DB: db}
	pdf, filename, err := svc.GenerateTripManifest(1, 10)
	if err != nil {
		t.Fatalf("manifest failed: %v", err)
	}
	if filename != "trip-10-manifest.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGenerateTripManifestForbiddenForNonDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips").WithArgs(int64(10)).
		WillReturnRows(tripRows(10, 1, 3))

	svc := DocsService{DB: db}
	if _, _, err := svc.GenerateTripManifest(2, 10); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}
