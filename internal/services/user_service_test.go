package services

import (
	"testing"

	"jombo/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterValidatesInput(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := UserService{DB: db}
	if _, err := svc.Register("not-an-email", "secret123", "Amira", "en"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad email, got %v", err)
	}
	if _, err := svc.Register("amira@example.com", "short", "Amira", "en"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").WithArgs("amira@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	svc := UserService{DB: db}
	if _, err := svc.Register("Amira@Example.com", "secret123", "Amira", "en"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for taken email, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	mock.ExpectQuery("FROM users WHERE email").WithArgs("amira@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "language", "picture", "created_at", "updated_at", "password_hash"}).
			AddRow(2, "amira@example.com", "Amira", "en", "", testTime, testTime, string(hash)))

	svc := UserService{DB: db}
	if _, err := svc.Authenticate("amira@example.com", "wrong-password"); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}
