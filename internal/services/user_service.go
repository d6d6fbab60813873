package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "jombo/internal/config"
	"jombo/internal/domain"
	"jombo/internal/domain/models"
	"jombo/internal/repositories"
	"jombo/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account creation, credential checks and profile
// updates. Token issuance lives in the HTTP layer.
type UserService struct {
	UserRepo  repositories.UserRepo
	Notifier  NotificationService
	DB        *sql.DB
	RequestID string
}

func (s UserService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s UserService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

func (s UserService) notifier() NotificationService {
	n := s.Notifier
	if n.DB == nil {
		n.DB = s.db()
	}
	if n.RequestID == "" {
		n.RequestID = s.RequestID
	}
	return n
}

// Register creates the account and sends the welcome email.
func (s UserService) Register(email, password, name, language string) (models.User, error) {
	email = strings.ToLower(utils.TrimOrEmpty(email))
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "is invalid"}
	}
	if len(password) < 6 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}
	if language == "" {
		language = "en"
	}

	exists, err := s.users().EmailExists(email)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	if exists {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "has already been taken"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	user := models.User{Email: email, Name: utils.TrimOrEmpty(name), Language: language}
	id, err := s.users().Create(user, string(hash))
	if err != nil {
		if isDuplicateKey(err) {
			return models.User{}, domain.ValidationError{Field: "email", Msg: "has already been taken"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	user.ID = id
	utils.LogEvent(s.RequestID, "user", "register", fmt.Sprintf("user_id=%d", id))

	s.notifier().NotifyEmail(user, EmailWelcome, "Welcome aboard! Post a trip or book your first ride.", nil)
	return user, nil
}

// Authenticate verifies credentials and returns the user.
func (s UserService) Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(utils.TrimOrEmpty(email))
	user, hash, err := s.users().GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.ForbiddenError{Msg: "invalid email or password"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return models.User{}, domain.ForbiddenError{Msg: "invalid email or password"}
	}
	return user, nil
}

func (s UserService) Get(id int64) (models.User, error) {
	user, err := s.users().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return user, nil
}

// UpdateProfile changes the actor's own name, language and picture URL.
func (s UserService) UpdateProfile(actorID int64, name, language, picture string) (models.User, error) {
	user, err := s.Get(actorID)
	if err != nil {
		return models.User{}, err
	}
	if name != "" {
		user.Name = utils.TrimOrEmpty(name)
	}
	if language != "" {
		if language != "en" && language != "es" {
			return models.User{}, domain.ValidationError{Field: "language", Msg: "must be en or es"}
		}
		user.Language = language
	}
	if picture != "" {
		user.Picture = utils.TrimOrEmpty(picture)
	}
	if err := s.users().UpdateProfile(user); err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return user, nil
}
