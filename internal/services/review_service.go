package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "jombo/internal/config"
	"jombo/internal/domain"
	"jombo/internal/domain/models"
	"jombo/internal/repositories"
	"jombo/internal/utils"
)

// ReviewService gates review creation: only a participant of a past trip's
// booking may review the other party, once. All checks run before the
// insert; there are no partial writes to compensate.
type ReviewService struct {
	ReviewRepo  repositories.ReviewRepo
	BookingRepo repositories.BookingRepo
	TripRepo    repositories.TripRepo
	Notifier    NotificationService
	DB          *sql.DB
	RequestID   string
	Now         func() time.Time
}

func (s ReviewService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ReviewService) reviews() repositories.ReviewRepo {
	if s.ReviewRepo.DB != nil {
		return s.ReviewRepo
	}
	return repositories.ReviewRepo{DB: s.db()}
}

func (s ReviewService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s ReviewService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s ReviewService) notifier() NotificationService {
	n := s.Notifier
	if n.DB == nil {
		n.DB = s.db()
	}
	if n.RequestID == "" {
		n.RequestID = s.RequestID
	}
	return n
}

func (s ReviewService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create validates and persists a review against a booking.
func (s ReviewService) Create(actorID, bookingID, revieweeID int64, rating int, comment string) (models.Review, error) {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Review{}, domain.InternalError{Err: err}
	}
	trip, err := s.trips().GetByID(booking.TripID)
	if err != nil {
		return models.Review{}, domain.InternalError{Err: err}
	}

	if !models.ValidRating(rating) {
		return models.Review{}, domain.ValidationError{Field: "rating", Msg: "must be an integer between 1 and 5"}
	}
	if !models.ReviewerEligible(actorID, trip.DriverID, booking.UserID) {
		return models.Review{}, domain.ValidationError{Field: "reviewer", Msg: "must be either the driver or the passenger of this booking"}
	}
	if actorID == revieweeID {
		return models.Review{}, domain.ValidationError{Field: "reviewee", Msg: "cannot review yourself"}
	}
	if !trip.Departed(s.now()) {
		return models.Review{}, domain.ValidationError{Field: "trip", Msg: "cannot review a trip that hasn't occurred yet"}
	}
	exists, err := s.reviews().Exists(bookingID, actorID)
	if err != nil {
		return models.Review{}, domain.InternalError{Err: err}
	}
	if exists {
		return models.Review{}, domain.ValidationError{Field: "booking", Msg: "has already been reviewed by this user"}
	}

	review := models.Review{
		BookingID:  bookingID,
		ReviewerID: actorID,
		RevieweeID: revieweeID,
		Rating:     rating,
		Comment:    comment,
	}
	id, err := s.reviews().Create(review)
	if err != nil {
		if isDuplicateKey(err) {
			return models.Review{}, domain.ValidationError{Field: "booking", Msg: "has already been reviewed by this user"}
		}
		return models.Review{}, domain.InternalError{Err: err}
	}
	review.ID = id
	utils.LogEvent(s.RequestID, "review", "create", fmt.Sprintf("review_id=%d booking_id=%d rating=%d", id, bookingID, rating))

	s.notifier().Notify(revieweeID, models.NotificationReview, "New review received",
		fmt.Sprintf("You received a %d-star review.", rating), &id)

	return review, nil
}

// ForUser returns the reviews a user has received plus their average
// rating.
func (s ReviewService) ForUser(userID int64) ([]models.Review, float64, int, error) {
	reviews, err := s.reviews().ListByReviewee(userID)
	if err != nil {
		return nil, 0, 0, domain.InternalError{Err: err}
	}
	avg, count, err := s.reviews().AverageForReviewee(userID)
	if err != nil {
		return nil, 0, 0, domain.InternalError{Err: err}
	}
	return reviews, avg, count, nil
}
