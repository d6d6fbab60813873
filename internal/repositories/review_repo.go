package repositories

import (
	"database/sql"

	"jombo/internal/db"
	"jombo/internal/domain/models"
)

type ReviewRepo struct {
	DB *sql.DB
}

// Exists reports whether the reviewer already reviewed this booking.
func (r ReviewRepo) Exists(bookingID, reviewerID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM reviews
		WHERE booking_id = ? AND reviewer_id = ?`, bookingID, reviewerID).Scan(&n)
	return n > 0, err
}

func (r ReviewRepo) Create(rv models.Review) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO reviews (booking_id, reviewer_id, reviewee_id, rating, comment)
		VALUES (?, ?, ?, ?, ?)`,
		rv.BookingID, rv.ReviewerID, rv.RevieweeID, rv.Rating, db.NullIfEmpty(rv.Comment))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ReviewRepo) GetByID(id int64) (models.Review, error) {
	var rv models.Review
	err := r.DB.QueryRow(`
		SELECT id, booking_id, reviewer_id, reviewee_id, rating, COALESCE(comment, ''), created_at
		FROM reviews WHERE id = ?`, id).
		Scan(&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	return rv, err
}

// ListByReviewee returns reviews received by a user, newest first, with
// reviewer fields for display.
func (r ReviewRepo) ListByReviewee(userID int64) ([]models.Review, error) {
	rows, err := r.DB.Query(`
		SELECT rv.id, rv.booking_id, rv.reviewer_id, rv.reviewee_id, rv.rating, COALESCE(rv.comment, ''), rv.created_at,
		       u.id, u.email, u.name
		FROM reviews rv
		JOIN users u ON u.id = rv.reviewer_id
		WHERE rv.reviewee_id = ?
		ORDER BY rv.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Review{}
	for rows.Next() {
		var rv models.Review
		var u models.User
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
			&u.ID, &u.Email, &u.Name); err != nil {
			return nil, err
		}
		rv.Reviewer = &u
		out = append(out, rv)
	}
	return out, rows.Err()
}

// AverageForReviewee returns the mean rating and review count.
func (r ReviewRepo) AverageForReviewee(userID int64) (float64, int, error) {
	var avg sql.NullFloat64
	var count int
	err := r.DB.QueryRow(`
		SELECT AVG(rating), COUNT(*) FROM reviews WHERE reviewee_id = ?`, userID).
		Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg.Float64, count, nil
}
