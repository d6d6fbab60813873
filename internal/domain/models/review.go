package models

import "time"

// Review attributes a rating to a completed booking. At most one review
// per (booking, reviewer) pair; enforced both here and by a unique key.
type Review struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	ReviewerID int64     `json:"reviewer_id"`
	RevieweeID int64     `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	Reviewer *User `json:"reviewer,omitempty"`
}

// ValidRating checks the 1..5 bound.
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// ReviewerEligible reports whether the reviewer took part in the booking:
// either as the trip's driver or as the booking's passenger.
func ReviewerEligible(reviewerID, driverID, passengerID int64) bool {
	return reviewerID == driverID || reviewerID == passengerID
}
