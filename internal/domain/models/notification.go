package models

import "time"

// Notification types mirror the events the core emits.
const (
	NotificationEmail   = "email"
	NotificationBooking = "booking"
	NotificationMessage = "message"
	NotificationReview  = "review"
	NotificationTrip    = "trip"
)

// Notification is an inbox record owned by a user. The booking/trip/
// conversation core only requests creation; after that the row changes
// only through the read toggles.
type Notification struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	NotificationType string    `json:"notification_type"`
	EmailType        string    `json:"email_type,omitempty"`
	Title            string    `json:"title"`
	Content          string    `json:"content,omitempty"`
	RelatedID        *int64    `json:"related_id,omitempty"`
	Read             bool      `json:"read"`
	CreatedAt        time.Time `json:"created_at"`
}

func ValidNotificationType(t string) bool {
	switch t {
	case NotificationEmail, NotificationBooking, NotificationMessage, NotificationReview, NotificationTrip:
		return true
	}
	return false
}
