package models

import "time"

// Booking statuses. A booking starts pending; rejected and cancelled are
// terminal, confirmed can still be cancelled by the passenger.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingRejected  = "rejected"
	BookingCancelled = "cancelled"
)

// Booking is a passenger's seat request against a trip.
type Booking struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TripID    int64     `json:"trip_id"`
	Seats     int       `json:"seats"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var bookingTransitions = map[string][]string{
	BookingPending:   {BookingConfirmed, BookingRejected, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
}

// CanTransition reports whether moving a booking from one status to
// another is legal. Rejected and cancelled admit nothing.
func CanTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further transition is possible.
func IsTerminalStatus(status string) bool {
	return status == BookingRejected || status == BookingCancelled
}

func ValidBookingStatus(status string) bool {
	switch status {
	case BookingPending, BookingConfirmed, BookingRejected, BookingCancelled:
		return true
	}
	return false
}
