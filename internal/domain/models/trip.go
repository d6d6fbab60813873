package models

import "time"

// Trip is a driver-offered ride with a seat capacity and price.
// AvailableSeats is mutated only by the booking state machine, inside the
// same transaction as the status change that triggers the adjustment.
type Trip struct {
	ID                int64     `json:"id"`
	DriverID          int64     `json:"driver_id"`
	DepartureLocation string    `json:"departure_location"`
	ArrivalLocation   string    `json:"arrival_location"`
	DepartureTime     time.Time `json:"departure_time"`
	AvailableSeats    int       `json:"available_seats"`
	Price             float64   `json:"price"`
	Description       string    `json:"description,omitempty"`
	Region            string    `json:"region,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Driver *User `json:"driver,omitempty"`
}

// Departed reports whether the trip's departure time has passed.
func (t Trip) Departed(now time.Time) bool {
	return t.DepartureTime.Before(now)
}
