package models

import "time"

// Conversation is the single chat thread bound 1:1 to a trip. It is
// created lazily on the first confirmed booking, not at trip creation.
type Conversation struct {
	ID        int64     `json:"id"`
	TripID    int64     `json:"trip_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Trip         *Trip   `json:"trip,omitempty"`
	Participants []User  `json:"participants,omitempty"`
	LastMessage  *Message `json:"last_message,omitempty"`
}

// IsConversationParticipant is the access rule for a trip's conversation.
// A user belongs when they drive the trip, are explicitly listed as a
// participant, or hold a confirmed booking on the trip. The last clause
// makes membership partly derived, so the rule takes all three sources as
// inputs rather than reading them itself.
func IsConversationParticipant(userID, driverID int64, explicitMember bool, confirmedBookingHolder bool) bool {
	if userID == driverID {
		return true
	}
	return explicitMember || confirmedBookingHolder
}
