package models

import (
	"strings"
	"time"
)

// MaxMessageLength bounds message content; empty content is rejected too.
const MaxMessageLength = 1000

// Message belongs to exactly one conversation. Insertion order is
// chronological order; a message is immutable except for deletion by its
// author.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	UserID         int64     `json:"user_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`

	User *User `json:"user,omitempty"`
}

// ValidMessageContent checks the 1..1000 char bound after trimming.
func ValidMessageContent(content string) bool {
	trimmed := strings.TrimSpace(content)
	return trimmed != "" && len([]rune(trimmed)) <= MaxMessageLength
}
