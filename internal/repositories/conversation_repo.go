package repositories

import (
	"database/sql"

	"jombo/internal/domain/models"
)

type ConversationRepo struct {
	DB *sql.DB
}

func (r ConversationRepo) GetByID(id int64) (models.Conversation, error) {
	var c models.Conversation
	err := r.DB.QueryRow(`
		SELECT id, trip_id, created_at, updated_at
		FROM conversations WHERE id = ?`, id).
		Scan(&c.ID, &c.TripID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r ConversationRepo) GetByTripID(tripID int64) (models.Conversation, error) {
	var c models.Conversation
	err := r.DB.QueryRow(`
		SELECT id, trip_id, created_at, updated_at
		FROM conversations WHERE trip_id = ?`, tripID).
		Scan(&c.ID, &c.TripID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts the trip's conversation row. The unique key on trip_id
// makes a concurrent second insert fail with a duplicate-key error; the
// caller treats that as benign and re-fetches.
func (r ConversationRepo) Create(tripID int64) (int64, error) {
	res, err := r.DB.Exec(`INSERT INTO conversations (trip_id) VALUES (?)`, tripID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ConversationRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM conversations WHERE id = ?`, id)
	return err
}

// AddParticipant is idempotent: re-adding an existing participant is a
// no-op thanks to INSERT IGNORE against the unique membership key.
func (r ConversationRepo) AddParticipant(conversationID, userID int64) error {
	_, err := r.DB.Exec(`
		INSERT IGNORE INTO conversation_participants (conversation_id, user_id)
		VALUES (?, ?)`, conversationID, userID)
	return err
}

func (r ConversationRepo) IsExplicitParticipant(conversationID, userID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM conversation_participants
		WHERE conversation_id = ? AND user_id = ?`, conversationID, userID).Scan(&n)
	return n > 0, err
}

func (r ConversationRepo) ListParticipants(conversationID int64) ([]models.User, error) {
	rows, err := r.DB.Query(`
		SELECT u.id, u.email, u.name
		FROM conversation_participants cp
		JOIN users u ON u.id = cp.user_id
		WHERE cp.conversation_id = ?
		ORDER BY cp.created_at ASC`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r ConversationRepo) ListByParticipant(userID int64) ([]models.Conversation, error) {
	rows, err := r.DB.Query(`
		SELECT c.id, c.trip_id, c.created_at, c.updated_at
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		WHERE cp.user_id = ?
		ORDER BY c.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.TripID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
