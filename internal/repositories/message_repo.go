package repositories

import (
	"database/sql"

	"jombo/internal/domain/models"
)

type MessageRepo struct {
	DB *sql.DB
}

func (r MessageRepo) GetByID(id int64) (models.Message, error) {
	var m models.Message
	err := r.DB.QueryRow(`
		SELECT id, conversation_id, user_id, content, created_at
		FROM messages WHERE id = ?`, id).
		Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Content, &m.CreatedAt)
	return m, err
}

// ListByConversation returns messages with author fields in chronological
// order.
func (r MessageRepo) ListByConversation(conversationID int64) ([]models.Message, error) {
	rows, err := r.DB.Query(`
		SELECT m.id, m.conversation_id, m.user_id, m.content, m.created_at,
		       u.id, u.email, u.name
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.conversation_id = ?
		ORDER BY m.created_at ASC, m.id ASC`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Message{}
	for rows.Next() {
		var m models.Message
		var u models.User
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Content, &m.CreatedAt,
			&u.ID, &u.Email, &u.Name); err != nil {
			return nil, err
		}
		m.User = &u
		out = append(out, m)
	}
	return out, rows.Err()
}

// LastByConversation returns the newest message, or sql.ErrNoRows.
func (r MessageRepo) LastByConversation(conversationID int64) (models.Message, error) {
	var m models.Message
	err := r.DB.QueryRow(`
		SELECT id, conversation_id, user_id, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, conversationID).
		Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Content, &m.CreatedAt)
	return m, err
}

func (r MessageRepo) Create(m models.Message) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO messages (conversation_id, user_id, content)
		VALUES (?, ?, ?)`, m.ConversationID, m.UserID, m.Content)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r MessageRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM messages WHERE id = ?`, id)
	return err
}
