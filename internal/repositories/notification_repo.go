package repositories

import (
	"database/sql"

	"jombo/internal/db"
	"jombo/internal/domain/models"
)

type NotificationRepo struct {
	DB *sql.DB
}

const notificationColumns = "id, user_id, notification_type, COALESCE(email_type, ''), title, COALESCE(content, ''), related_id, `read`, created_at"

func scanNotification(row interface{ Scan(...any) error }) (models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.NotificationType, &n.EmailType, &n.Title, &n.Content, &n.RelatedID, &n.Read, &n.CreatedAt)
	return n, err
}

func (r NotificationRepo) Create(n models.Notification) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO notifications (user_id, notification_type, email_type, title, content, related_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, n.NotificationType, db.NullIfEmpty(n.EmailType), n.Title, db.NullIfEmpty(n.Content), n.RelatedID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r NotificationRepo) GetByID(id int64) (models.Notification, error) {
	row := r.DB.QueryRow(`SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	return scanNotification(row)
}

// ListByUser returns the user's notifications newest first; unreadOnly and
// typ narrow the result when set.
func (r NotificationRepo) ListByUser(userID int64, unreadOnly bool, typ string) ([]models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	args := []any{userID}
	if unreadOnly {
		query += " AND `read` = 0"
	}
	if typ != "" {
		query += ` AND notification_type = ?`
		args = append(args, typ)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r NotificationRepo) CountUnread(userID int64) (int, error) {
	var n int
	err := r.DB.QueryRow("SELECT COUNT(*) FROM notifications WHERE user_id = ? AND `read` = 0", userID).Scan(&n)
	return n, err
}

func (r NotificationRepo) SetRead(id int64, read bool) error {
	_, err := r.DB.Exec("UPDATE notifications SET `read` = ? WHERE id = ?", read, id)
	return err
}

func (r NotificationRepo) MarkAllRead(userID int64) error {
	_, err := r.DB.Exec("UPDATE notifications SET `read` = 1 WHERE user_id = ? AND `read` = 0", userID)
	return err
}
