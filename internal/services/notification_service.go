package services

import (
	"database/sql"
	"fmt"

	intconfig "jombo/internal/config"
	"jombo/internal/domain"
	"jombo/internal/domain/models"
	"jombo/internal/repositories"
	"jombo/internal/utils"
)

// NotificationService is the fan-out collaborator: it persists inbox rows
// and hands emails to the mail queue. Creation failures are logged and
// swallowed so they never roll back the domain transition that triggered
// them; the read-state API below is the only caller-facing error surface.
type NotificationService struct {
	NotificationRepo repositories.NotificationRepo
	Queue            *MailQueue
	DB               *sql.DB
	RequestID        string
}

func (s NotificationService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s NotificationService) notifications() repositories.NotificationRepo {
	if s.NotificationRepo.DB != nil {
		return s.NotificationRepo
	}
	return repositories.NotificationRepo{DB: s.db()}
}

// Notify writes a notification row for the user; best-effort.
func (s NotificationService) Notify(userID int64, notificationType, title, content string, relatedID *int64) {
	if userID <= 0 || !models.ValidNotificationType(notificationType) {
		return
	}
	_, err := s.notifications().Create(models.Notification{
		UserID:           userID,
		NotificationType: notificationType,
		Title:            title,
		Content:          content,
		RelatedID:        relatedID,
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "notification", "create_failed", fmt.Sprintf("user_id=%d type=%s err=%v", userID, notificationType, err))
		return
	}
	utils.LogEvent(s.RequestID, "notification", "create", fmt.Sprintf("user_id=%d type=%s", userID, notificationType))
}

// NotifyEmail records an email-type notification and enqueues the actual
// outbound email in one step.
func (s NotificationService) NotifyEmail(user models.User, emailType, body string, relatedID *int64) {
	subject := MailSubject(emailType, user.Language)
	if user.ID > 0 {
		_, err := s.notifications().Create(models.Notification{
			UserID:           user.ID,
			NotificationType: models.NotificationEmail,
			EmailType:        emailType,
			Title:            subject,
			Content:          body,
			RelatedID:        relatedID,
		})
		if err != nil {
			utils.LogEvent(s.RequestID, "notification", "create_failed", fmt.Sprintf("user_id=%d email_type=%s err=%v", user.ID, emailType, err))
		}
	}
	if s.Queue != nil && user.Email != "" {
		s.Queue.Enqueue(user.Email, emailType, subject, body)
	}
}

// ListForUser returns the user's notifications plus the unread count.
func (s NotificationService) ListForUser(userID int64, unreadOnly bool, typ string) ([]models.Notification, int, error) {
	if typ != "" && !models.ValidNotificationType(typ) {
		return nil, 0, domain.ValidationError{Field: "type", Msg: "unknown notification type"}
	}
	items, err := s.notifications().ListByUser(userID, unreadOnly, typ)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	unread, err := s.notifications().CountUnread(userID)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return items, unread, nil
}

// Get returns a notification owned by the actor.
func (s NotificationService) Get(actorID, id int64) (models.Notification, error) {
	n, err := s.notifications().GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Notification{}, domain.NotFoundError{Resource: "notification", Err: err}
		}
		return models.Notification{}, domain.InternalError{Err: err}
	}
	if n.UserID != actorID {
		return models.Notification{}, domain.ForbiddenError{Msg: "notification belongs to another user"}
	}
	return n, nil
}

// SetRead toggles the read flag on the actor's own notification.
func (s NotificationService) SetRead(actorID, id int64, read bool) (models.Notification, error) {
	n, err := s.Get(actorID, id)
	if err != nil {
		return models.Notification{}, err
	}
	if err := s.notifications().SetRead(id, read); err != nil {
		return models.Notification{}, domain.InternalError{Err: err}
	}
	n.Read = read
	return n, nil
}

func (s NotificationService) MarkAllRead(actorID int64) error {
	if err := s.notifications().MarkAllRead(actorID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
