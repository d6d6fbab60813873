package services

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "jombo/internal/config"
	"jombo/internal/domain"
	"jombo/internal/domain/models"
	"jombo/internal/repositories"
	"jombo/internal/utils"

	"github.com/go-sql-driver/mysql"
)

// ConversationService owns the one-conversation-per-trip invariant and the
// membership rules around it, plus the message operations that depend on
// those rules.
type ConversationService struct {
	ConversationRepo repositories.ConversationRepo
	MessageRepo      repositories.MessageRepo
	BookingRepo      repositories.BookingRepo
	TripRepo         repositories.TripRepo
	Notifier         NotificationService
	DB               *sql.DB
	RequestID        string
}

func (s ConversationService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ConversationService) conversations() repositories.ConversationRepo {
	if s.ConversationRepo.DB != nil {
		return s.ConversationRepo
	}
	return repositories.ConversationRepo{DB: s.db()}
}

func (s ConversationService) messages() repositories.MessageRepo {
	if s.MessageRepo.DB != nil {
		return s.MessageRepo
	}
	return repositories.MessageRepo{DB: s.db()}
}

func (s ConversationService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s ConversationService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s ConversationService) notifier() NotificationService {
	n := s.Notifier
	if n.DB == nil {
		n.DB = s.db()
	}
	if n.RequestID == "" {
		n.RequestID = s.RequestID
	}
	return n
}

// EnsureForTrip returns the trip's conversation, creating it when absent.
// Creation is idempotent under concurrency: a loser of the insert race
// hits the trip_id unique key and re-fetches the winner's row.
func (s ConversationService) EnsureForTrip(tripID int64) (models.Conversation, error) {
	conv, err := s.conversations().GetByTripID(tripID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, domain.InternalError{Err: err}
	}

	id, err := s.conversations().Create(tripID)
	if err != nil {
		if isDuplicateKey(err) {
			conv, err = s.conversations().GetByTripID(tripID)
			if err != nil {
				return models.Conversation{}, domain.InternalError{Err: err}
			}
			return conv, nil
		}
		return models.Conversation{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "conversation", "create", fmt.Sprintf("conversation_id=%d trip_id=%d", id, tripID))
	return models.Conversation{ID: id, TripID: tripID}, nil
}

// AddParticipant records membership; re-adding is a no-op.
func (s ConversationService) AddParticipant(conversationID, userID int64) error {
	return s.conversations().AddParticipant(conversationID, userID)
}

// IsParticipant applies the derived membership rule: trip driver, explicit
// member, or confirmed-booking holder.
func (s ConversationService) IsParticipant(conv models.Conversation, userID int64) (bool, error) {
	trip, err := s.trips().GetByID(conv.TripID)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	explicit, err := s.conversations().IsExplicitParticipant(conv.ID, userID)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	confirmed, err := s.bookings().HasConfirmed(conv.TripID, userID)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return models.IsConversationParticipant(userID, trip.DriverID, explicit, confirmed), nil
}

// ListForUser returns conversations the actor explicitly belongs to, each
// decorated with its trip and last message.
func (s ConversationService) ListForUser(actorID int64) ([]models.Conversation, error) {
	convs, err := s.conversations().ListByParticipant(actorID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	for i := range convs {
		if trip, err := s.trips().GetWithDriver(convs[i].TripID); err == nil {
			convs[i].Trip = &trip
		}
		if last, err := s.messages().LastByConversation(convs[i].ID); err == nil {
			convs[i].LastMessage = &last
		}
		if participants, err := s.conversations().ListParticipants(convs[i].ID); err == nil {
			convs[i].Participants = participants
		}
	}
	return convs, nil
}

// Get returns the conversation with trip, participants and messages, for
// participants only.
func (s ConversationService) Get(actorID, conversationID int64) (models.Conversation, []models.Message, error) {
	conv, err := s.loadAuthorized(actorID, conversationID)
	if err != nil {
		return models.Conversation{}, nil, err
	}

	if trip, err := s.trips().GetWithDriver(conv.TripID); err == nil {
		conv.Trip = &trip
	}
	if participants, err := s.conversations().ListParticipants(conv.ID); err == nil {
		conv.Participants = participants
	}
	msgs, err := s.messages().ListByConversation(conv.ID)
	if err != nil {
		return models.Conversation{}, nil, domain.InternalError{Err: err}
	}
	return conv, msgs, nil
}

// GetByTrip resolves the trip's conversation for an authorized user.
func (s ConversationService) GetByTrip(actorID, tripID int64) (models.Conversation, []models.Message, error) {
	if _, err := s.trips().GetByID(tripID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Conversation{}, nil, domain.NotFoundError{Resource: "trip", Err: err}
		}
		return models.Conversation{}, nil, domain.InternalError{Err: err}
	}
	conv, err := s.conversations().GetByTripID(tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Conversation{}, nil, domain.NotFoundError{Resource: "conversation", Err: err}
		}
		return models.Conversation{}, nil, domain.InternalError{Err: err}
	}
	return s.Get(actorID, conv.ID)
}

// Delete removes the conversation; only the trip's driver may do it.
func (s ConversationService) Delete(actorID, conversationID int64) error {
	conv, err := s.conversations().GetByID(conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "conversation", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	trip, err := s.trips().GetByID(conv.TripID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if trip.DriverID != actorID {
		return domain.ForbiddenError{Msg: "only the driver can delete the conversation"}
	}
	if err := s.conversations().Delete(conversationID); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "conversation", "delete", fmt.Sprintf("conversation_id=%d", conversationID))
	return nil
}

// ListMessages returns the conversation's messages in chronological order
// to a participant.
func (s ConversationService) ListMessages(actorID, conversationID int64) ([]models.Message, error) {
	conv, err := s.loadAuthorized(actorID, conversationID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages().ListByConversation(conv.ID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return msgs, nil
}

// SendMessage appends a message and fans a notification row plus a
// new-message email out to the other explicit participants.
func (s ConversationService) SendMessage(actorID, conversationID int64, content string) (models.Message, error) {
	conv, err := s.loadAuthorized(actorID, conversationID)
	if err != nil {
		return models.Message{}, err
	}
	if !models.ValidMessageContent(content) {
		return models.Message{}, domain.ValidationError{Field: "content", Msg: fmt.Sprintf("must be 1 to %d characters", models.MaxMessageLength)}
	}

	msg := models.Message{ConversationID: conv.ID, UserID: actorID, Content: content}
	id, err := s.messages().Create(msg)
	if err != nil {
		return models.Message{}, domain.InternalError{Err: err}
	}
	msg.ID = id
	utils.LogEvent(s.RequestID, "message", "create", fmt.Sprintf("message_id=%d conversation_id=%d", id, conv.ID))

	if participants, err := s.conversations().ListParticipants(conv.ID); err == nil {
		for _, p := range participants {
			if p.ID == actorID {
				continue
			}
			s.notifier().Notify(p.ID, models.NotificationMessage, "New message", content, &id)
			s.notifier().NotifyEmail(p, EmailNewMessage, content, &id)
		}
	}
	return msg, nil
}

// DeleteMessage removes a message; only its author may.
func (s ConversationService) DeleteMessage(actorID, conversationID, messageID int64) error {
	if _, err := s.loadAuthorized(actorID, conversationID); err != nil {
		return err
	}
	msg, err := s.messages().GetByID(messageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "message", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if msg.ConversationID != conversationID {
		return domain.NotFoundError{Resource: "message"}
	}
	if msg.UserID != actorID {
		return domain.ForbiddenError{Msg: "you can only delete your own messages"}
	}
	if err := s.messages().Delete(messageID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (s ConversationService) loadAuthorized(actorID, conversationID int64) (models.Conversation, error) {
	conv, err := s.conversations().GetByID(conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Conversation{}, domain.NotFoundError{Resource: "conversation", Err: err}
		}
		return models.Conversation{}, domain.InternalError{Err: err}
	}
	ok, err := s.IsParticipant(conv, actorID)
	if err != nil {
		return models.Conversation{}, err
	}
	if !ok {
		return models.Conversation{}, domain.ForbiddenError{Msg: "you don't have access to this conversation"}
	}
	return conv, nil
}

// isDuplicateKey detects MySQL error 1062 (unique constraint violation).
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
