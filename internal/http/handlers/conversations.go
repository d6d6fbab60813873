package handlers

import (
	"net/http"

	"jombo/internal/http/middleware"
	"jombo/internal/services"

	"github.com/gin-gonic/gin"
)

func conversationService(c *gin.Context) services.ConversationService {
	return services.ConversationService{
		Notifier:  notifier(c),
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/v1/conversations
func ListConversations(c *gin.Context) {
	convs, err := conversationService(c).ListForUser(middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, convs)
}

// GET /api/v1/conversations/:id
func GetConversation(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	conv, msgs, err := conversationService(c).Get(middleware.CurrentUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conv, "messages": msgs})
}

// GET /api/v1/trips/:id/conversation
func GetTripConversation(c *gin.Context) {
	tripID, ok := PathID(c, "id")
	if !ok {
		return
	}
	conv, msgs, err := conversationService(c).GetByTrip(middleware.CurrentUserID(c), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conv, "messages": msgs})
}

// DELETE /api/v1/conversations/:id
func DeleteConversation(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := conversationService(c).Delete(middleware.CurrentUserID(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conversation deleted successfully"})
}
