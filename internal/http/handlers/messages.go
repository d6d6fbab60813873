package handlers

import (
	"net/http"

	"jombo/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/conversations/:id/messages
func ListMessages(c *gin.Context) {
	conversationID, ok := PathID(c, "id")
	if !ok {
		return
	}
	msgs, err := conversationService(c).ListMessages(middleware.CurrentUserID(c), conversationID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

type createMessageRequest struct {
	Content string `json:"content"`
}

// POST /api/v1/conversations/:id/messages
func CreateMessage(c *gin.Context) {
	conversationID, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req createMessageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	msg, err := conversationService(c).SendMessage(middleware.CurrentUserID(c), conversationID, req.Content)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// DELETE /api/v1/conversations/:id/messages/:message_id
func DeleteMessage(c *gin.Context) {
	conversationID, ok := PathID(c, "id")
	if !ok {
		return
	}
	messageID, ok := PathID(c, "message_id")
	if !ok {
		return
	}
	if err := conversationService(c).DeleteMessage(middleware.CurrentUserID(c), conversationID, messageID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted successfully"})
}
