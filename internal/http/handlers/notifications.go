package handlers

import (
	"net/http"

	"jombo/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/notifications?unread=true&type=booking
func ListNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	typ := c.Query("type")

	items, unread, err := notifier(c).ListForUser(middleware.CurrentUserID(c), unreadOnly, typ)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items, "unread_count": unread})
}

// GET /api/v1/notifications/:id
func GetNotification(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	n, err := notifier(c).Get(middleware.CurrentUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// PATCH /api/v1/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	setNotificationRead(c, true)
}

// PATCH /api/v1/notifications/:id/unread
func MarkNotificationUnread(c *gin.Context) {
	setNotificationRead(c, false)
}

func setNotificationRead(c *gin.Context, read bool) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	n, err := notifier(c).SetRead(middleware.CurrentUserID(c), id, read)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": n})
}

// PATCH /api/v1/notifications/mark_all_read
func MarkAllNotificationsRead(c *gin.Context) {
	if err := notifier(c).MarkAllRead(middleware.CurrentUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}
