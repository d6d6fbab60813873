package handlers

import (
	"net/http"
	"strconv"

	"jombo/internal/http/middleware"
	"jombo/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	jwtSecret []byte
	mailQueue *services.MailQueue
)

// Configure wires handler-level dependencies once at router construction.
func Configure(secret []byte, queue *services.MailQueue) {
	jwtSecret = secret
	mailQueue = queue
}

// JWTSecret exposes the configured signing key to the router's auth
// middleware.
func JWTSecret() []byte {
	return jwtSecret
}

func notifier(c *gin.Context) services.NotificationService {
	return services.NotificationService{
		Queue:     mailQueue,
		RequestID: middleware.GetRequestID(c),
	}
}

// BindJSONOrError ensures the body is present and parsable. Malformed
// payloads are 400; business-rule failures come later as 422.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "bad_request", "empty body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

// PathID parses a positive int64 path parameter.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "bad_request", "invalid "+name)
		return 0, false
	}
	return id, true
}
