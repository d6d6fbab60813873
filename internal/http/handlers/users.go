package handlers

import (
	"net/http"

	"jombo/internal/http/middleware"
	"jombo/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/users/:id
func GetUser(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := services.UserService{RequestID: middleware.GetRequestID(c)}
	user, err := svc.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Picture  string `json:"picture"`
}

// PUT /api/v1/users/profile updates the actor's own profile only.
func UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.UserService{RequestID: middleware.GetRequestID(c)}
	user, err := svc.UpdateProfile(middleware.CurrentUserID(c), req.Name, req.Language, req.Picture)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
