package handlers

import (
	"net/http"
	"time"

	"jombo/internal/http/middleware"
	"jombo/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// POST /api/v1/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UserService{Notifier: notifier(c), RequestID: middleware.GetRequestID(c)}
	user, err := svc.Register(req.Email, req.Password, req.Name, req.Language)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	token, err := issueToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to create token")
		return
	}
	setTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UserService{RequestID: middleware.GetRequestID(c)}
	user, err := svc.Authenticate(req.Email, req.Password)
	if err != nil {
		// Bad credentials are always 401 here, never 403.
		respondError(c, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}

	token, err := issueToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to create token")
		return
	}
	setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// DELETE /api/v1/logout
func Logout(c *gin.Context) {
	c.SetCookie("jwt", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /api/v1/me
func Me(c *gin.Context) {
	actorID := middleware.CurrentUserID(c)
	svc := services.UserService{RequestID: middleware.GetRequestID(c)}
	user, err := svc.Get(actorID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func issueToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

func setTokenCookie(c *gin.Context, token string) {
	c.SetCookie("jwt", token, int((24 * time.Hour).Seconds()), "/", "", false, true)
}
