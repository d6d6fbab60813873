package handlers

import (
	"net/http"

	"jombo/internal/http/middleware"
	"jombo/internal/services"

	"github.com/gin-gonic/gin"
)

func reviewService(c *gin.Context) services.ReviewService {
	return services.ReviewService{
		Notifier:  notifier(c),
		RequestID: middleware.GetRequestID(c),
	}
}

type createReviewRequest struct {
	BookingID  int64  `json:"booking_id"`
	RevieweeID int64  `json:"reviewee_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// POST /api/v1/reviews
func CreateReview(c *gin.Context) {
	var req createReviewRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	review, err := reviewService(c).Create(middleware.CurrentUserID(c), req.BookingID, req.RevieweeID, req.Rating, req.Comment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GET /api/v1/users/:id/reviews lists reviews a user received plus
// their average rating.
func ListUserReviews(c *gin.Context) {
	userID, ok := PathID(c, "id")
	if !ok {
		return
	}
	reviews, avg, count, err := reviewService(c).ForUser(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":        reviews,
		"average_rating": avg,
		"review_count":   count,
	})
}
