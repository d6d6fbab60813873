package api

import (
	"log"
	stdhttp "net/http"

	intconfig "jombo/internal/config"
	h "jombo/internal/http/handlers"
	"jombo/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the Gin engine with the full /api/v1 surface. Handler
// dependencies (JWT secret, mail queue) must be set via handlers.Configure
// before requests arrive.
func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.RequireAuth(h.JWTSecret())

	api := r.Group("/api/v1")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.DELETE("/logout", h.Logout)
		api.GET("/me", auth, h.Me)

		trips := api.Group("/trips")
		{
			trips.GET("", h.ListTrips)
			trips.GET("/search/:departure_location", h.SearchTrips)
			trips.GET("/my_trips", auth, h.MyTrips)
			trips.GET("/:id", h.GetTrip)
			trips.POST("", auth, h.CreateTrip)
			trips.PUT("/:id", auth, h.UpdateTrip)
			trips.DELETE("/:id", auth, h.DeleteTrip)
			trips.GET("/:id/bookings", auth, h.ListTripBookings)
			trips.GET("/:id/conversation", auth, h.GetTripConversation)
			trips.GET("/:id/manifest", auth, h.GetTripManifest)
		}

		bookings := api.Group("/bookings", auth)
		{
			bookings.GET("", h.ListMyBookings)
			bookings.GET("/:id", h.GetBooking)
			bookings.POST("", h.CreateBooking)
			bookings.PATCH("/:id/confirm", h.ConfirmBooking)
			bookings.PATCH("/:id/reject", h.RejectBooking)
			bookings.DELETE("/:id", h.CancelBooking)
		}

		conversations := api.Group("/conversations", auth)
		{
			conversations.GET("", h.ListConversations)
			conversations.GET("/:id", h.GetConversation)
			conversations.DELETE("/:id", h.DeleteConversation)
			conversations.GET("/:id/messages", h.ListMessages)
			conversations.POST("/:id/messages", h.CreateMessage)
			conversations.DELETE("/:id/messages/:message_id", h.DeleteMessage)
		}

		reviews := api.Group("/reviews", auth)
		{
			reviews.POST("", h.CreateReview)
		}

		users := api.Group("/users")
		{
			users.GET("/:id", h.GetUser)
			users.GET("/:id/reviews", h.ListUserReviews)
			users.PUT("/profile", auth, h.UpdateProfile)
		}

		notifications := api.Group("/notifications", auth)
		{
			notifications.GET("", h.ListNotifications)
			notifications.PATCH("/mark_all_read", h.MarkAllNotificationsRead)
			notifications.GET("/:id", h.GetNotification)
			notifications.PATCH("/:id/read", h.MarkNotificationRead)
			notifications.PATCH("/:id/unread", h.MarkNotificationUnread)
		}
	}

	return r
}
