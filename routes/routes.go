package routes

import (
	"net/http"
	"time"

	"mendwell/handlers"
	"mendwell/middleware"
	"mendwell/services/role"
	"mendwell/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and sign-in endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/google", hb.Auth.GoogleSignInHandler)
		api.POST("/kakao", hb.Auth.KakaoSignInHandler)

		// Sign-out needs the session it is closing.
		api.POST("/signout", middleware.JWTAuthMiddleware(hb.UserRepo), hb.Auth.SignOutHandler)
	}
}

// RegisterUserRoutes registers profile and settings endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.GetProfileHandler)
		api.PUT("/me", hb.Users.UpdateProfileHandler)
		api.DELETE("/me", hb.Users.DeleteAccountHandler)
		api.GET("/me/role", hb.Users.GetRoleHandler)
		api.PUT("/me/password", hb.Users.UpdatePasswordHandler)
		api.GET("/me/notification-settings", hb.Users.GetNotificationSettingsHandler)
		api.PUT("/me/notification-settings", hb.Users.UpdateNotificationSettingsHandler)
	}
}

// RegisterTherapistRoutes registers therapist discovery, profile management,
// availability, follows and verification submission.
func RegisterTherapistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/therapists")
	{
		// Public discovery endpoints.
		api.GET("", hb.Therapists.ListTherapistsHandler)
		api.GET("/id/:id", hb.Therapists.GetTherapistHandler)
		api.GET("/id/:id/availability/dates", hb.Therapists.AvailableDatesHandler)
		api.GET("/id/:id/availability/slots", hb.Therapists.AvailableSlotsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.POST("", hb.Therapists.RegisterTherapistHandler)
		protected.PUT("/id/:id", hb.Therapists.UpdateTherapistHandler)
		protected.DELETE("/id/:id", hb.Therapists.DeleteTherapistHandler)
		protected.POST("/id/:id/follow", hb.Therapists.FollowHandler)
		protected.DELETE("/id/:id/follow", hb.Therapists.UnfollowHandler)
		protected.GET("/followed", hb.Therapists.ListFollowedHandler)
		protected.POST("/verification", hb.Therapists.SubmitVerificationHandler)
	}
}

// RegisterStoreRoutes registers store discovery and the store admin area.
func RegisterStoreRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stores")
	{
		api.GET("", hb.Stores.ListStoresHandler)
		api.GET("/id/:id", hb.Stores.GetStoreHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.POST("", hb.Stores.RegisterStoreHandler)
		protected.GET("/me", hb.Stores.GetMyStoreHandler)
		protected.PUT("/id/:id", hb.Stores.UpdateStoreHandler)
		protected.DELETE("/id/:id", hb.Stores.DeleteStoreHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle. Banned accounts are
// re-checked on every call because bookings commit a therapist's time.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.Use(middleware.BanCheckMiddleware(hb.UserRepo))
		api.POST("", hb.Bookings.CreateBookingHandler)
		api.GET("", hb.Bookings.ListMyBookingsHandler)
		api.GET("/id/:id", hb.Bookings.GetBookingHandler)
		api.PUT("/id/:id/confirm", hb.Bookings.ConfirmBookingHandler)
		api.PUT("/id/:id/cancel", hb.Bookings.CancelBookingHandler)
		api.PUT("/id/:id/complete", hb.Bookings.CompleteBookingHandler)

		calendar := api.Group("/calendar")
		calendar.Use(middleware.RequireRole(hb.Resolver, role.Therapist))
		calendar.GET("", hb.Bookings.ListCalendarHandler)
	}
}

// RegisterChatRoutes registers messaging endpoints, including the SSE stream.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/messages", hb.Chat.SendMessageHandler)
		api.GET("/conversations", hb.Chat.ConversationsHandler)
		api.GET("/unread", hb.Chat.UnreadCountHandler)
		api.GET("/with/:counterpartId", hb.Chat.HistoryHandler)
		api.PUT("/with/:counterpartId/read", hb.Chat.MarkReadHandler)
		api.GET("/with/:counterpartId/stream", hb.Chat.StreamHandler)
	}
}

// RegisterBlogRoutes registers content endpoints. Reads are public; authoring
// is limited to therapists and stores.
func RegisterBlogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/blog")
	{
		api.GET("/posts", hb.Blog.ListPostsHandler)
		api.GET("/posts/slug/:slug", hb.Blog.GetPostHandler)

		reader := api.Group("")
		reader.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		reader.POST("/posts/id/:id/like", hb.Blog.LikePostHandler)
		reader.DELETE("/posts/id/:id/like", hb.Blog.UnlikePostHandler)
		reader.GET("/posts/id/:id/like", hb.Blog.HasLikedHandler)

		author := api.Group("")
		author.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		author.Use(middleware.RequireRole(hb.Resolver, role.Therapist, role.Store))
		author.POST("/posts", hb.Blog.CreatePostHandler)
		author.PUT("/posts/id/:id", hb.Blog.UpdatePostHandler)
		author.DELETE("/posts/id/:id", hb.Blog.DeletePostHandler)
	}
}

// RegisterUploadRoutes registers general media uploads.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/uploads")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.Uploads.UploadFileHandler)
		api.DELETE("", hb.Uploads.DeleteFileHandler)
	}
}

// RegisterAdminRoutes registers operator endpoints behind the admin key.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AdminKeyMiddleware())
		api.PUT("/users/:id/ban", hb.Users.BanUserHandler)
		api.PUT("/users/:id/unban", hb.Users.UnbanUserHandler)
		api.PUT("/therapists/:id/verification", hb.Therapists.ReviewVerificationHandler)
		api.GET("/therapists/:id/verification/document", hb.Therapists.VerificationDocumentHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterTherapistRoutes(r, hb)
	RegisterStoreRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterBlogRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
