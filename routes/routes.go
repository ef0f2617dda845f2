package routes

import (
	"net/http"
	"time"

	"fixly/handlers"
	"fixly/middleware"
	"fixly/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.LoginHandler)

		api.Use(middleware.AuthRequired())
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.AuthRequired())
	{
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.POST("", middleware.RequireRole(models.RoleCustomer), hb.CreateBookingHandler)
		api.POST("/:id/cancel", hb.CancelBookingHandler)
		api.POST("/:id/accept", middleware.RequireRole(models.RoleProvider), hb.AcceptBookingHandler)
		api.POST("/:id/complete", middleware.RequireRole(models.RoleProvider), hb.CompleteBookingHandler)
		api.GET("/:id/reviewable", hb.ReviewableHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	api.Use(middleware.AuthRequired())
	{
		api.POST("", middleware.RequireRole(models.RoleCustomer), hb.CreateReviewHandler)
		api.POST("/:id/reply", middleware.RequireRole(models.RoleProvider), hb.ReplyToReviewHandler)
	}
}

// RegisterProviderRoutes registers provider profile endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public profile and review listing.
		api.GET("/:id", hb.GetProviderHandler)
		api.GET("/:id/reviews", hb.ProviderReviewsHandler)

		// Endpoints that modify the caller's own profile.
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.RequireRole(models.RoleProvider))
		protected.GET("/dashboard", hb.ProviderDashboardHandler)
		protected.PATCH("/profile", hb.UpdateProviderProfileHandler)
		protected.PUT("/availability", hb.UpdateAvailabilityHandler)
		protected.PUT("/services", hb.UpdateServicesHandler)
	}
}

// RegisterCatalogRoutes registers the service category endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/categories", hb.ListCategoriesHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Fixly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
}
