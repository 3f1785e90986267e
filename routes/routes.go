package routes

import (
	"net/http"
	"time"

	"quadras/handlers"
	"quadras/middleware"
	"quadras/models"
	"quadras/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the engine.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	registerHealthRoute(r)
	registerAuthRoutes(r, hb)
	registerCatalogueRoutes(r, hb)
	registerAccountRoutes(r, hb)
	registerBookingRoutes(r, hb)
	registerPaymentRoutes(r, hb)
	registerManagementRoutes(r, hb)
	registerAdminRoutes(r, hb)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

func registerAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)
		api.POST("/verify-email", hb.Auth.VerifyEmail)
		api.POST("/verify-email/:token", hb.Auth.VerifyEmail)
		api.POST("/forgot-password", hb.Auth.ForgotPassword)
		api.POST("/reset-password", hb.Auth.ResetPassword)
		api.POST("/reset-password/:token", hb.Auth.ResetPassword)
	}
}

// registerCatalogueRoutes covers the public browsing surface: arenas, courts,
// availability, reviews and extra-service listings.
func registerCatalogueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/arenas", hb.Arenas.List)
		api.GET("/arenas/:id", hb.Arenas.Get)
		api.GET("/arenas/:id/courts", hb.Courts.ListByArena)
		api.GET("/arenas/:id/reviews", hb.Arenas.ListReviews)
		api.GET("/arenas/:id/extra-services", hb.Courts.ListExtraServices)
		api.GET("/courts", hb.Courts.List)
		api.GET("/courts/:id", hb.Courts.Get)
		api.GET("/courts/:id/availability", hb.Courts.Availability)
	}
}

func registerAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/me", hb.Users.Me)
		api.PUT("/me", hb.Users.UpdateMe)
	}
}

func registerBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("", hb.Bookings.Create)
		api.GET("", hb.Bookings.ListMine)
		api.GET("/user/me", hb.Bookings.ListMine)
		api.GET("/:id", hb.Bookings.Get)
		api.PUT("/:id/status", hb.Bookings.UpdateStatus)
		api.POST("/:id/cancel", hb.Bookings.Cancel)
		api.GET("/:id/payment-status", hb.Bookings.PaymentStatus)
	}
}

func registerPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// The gateway calls the webhook unauthenticated.
	r.POST("/api/payments/webhook", hb.Payments.Webhook)

	api := r.Group("/api/payments")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("", hb.Payments.Create)
		api.GET("/:id", hb.Payments.Get)
	}
}

// registerManagementRoutes covers the arena-owner surface: venue and court
// management, extra services, reviews, uploads and the arena dashboards.
func registerManagementRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("/arenas", hb.Arenas.Create)
		api.GET("/arenas/mine", hb.Arenas.ListMine)
		api.PUT("/arenas/:id", hb.Arenas.Update)
		api.DELETE("/arenas/:id", hb.Arenas.Delete)
		api.GET("/arenas/:id/bookings", hb.Bookings.ListForArena)
		api.GET("/arenas/:id/payments", hb.Arenas.ListPayments)

		api.POST("/courts", hb.Courts.Create)
		api.PUT("/courts/:id", hb.Courts.Update)
		api.DELETE("/courts/:id", hb.Courts.Delete)

		api.POST("/extra-services", hb.Courts.CreateExtraService)
		api.PUT("/extra-services/:id", hb.Courts.UpdateExtraService)
		api.DELETE("/extra-services/:id", hb.Courts.DeleteExtraService)

		api.POST("/reviews", hb.Arenas.CreateReview)
	}

	uploads := r.Group("/api/uploads")
	uploads.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	uploads.Use(middleware.RequireRoles(models.RoleArenaOwner, models.RoleAdmin))
	{
		uploads.POST("/:folder", hb.Storage.Upload)
		uploads.DELETE("/:folder/:id", hb.Storage.Delete)
	}
}

func registerAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	api.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		api.GET("/users", hb.Users.List)
		api.GET("/users/:id", hb.Users.Get)
		api.PUT("/users/:id", hb.Users.Update)
		api.DELETE("/users/:id", hb.Users.Delete)

		api.GET("/arenas", hb.Arenas.AdminList)
		api.POST("/arenas", hb.Arenas.Create)
		api.GET("/arenas/:id", hb.Arenas.Get)
		api.PUT("/arenas/:id", hb.Arenas.Update)
		api.DELETE("/arenas/:id", hb.Arenas.Delete)

		api.GET("/settings", hb.Admin.GetSettings)
		api.PUT("/settings", hb.Admin.UpdateSettings)

		api.GET("/bookings", hb.Admin.ListBookings)
		api.PUT("/bookings/:id/status", hb.Bookings.UpdateStatus)
	}
}
