package routes

import (
	"time"

	"bookingops/handlers"
	"bookingops/middleware"
	"bookingops/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers intake and console booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		// Public intake, rate limited per client IP.
		api.POST("", middleware.RateLimitMiddleware(hb.MaxRequestsPerMin), hb.CreateBookingHandler)

		// Console routes (Require an admin or operations role token)
		console := api.Group("")
		console.Use(middleware.RoleAuthMiddleware(hb.RoleTokenSecret, models.AuditRoleAdmin, models.AuditRoleOperations))
		console.GET("", hb.ListBookingsHandler)
		console.GET("/:id", hb.GetBookingHandler)
		console.PATCH("/:id", hb.UpdateBookingHandler)
	}
}

// RegisterConsoleRoutes registers the audit feed and SLA summary.
func RegisterConsoleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.RoleAuthMiddleware(hb.RoleTokenSecret, models.AuditRoleAdmin, models.AuditRoleOperations))
		api.GET("/audits", hb.RecentAuditsHandler)
		api.GET("/sla", hb.SLAHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterConsoleRoutes(r, hb)
}
