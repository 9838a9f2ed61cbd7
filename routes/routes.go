package routes

import (
	"time"

	"quickmechanic/handlers"
	"quickmechanic/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterCatalogueRoutes registers the public catalogue endpoints.
func RegisterCatalogueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalogue")
	{
		api.GET("/services", hb.GetServices)
		api.GET("/timeslots", hb.GetTimeSlots)
	}
}

// RegisterVehicleRoutes registers plate lookups.
func RegisterVehicleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/vehicles")
	{
		api.GET("/plate/:plate", hb.LookupPlate)
	}
}

// RegisterPaymentRoutes registers payment status and order tracking.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/payment-status/:paymentSessionID", middleware.OptionalAuth(), hb.PaymentStatus)
	r.GET("/api/orders/:orderID/tracking", middleware.RequireAuth(), hb.TrackOrder)
}

// RegisterDashboardRoutes registers the dashboard variant lookup.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/dashboard", middleware.RequireAuth(), hb.Dashboard)
}

func corsConfig(frontendURL string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if frontendURL == "" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = []string{frontendURL}
	cfg.AllowCredentials = true
	return cfg
}

// RegisterRoutes installs the global middleware and every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(corsConfig(hb.FrontendURL)))
	if hb.MaxRequestsPerMin > 0 {
		r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
	}

	RegisterHealthRoute(r, hb)
	RegisterCatalogueRoutes(r, hb)
	RegisterVehicleRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
}
