package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rideshare/internal/handler"
	"rideshare/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler     *handler.AuthHandler
	RideHandler     *handler.RideHandler
	DriverHandler   *handler.DriverHandler
	PaymentHandler  *handler.PaymentHandler
	LocationHandler *handler.LocationHandler
	TokenVerifier   middleware.TokenVerifier
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Public auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Everything below requires a session. Idempotency runs after
		// auth so cached responses are scoped per user.
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(deps.TokenVerifier))
		authed.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

		profile := authed.Group("/auth")
		{
			profile.GET("/profile", deps.AuthHandler.GetProfile)
			profile.PUT("/profile", deps.AuthHandler.UpdateProfile)
			profile.PUT("/password", deps.AuthHandler.ChangePassword)
		}

		// Ride routes.
		rides := authed.Group("/rides")
		{
			rides.POST("", deps.RideHandler.RequestRide)
			rides.GET("/history", deps.RideHandler.GetRideHistory)
			rides.GET("/:id", deps.RideHandler.GetRideDetails)
			rides.GET("/:id/status", deps.RideHandler.GetRideStatus)
			rides.PUT("/:id/status", deps.RideHandler.UpdateStatus)
			rides.POST("/:id/driver", deps.RideHandler.AssignDriver)
			rides.POST("/:id/cancel", deps.RideHandler.CancelRide)
			rides.POST("/:id/rating", deps.RideHandler.SubmitRating)
		}

		// Driver routes.
		drivers := authed.Group("/drivers")
		{
			drivers.GET("", deps.DriverHandler.ListDrivers)
			drivers.GET("/:id", deps.DriverHandler.GetDriver)
			drivers.PUT("/:id/location", deps.DriverHandler.UpdateLocation)
			drivers.POST("/:id/offline", deps.DriverHandler.SetOffline)
		}

		// Payment routes.
		payments := authed.Group("/payments")
		{
			payments.POST("", deps.PaymentHandler.ProcessPayment)
			payments.GET("", deps.PaymentHandler.GetPaymentHistory)
			payments.GET("/methods", deps.PaymentHandler.ListPaymentMethods)
			payments.POST("/methods", deps.PaymentHandler.AddPaymentMethod)
			payments.PUT("/methods/:id/default", deps.PaymentHandler.SetDefaultPaymentMethod)
			payments.DELETE("/methods/:id", deps.PaymentHandler.RemovePaymentMethod)
			payments.GET("/:id", deps.PaymentHandler.GetPayment)
		}

		// Location routes.
		location := authed.Group("/location")
		{
			location.POST("/estimate", deps.LocationHandler.EstimateTrip)
			location.POST("/directions", deps.LocationHandler.GetDirections)
			location.GET("/geocode", deps.LocationHandler.ReverseGeocode)
		}
	}

	return router
}
