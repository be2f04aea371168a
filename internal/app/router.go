package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"travelplan/internal/handler"
	"travelplan/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	TripHandler      *handler.TripHandler
	ItineraryHandler *handler.ItineraryHandler
	RedisClient      *redis.Client
	NewRelicApp      *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-User-ID", "Idempotency-Key")
	router.Use(cors.New(corsConfig))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes.
	api := router.Group("/api")
	{
		trips := api.Group("/trips")
		{
			trips.POST("/create", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.ListTrips)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.POST("/:id/generate-options", deps.TripHandler.GenerateOptions)
			trips.POST("/:id/select-option", deps.TripHandler.SelectOption)
			trips.POST("/:id/cancel", deps.TripHandler.CancelTrip)
			trips.DELETE("/:id", deps.TripHandler.DeleteTrip)
			trips.GET("/:id/itinerary", deps.ItineraryHandler.GetItinerary)
			trips.GET("/:id/itinerary/pdf", deps.ItineraryHandler.ExportItineraryPDF)
		}

		itineraries := api.Group("/itineraries")
		{
			itineraries.GET("/:id/activities", deps.ItineraryHandler.GetActivities)
		}
	}

	return router
}
