package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/lhycamae2002/ManageRide/internal/domain"
	"github.com/lhycamae2002/ManageRide/internal/handler"
	"github.com/lhycamae2002/ManageRide/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler       *handler.RideHandler
	JWTSecret         string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered. The
// ride routes sit behind a single auth + role gate so every current and
// future admin endpoint is checked the same way.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.RateLimit(deps.RedisClient, deps.RateLimitRequests, deps.RateLimitWindow))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Ride routes: admin only.
		rides := v1.Group("/rides",
			middleware.Auth(deps.JWTSecret),
			middleware.RequireRole(domain.RoleAdmin),
		)
		{
			rides.GET("", deps.RideHandler.List)
			rides.GET("/:id", deps.RideHandler.Get)
		}
	}

	return router
}
