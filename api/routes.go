package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/prophetlog/prediction-api/api/creators"
	"github.com/prophetlog/prediction-api/api/health"
	"github.com/prophetlog/prediction-api/api/pipeline"
	"github.com/prophetlog/prediction-api/api/predictions"
	"github.com/prophetlog/prediction-api/api/types"
	"github.com/prophetlog/prediction-api/api/version"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		return fmt.Errorf("dependencies are nil")
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Creator routes carry general rate limiting (10 req/s, burst of 20)
	creatorGroup := v1.Group("/creators")
	creatorGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	creators.RegisterRoutes(creatorGroup, deps)

	// Video routes share the general limit
	videoGroup := v1.Group("/videos")
	videoGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))

	// Prediction lookups hang off both creators and videos
	predictions.RegisterRoutes(creatorGroup, videoGroup, deps)

	// Ingestion runs are expensive, so the trigger endpoint gets its own much
	// tighter limit (1 req/s, burst of 2) on top of the group limit
	ingestMiddleware := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 1, 2)
	pipeline.RegisterRoutes(creatorGroup, deps, ingestMiddleware)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
