package creators

import (
	"github.com/gin-gonic/gin"
	"github.com/prophetlog/prediction-api/api/types"
)

// RegisterRoutes registers creator routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/v1/creators - Register a channel for tracking
	router.POST("", CreateCreator(deps))

	// GET /api/v1/creators - List all tracked creators
	router.GET("", ListCreators(deps))

	// GET /api/v1/creators/:id - Get one creator
	router.GET("/:id", GetCreator(deps))

	// DELETE /api/v1/creators/:id - Remove a creator and everything under it
	router.DELETE("/:id", DeleteCreator(deps))
}
