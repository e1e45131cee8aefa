package pipeline

import (
	"github.com/gin-gonic/gin"
	"github.com/prophetlog/prediction-api/api/types"
)

// RegisterRoutes registers ingestion routes on the creator route group.
// The trigger endpoint carries its own tighter rate limit.
func RegisterRoutes(creatorGroup *gin.RouterGroup, deps *types.Dependencies, ingestMiddleware gin.HandlerFunc) {
	// POST /api/v1/creators/:id/ingest - Run the pipeline for a creator
	creatorGroup.POST("/:id/ingest", ingestMiddleware, TriggerIngest(deps))

	// GET /api/v1/creators/:id/ingest/status - Report whether a run is active
	creatorGroup.GET("/:id/ingest/status", GetIngestStatus(deps))
}
