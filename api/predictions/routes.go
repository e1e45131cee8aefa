package predictions

import (
	"github.com/gin-gonic/gin"
	"github.com/prophetlog/prediction-api/api/types"
)

// RegisterRoutes registers prediction lookup routes on the creator and video
// route groups
func RegisterRoutes(creatorGroup, videoGroup *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/creators/:id/predictions - Paginated predictions across a creator's videos
	creatorGroup.GET("/:id/predictions", GetPredictionsForCreator(deps))

	// GET /api/v1/videos/:id/predictions - Predictions for one video in timestamp order
	videoGroup.GET("/:id/predictions", GetPredictionsForVideo(deps))
}
