package predictions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/api/types"
	"github.com/prophetlog/prediction-api/internal/services/creators"
	"github.com/prophetlog/prediction-api/internal/services/videos"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// GetPredictionsForCreator returns predictions across all of a creator's
// videos, newest first, paginated via ?page and ?limit
func GetPredictionsForCreator(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		creatorID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		page := types.ParseIntQuery(c, "page", 1)
		if page < 1 {
			page = 1
		}
		limit := types.ParseIntQuery(c, "limit", defaultPageSize)
		if limit < 1 || limit > maxPageSize {
			limit = defaultPageSize
		}

		if _, err := deps.Creators.GetCreatorByID(c.Request.Context(), creatorID); err != nil {
			if errors.Is(err, creators.ErrCreatorNotFound) {
				types.SendNotFound(c, "Creator not found")
				return
			}
			deps.Logger.Error("failed to resolve creator",
				zap.Uint("creator_id", creatorID),
				zap.Error(err))
			types.SendInternalError(c, "Failed to resolve creator")
			return
		}

		preds, total, err := deps.Predictions.ListByCreator(c.Request.Context(), creatorID, page, limit)
		if err != nil {
			deps.Logger.Error("failed to list predictions for creator",
				zap.Uint("creator_id", creatorID),
				zap.Error(err))
			types.SendInternalError(c, "Failed to list predictions")
			return
		}

		c.JSON(http.StatusOK, types.PredictionsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Predictions retrieved successfully",
			},
			Predictions: preds,
			Count:       len(preds),
			Total:       total,
			Page:        page,
			Limit:       limit,
		})
	}
}

// GetPredictionsForVideo returns every prediction for one video ordered by
// transcript timestamp
func GetPredictionsForVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if _, err := deps.Videos.GetVideoByID(c.Request.Context(), videoID); err != nil {
			if errors.Is(err, videos.ErrVideoNotFound) {
				types.SendNotFound(c, "Video not found")
				return
			}
			deps.Logger.Error("failed to resolve video",
				zap.Uint("video_id", videoID),
				zap.Error(err))
			types.SendInternalError(c, "Failed to resolve video")
			return
		}

		preds, err := deps.Predictions.ListByVideo(c.Request.Context(), videoID)
		if err != nil {
			deps.Logger.Error("failed to list predictions for video",
				zap.Uint("video_id", videoID),
				zap.Error(err))
			types.SendInternalError(c, "Failed to list predictions")
			return
		}

		c.JSON(http.StatusOK, types.PredictionsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Predictions retrieved successfully",
			},
			Predictions: preds,
			Count:       len(preds),
			Total:       int64(len(preds)),
		})
	}
}
