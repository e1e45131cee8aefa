package pipeline

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/api/types"
	"github.com/prophetlog/prediction-api/internal/models"
	"github.com/prophetlog/prediction-api/internal/services/creators"
	"github.com/prophetlog/prediction-api/internal/services/pipeline"
)

// TriggerIngest runs the ingestion pipeline for a creator and blocks until
// it finishes. A concurrent run for the same channel is refused with 409.
func TriggerIngest(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		creator, ok := resolveCreator(c, deps)
		if !ok {
			return
		}

		var req types.IngestRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			types.SendBadRequest(c, "Invalid request body")
			return
		}

		opts := pipeline.Options{
			MaxVideos:                req.MaxVideos,
			SkipVideoFetch:           req.SkipVideoFetch,
			SkipTranscriptFetch:      req.SkipTranscriptFetch,
			SkipPredictionExtraction: req.SkipPredictionExtraction,
		}

		result, err := deps.Orchestrator.Run(c.Request.Context(), creator.ChannelID, opts)
		if err != nil {
			switch {
			case errors.Is(err, pipeline.ErrAlreadyRunning):
				types.SendConflict(c, "An ingestion run is already active for this creator")
			case errors.Is(err, pipeline.ErrCreatorNotFound):
				types.SendNotFound(c, "Creator not found")
			default:
				deps.Logger.Error("pipeline run failed",
					zap.String("channel_id", creator.ChannelID),
					zap.Error(err))
				types.SendInternalError(c, "Pipeline run failed")
			}
			return
		}

		c.JSON(http.StatusOK, types.IngestResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Ingestion run completed",
			},
			Run: result,
		})
	}
}

// GetIngestStatus reports whether a run is currently active for a creator
func GetIngestStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		creator, ok := resolveCreator(c, deps)
		if !ok {
			return
		}

		running := deps.Orchestrator.IsRunning(creator.ChannelID)
		message := "No ingestion run is active"
		if running {
			message = "An ingestion run is active"
		}

		c.JSON(http.StatusOK, types.IngestStatusResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: message,
			},
			ChannelID: creator.ChannelID,
			Running:   running,
		})
	}
}

// resolveCreator loads the creator named by the :id param, writing the error
// response itself when the lookup fails
func resolveCreator(c *gin.Context, deps *types.Dependencies) (*models.Creator, bool) {
	creatorID, ok := types.ParseUintParam(c, "id")
	if !ok {
		return nil, false
	}

	creator, err := deps.Creators.GetCreatorByID(c.Request.Context(), creatorID)
	if err != nil {
		if errors.Is(err, creators.ErrCreatorNotFound) {
			types.SendNotFound(c, "Creator not found")
			return nil, false
		}
		deps.Logger.Error("failed to resolve creator",
			zap.Uint("creator_id", creatorID),
			zap.Error(err))
		types.SendInternalError(c, "Failed to resolve creator")
		return nil, false
	}

	return creator, true
}
