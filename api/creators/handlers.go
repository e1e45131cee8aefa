package creators

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/api/types"
	"github.com/prophetlog/prediction-api/internal/models"
	"github.com/prophetlog/prediction-api/internal/services/creators"
)

// CreateCreator registers a new channel for tracking
func CreateCreator(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateCreatorRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if existing, err := deps.Creators.GetCreatorByChannelID(c.Request.Context(), req.ChannelID); err == nil && existing != nil {
			types.SendConflict(c, "Creator already registered for channel "+req.ChannelID)
			return
		}

		creator := &models.Creator{
			ChannelID:   req.ChannelID,
			Name:        req.Name,
			Description: req.Description,
		}

		if err := deps.Creators.CreateCreator(c.Request.Context(), creator); err != nil {
			deps.Logger.Error("failed to create creator",
				zap.String("channel_id", req.ChannelID),
				zap.Error(err))
			types.SendInternalError(c, "Failed to create creator")
			return
		}

		c.JSON(http.StatusCreated, types.SingleCreatorResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Creator registered successfully",
			},
			Creator: creator,
		})
	}
}

// ListCreators returns every tracked creator
func ListCreators(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := deps.Creators.ListCreators(c.Request.Context())
		if err != nil {
			deps.Logger.Error("failed to list creators", zap.Error(err))
			types.SendInternalError(c, "Failed to list creators")
			return
		}

		c.JSON(http.StatusOK, types.CreatorsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Creators retrieved successfully",
			},
			Creators: list,
			Count:    len(list),
		})
	}
}

// GetCreator returns one creator by ID
func GetCreator(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		creatorID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		creator, err := deps.Creators.GetCreatorByID(c.Request.Context(), creatorID)
		if err != nil {
			if errors.Is(err, creators.ErrCreatorNotFound) {
				types.SendNotFound(c, "Creator not found")
				return
			}
			deps.Logger.Error("failed to get creator",
				zap.Uint("creator_id", creatorID),
				zap.Error(err))
			types.SendInternalError(c, "Failed to get creator")
			return
		}

		c.JSON(http.StatusOK, types.SingleCreatorResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Creator retrieved successfully",
			},
			Creator: creator,
		})
	}
}

// DeleteCreator removes a creator. Videos, chunks, and predictions cascade.
func DeleteCreator(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		creatorID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.Creators.DeleteCreator(c.Request.Context(), creatorID); err != nil {
			if errors.Is(err, creators.ErrCreatorNotFound) {
				types.SendNotFound(c, "Creator not found")
				return
			}
			deps.Logger.Error("failed to delete creator",
				zap.Uint("creator_id", creatorID),
				zap.Error(err))
			types.SendInternalError(c, "Failed to delete creator")
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Creator deleted successfully",
		})
	}
}
