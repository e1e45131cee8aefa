package types

import (
	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/internal/database"
	"github.com/prophetlog/prediction-api/internal/services/creators"
	"github.com/prophetlog/prediction-api/internal/services/extraction"
	"github.com/prophetlog/prediction-api/internal/services/pipeline"
	"github.com/prophetlog/prediction-api/internal/services/videos"
)

// Dependencies carries everything handlers need, wired once at startup
type Dependencies struct {
	DB           *database.DB
	Creators     creators.CreatorRepository
	Videos       videos.VideoRepository
	Predictions  extraction.PredictionRepository
	Orchestrator *pipeline.Orchestrator
	Logger       *zap.Logger
}
