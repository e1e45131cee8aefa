package extraction

import (
	"context"

	"github.com/prophetlog/prediction-api/internal/models"
)

// PredictionStore persists accepted predictions
type PredictionStore interface {
	CreatePrediction(ctx context.Context, prediction *models.Prediction) error
}

// PredictionRepository is the full data access interface for predictions
type PredictionRepository interface {
	PredictionStore

	ListByVideo(ctx context.Context, videoID uint) ([]models.Prediction, error)
	ListByCreator(ctx context.Context, creatorID uint, page, limit int) ([]models.Prediction, int64, error)
}

// VideoMarker advances a video's extraction progress. Implemented by the
// videos repository; narrowed here so the extractor cannot touch anything
// else on a video.
type VideoMarker interface {
	MarkExtracted(ctx context.Context, videoID uint, errorCount int) error
}
