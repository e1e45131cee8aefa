package extraction

import (
	"context"
	"fmt"

	"github.com/prophetlog/prediction-api/internal/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new prediction repository
func NewRepository(db *gorm.DB) PredictionRepository {
	return &repository{db: db}
}

// CreatePrediction inserts one prediction. Predictions are committed
// individually so one failed insert never rolls back its siblings.
func (r *repository) CreatePrediction(ctx context.Context, prediction *models.Prediction) error {
	if err := r.db.WithContext(ctx).Create(prediction).Error; err != nil {
		return fmt.Errorf("creating prediction: %w", err)
	}
	return nil
}

// ListByVideo returns a video's predictions in transcript time order
func (r *repository) ListByVideo(ctx context.Context, videoID uint) ([]models.Prediction, error) {
	var predictions []models.Prediction
	if err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("timestamp ASC").
		Find(&predictions).Error; err != nil {
		return nil, fmt.Errorf("listing predictions by video: %w", err)
	}
	return predictions, nil
}

// ListByCreator returns a paginated list of a creator's predictions, newest
// video first
func (r *repository) ListByCreator(ctx context.Context, creatorID uint, page, limit int) ([]models.Prediction, int64, error) {
	var predictions []models.Prediction
	var total int64

	base := r.db.WithContext(ctx).
		Model(&models.Prediction{}).
		Joins("JOIN videos ON videos.id = predictions.video_id").
		Where("videos.creator_id = ?", creatorID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting predictions by creator: %w", err)
	}

	offset := (page - 1) * limit
	if err := base.
		Order("predictions.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&predictions).Error; err != nil {
		return nil, 0, fmt.Errorf("listing predictions by creator: %w", err)
	}

	return predictions, total, nil
}
