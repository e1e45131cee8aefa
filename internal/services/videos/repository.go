package videos

import (
	"context"
	"errors"
	"fmt"

	"github.com/prophetlog/prediction-api/internal/models"
	"gorm.io/gorm"
)

// ErrVideoNotFound indicates no video matched the lookup
var ErrVideoNotFound = errors.New("video not found")

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new video repository
func NewRepository(db *gorm.DB) VideoRepository {
	return &repository{db: db}
}

// CreateVideo creates a new video
func (r *repository) CreateVideo(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return fmt.Errorf("creating video: %w", err)
	}
	return nil
}

// GetVideoByID retrieves a video by its database ID
func (r *repository) GetVideoByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("getting video: %w", err)
	}
	return &video, nil
}

// GetVideoByYouTubeID retrieves a video by its external identifier
func (r *repository) GetVideoByYouTubeID(ctx context.Context, youtubeID string) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).
		Where("you_tube_id = ?", youtubeID).
		First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("getting video by youtube id: %w", err)
	}
	return &video, nil
}

// ListByCreatorAndStatus returns a creator's videos in the given pipeline
// state, oldest first so ingestion proceeds chronologically
func (r *repository) ListByCreatorAndStatus(ctx context.Context, creatorID uint, status models.VideoStatus, limit int) ([]models.Video, error) {
	query := r.db.WithContext(ctx).
		Where("creator_id = ? AND status = ?", creatorID, status).
		Order("published_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var videos []models.Video
	if err := query.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("listing videos by status: %w", err)
	}
	return videos, nil
}

// UpdateStatus moves a video to a new pipeline state
func (r *repository) UpdateStatus(ctx context.Context, videoID uint, status models.VideoStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", videoID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("updating video status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

// MarkExtracted records that every block of the video has been offered to the
// extractor, along with how many errors the run produced
func (r *repository) MarkExtracted(ctx context.Context, videoID uint, errorCount int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", videoID).
		Updates(map[string]interface{}{
			"status":                 models.VideoStatusExtracted,
			"extraction_error_count": errorCount,
		})
	if result.Error != nil {
		return fmt.Errorf("marking video extracted: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}
