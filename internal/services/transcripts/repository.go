package transcripts

import (
	"context"
	"fmt"

	"github.com/prophetlog/prediction-api/internal/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new transcript chunk repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ReplaceChunks swaps a video's transcript wholesale. Delete, insert, and
// status update run in one transaction so a failed re-fetch never leaves a
// video half-replaced.
func (r *repository) ReplaceChunks(ctx context.Context, videoID uint, chunks []models.TranscriptChunk, status models.VideoStatus) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", videoID).Delete(&models.TranscriptChunk{}).Error; err != nil {
			return fmt.Errorf("deleting old chunks: %w", err)
		}

		if len(chunks) > 0 {
			for i := range chunks {
				chunks[i].VideoID = videoID
			}
			if err := tx.Create(&chunks).Error; err != nil {
				return fmt.Errorf("inserting chunks: %w", err)
			}
		}

		result := tx.Model(&models.Video{}).
			Where("id = ?", videoID).
			Update("status", status)
		if result.Error != nil {
			return fmt.Errorf("updating video status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("video %d not found", videoID)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("replacing chunks for video %d: %w", videoID, err)
	}
	return nil
}

// GetChunks returns a video's chunks in transcript time order
func (r *repository) GetChunks(ctx context.Context, videoID uint) ([]models.TranscriptChunk, error) {
	var chunks []models.TranscriptChunk
	if err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("start_time ASC").
		Find(&chunks).Error; err != nil {
		return nil, fmt.Errorf("getting chunks: %w", err)
	}
	return chunks, nil
}
