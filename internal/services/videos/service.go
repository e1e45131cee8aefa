package videos

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/internal/models"
)

// Service implements VideoService
type Service struct {
	source     Source
	repository VideoRepository
	logger     *zap.Logger
}

// NewService creates a new video discovery service
func NewService(source Source, repository VideoRepository, logger *zap.Logger) *Service {
	return &Service{
		source:     source,
		repository: repository,
		logger:     logger,
	}
}

// DiscoverAndStore lists a channel's recent videos and inserts the ones not
// seen before. Idempotent: already-known videos are counted as skipped, and
// per-video insert failures are collected without aborting the pass.
func (s *Service) DiscoverAndStore(ctx context.Context, creator *models.Creator, maxResults int64) (*DiscoveryResult, error) {
	if s.source == nil {
		return nil, fmt.Errorf("video source not configured")
	}

	found, err := s.source.ListRecent(ctx, creator.ChannelID, maxResults)
	if err != nil {
		return nil, fmt.Errorf("listing videos for channel %s: %w", creator.ChannelID, err)
	}

	result := &DiscoveryResult{Found: found}

	for _, meta := range found {
		_, err := s.repository.GetVideoByYouTubeID(ctx, meta.YouTubeID)
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.Is(err, ErrVideoNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("checking video %s: %v", meta.YouTubeID, err))
			continue
		}

		video := &models.Video{
			CreatorID:   creator.ID,
			YouTubeID:   meta.YouTubeID,
			Title:       meta.Title,
			Description: meta.Description,
			URL:         fmt.Sprintf("https://www.youtube.com/watch?v=%s", meta.YouTubeID),
			PublishedAt: meta.PublishedAt,
			Status:      models.VideoStatusDiscovered,
		}
		if err := s.repository.CreateVideo(ctx, video); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("storing video %s: %v", meta.YouTubeID, err))
			continue
		}
		result.Inserted++
	}

	s.logger.Info("video discovery finished",
		zap.String("channel_id", creator.ChannelID),
		zap.Int("found", len(result.Found)),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}
