package transcripts

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/internal/models"
	"github.com/prophetlog/prediction-api/pkg/captions"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Service implements TranscriptService
type Service struct {
	source     Source
	repository Repository
	logger     *zap.Logger
}

// NewService creates a new transcript service
func NewService(source Source, repository Repository, logger *zap.Logger) *Service {
	return &Service{
		source:     source,
		repository: repository,
		logger:     logger,
	}
}

// FetchAndStore fetches a video's transcript and replaces its stored chunks.
// A permanent caption failure still advances the video to unavailable so it
// is never refetched; the error is returned either way so callers can record
// it. Transient failures leave the video untouched for a later retry.
func (s *Service) FetchAndStore(ctx context.Context, video *models.Video) error {
	entries, err := s.source.Fetch(ctx, video.YouTubeID)
	if err != nil {
		if captions.IsPermanent(err) {
			if markErr := s.repository.ReplaceChunks(ctx, video.ID, nil, models.VideoStatusUnavailable); markErr != nil {
				s.logger.Error("failed to mark video unavailable",
					zap.Uint("video_id", video.ID),
					zap.Error(markErr))
			}
			s.logger.Info("transcript permanently unavailable",
				zap.String("youtube_id", video.YouTubeID))
		}
		return fmt.Errorf("fetching transcript for %s: %w", video.YouTubeID, err)
	}

	chunks := normalizeEntries(video.ID, entries)
	if err := s.repository.ReplaceChunks(ctx, video.ID, chunks, models.VideoStatusTranscribed); err != nil {
		return err
	}

	s.logger.Info("transcript stored",
		zap.String("youtube_id", video.YouTubeID),
		zap.Int("chunks", len(chunks)))

	return nil
}

// GetChunks returns a video's stored chunks in transcript time order
func (s *Service) GetChunks(ctx context.Context, videoID uint) ([]models.TranscriptChunk, error) {
	return s.repository.GetChunks(ctx, videoID)
}

// normalizeEntries converts raw caption entries into chunk rows, one per
// entry: HTML entities unescaped and whitespace runs collapsed
func normalizeEntries(videoID uint, entries []captions.Entry) []models.TranscriptChunk {
	chunks := make([]models.TranscriptChunk, 0, len(entries))
	for _, entry := range entries {
		text := html.UnescapeString(entry.Text)
		text = strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
		chunks = append(chunks, models.TranscriptChunk{
			VideoID:   videoID,
			Text:      text,
			StartTime: entry.Start,
		})
	}
	return chunks
}
