package transcripts

import (
	"context"

	"github.com/prophetlog/prediction-api/internal/models"
	"github.com/prophetlog/prediction-api/pkg/captions"
)

// Source is the transcript acquisition collaborator. Failures carry a
// structured captions.FailureKind so callers can tell permanent
// unavailability apart from retryable errors.
type Source interface {
	Fetch(ctx context.Context, youtubeID string) ([]captions.Entry, error)
}

// Repository defines the data access interface for transcript chunks
type Repository interface {
	// ReplaceChunks deletes a video's existing chunks, inserts the new ones,
	// and updates the video's status, all in one transaction
	ReplaceChunks(ctx context.Context, videoID uint, chunks []models.TranscriptChunk, status models.VideoStatus) error

	// GetChunks returns a video's chunks ordered by start time
	GetChunks(ctx context.Context, videoID uint) ([]models.TranscriptChunk, error)
}

// TranscriptService defines the business logic interface for transcript
// ingestion
type TranscriptService interface {
	FetchAndStore(ctx context.Context, video *models.Video) error
	GetChunks(ctx context.Context, videoID uint) ([]models.TranscriptChunk, error)
}
