package videos

import (
	"context"
	"time"

	"github.com/prophetlog/prediction-api/internal/models"
)

// Metadata describes one discovered video before it is persisted
type Metadata struct {
	YouTubeID   string    `json:"youtube_id"`
	ChannelID   string    `json:"channel_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"published_at"`
}

// Source is the video discovery collaborator
type Source interface {
	ListRecent(ctx context.Context, channelID string, maxResults int64) ([]Metadata, error)
}

// VideoRepository defines the data access interface for videos
type VideoRepository interface {
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideoByID(ctx context.Context, id uint) (*models.Video, error)
	GetVideoByYouTubeID(ctx context.Context, youtubeID string) (*models.Video, error)
	ListByCreatorAndStatus(ctx context.Context, creatorID uint, status models.VideoStatus, limit int) ([]models.Video, error)
	UpdateStatus(ctx context.Context, videoID uint, status models.VideoStatus) error
	MarkExtracted(ctx context.Context, videoID uint, errorCount int) error
}

// DiscoveryResult reports one discovery pass over a channel
type DiscoveryResult struct {
	Found    []Metadata `json:"found"`
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Errors   []string   `json:"errors,omitempty"`
}

// VideoService defines the business logic interface for video discovery
type VideoService interface {
	DiscoverAndStore(ctx context.Context, creator *models.Creator, maxResults int64) (*DiscoveryResult, error)
}
