package videos

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	apperrors "github.com/prophetlog/prediction-api/pkg/errors"
)

// YouTubeClient implements Source using the YouTube Data API with API-key auth
type YouTubeClient struct {
	service *youtube.Service
	logger  *zap.Logger
}

// NewYouTubeClient creates a new discovery client. With no API key the client
// comes up degraded: construction succeeds and every ListRecent call reports
// the missing credential, so only the discovery stage of a run fails.
func NewYouTubeClient(ctx context.Context, apiKey string, logger *zap.Logger) (*YouTubeClient, error) {
	if apiKey == "" {
		logger.Warn("youtube api key not configured, video discovery disabled")
		return &YouTubeClient{logger: logger}, nil
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}

	return &YouTubeClient{service: service, logger: logger}, nil
}

// ListRecent returns a channel's most recent videos, newest first
func (c *YouTubeClient) ListRecent(ctx context.Context, channelID string, maxResults int64) ([]Metadata, error) {
	if c.service == nil {
		return nil, apperrors.New(apperrors.ErrCodeConfigRequired, "youtube api key not configured")
	}

	call := c.service.Search.List([]string{"id", "snippet"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(maxResults)

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, apperrors.ExternalServiceError("youtube", err).WithDetail("channel_id", channelID)
	}

	videos := make([]Metadata, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			c.logger.Warn("unparseable publish time",
				zap.String("video_id", item.Id.VideoId),
				zap.String("published_at", item.Snippet.PublishedAt))
		}

		videos = append(videos, Metadata{
			YouTubeID:   item.Id.VideoId,
			ChannelID:   channelID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			PublishedAt: publishedAt,
		})
	}

	c.logger.Debug("channel videos listed",
		zap.String("channel_id", channelID),
		zap.Int("count", len(videos)))

	return videos, nil
}
