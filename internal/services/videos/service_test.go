package videos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/internal/models"
)

// MockSource is a mock implementation of Source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) ListRecent(ctx context.Context, channelID string, maxResults int64) ([]Metadata, error) {
	args := m.Called(ctx, channelID, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Metadata), args.Error(1)
}

// MockVideoRepository is a mock implementation of VideoRepository
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) CreateVideo(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) GetVideoByID(ctx context.Context, id uint) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoRepository) GetVideoByYouTubeID(ctx context.Context, youtubeID string) (*models.Video, error) {
	args := m.Called(ctx, youtubeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoRepository) ListByCreatorAndStatus(ctx context.Context, creatorID uint, status models.VideoStatus, limit int) ([]models.Video, error) {
	args := m.Called(ctx, creatorID, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockVideoRepository) UpdateStatus(ctx context.Context, videoID uint, status models.VideoStatus) error {
	args := m.Called(ctx, videoID, status)
	return args.Error(0)
}

func (m *MockVideoRepository) MarkExtracted(ctx context.Context, videoID uint, errorCount int) error {
	args := m.Called(ctx, videoID, errorCount)
	return args.Error(0)
}

func discoveryCreator() *models.Creator {
	creator := &models.Creator{ChannelID: "UC777", Name: "Trader"}
	creator.ID = 3
	return creator
}

func TestDiscoverAndStoreInsertsNewVideos(t *testing.T) {
	published := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	source := new(MockSource)
	source.On("ListRecent", mock.Anything, "UC777", int64(10)).Return([]Metadata{
		{YouTubeID: "new-1", Title: "Outlook", PublishedAt: published},
		{YouTubeID: "seen-1", Title: "Old news"},
	}, nil)

	repo := new(MockVideoRepository)
	repo.On("GetVideoByYouTubeID", mock.Anything, "new-1").Return(nil, ErrVideoNotFound)
	repo.On("GetVideoByYouTubeID", mock.Anything, "seen-1").Return(&models.Video{YouTubeID: "seen-1"}, nil)
	repo.On("CreateVideo", mock.Anything, mock.MatchedBy(func(v *models.Video) bool {
		return v.YouTubeID == "new-1" &&
			v.CreatorID == 3 &&
			v.Status == models.VideoStatusDiscovered &&
			v.URL == "https://www.youtube.com/watch?v=new-1" &&
			v.PublishedAt.Equal(published)
	})).Return(nil).Once()

	svc := NewService(source, repo, zap.NewNop())
	result, err := svc.DiscoverAndStore(context.Background(), discoveryCreator(), 10)
	require.NoError(t, err)

	assert.Len(t, result.Found, 2)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)
	repo.AssertExpectations(t)
}

func TestDiscoverAndStoreSourceFailure(t *testing.T) {
	source := new(MockSource)
	source.On("ListRecent", mock.Anything, "UC777", int64(10)).
		Return(nil, errors.New("quota exceeded"))

	repo := new(MockVideoRepository)

	svc := NewService(source, repo, zap.NewNop())
	result, err := svc.DiscoverAndStore(context.Background(), discoveryCreator(), 10)
	require.Error(t, err)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "CreateVideo", mock.Anything, mock.Anything)
}

func TestDiscoverAndStoreInsertFailureIsCollected(t *testing.T) {
	source := new(MockSource)
	source.On("ListRecent", mock.Anything, "UC777", int64(10)).Return([]Metadata{
		{YouTubeID: "bad-1"},
		{YouTubeID: "good-1"},
	}, nil)

	repo := new(MockVideoRepository)
	repo.On("GetVideoByYouTubeID", mock.Anything, mock.Anything).Return(nil, ErrVideoNotFound)
	repo.On("CreateVideo", mock.Anything, mock.MatchedBy(func(v *models.Video) bool {
		return v.YouTubeID == "bad-1"
	})).Return(errors.New("constraint violation"))
	repo.On("CreateVideo", mock.Anything, mock.MatchedBy(func(v *models.Video) bool {
		return v.YouTubeID == "good-1"
	})).Return(nil)

	svc := NewService(source, repo, zap.NewNop())
	result, err := svc.DiscoverAndStore(context.Background(), discoveryCreator(), 10)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Inserted)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "bad-1")
}

func TestDiscoverAndStoreNilSource(t *testing.T) {
	svc := NewService(nil, new(MockVideoRepository), zap.NewNop())
	_, err := svc.DiscoverAndStore(context.Background(), discoveryCreator(), 10)
	assert.Error(t, err)
}
