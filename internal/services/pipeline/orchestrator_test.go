package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/internal/models"
	"github.com/prophetlog/prediction-api/internal/services/creators"
	"github.com/prophetlog/prediction-api/internal/services/extraction"
	"github.com/prophetlog/prediction-api/internal/services/segmenter"
	"github.com/prophetlog/prediction-api/internal/services/videos"
	"github.com/prophetlog/prediction-api/pkg/captions"
)

// MockCreatorRepository is a mock implementation of creators.CreatorRepository
type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) CreateCreator(ctx context.Context, creator *models.Creator) error {
	args := m.Called(ctx, creator)
	return args.Error(0)
}

func (m *MockCreatorRepository) GetCreatorByID(ctx context.Context, id uint) (*models.Creator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Creator), args.Error(1)
}

func (m *MockCreatorRepository) GetCreatorByChannelID(ctx context.Context, channelID string) (*models.Creator, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Creator), args.Error(1)
}

func (m *MockCreatorRepository) ListCreators(ctx context.Context) ([]models.Creator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Creator), args.Error(1)
}

func (m *MockCreatorRepository) DeleteCreator(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVideoService is a mock implementation of videos.VideoService
type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) DiscoverAndStore(ctx context.Context, creator *models.Creator, maxResults int64) (*videos.DiscoveryResult, error) {
	args := m.Called(ctx, creator, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*videos.DiscoveryResult), args.Error(1)
}

// MockVideoRepository is a mock implementation of videos.VideoRepository
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

// MockTranscriptService is a mock implementation of transcripts.TranscriptService
type MockTranscriptService struct {
	mock.Mock
}

func (m *MockTranscriptService) FetchAndStore(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockTranscriptService) GetChunks(ctx context.Context, videoID uint) ([]models.TranscriptChunk, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TranscriptChunk), args.Error(1)
}

// MockBlockExtractor is a mock implementation of BlockExtractor
type MockBlockExtractor struct {
	mock.Mock
}

func (m *MockBlockExtractor) ExtractForVideo(ctx context.Context, videoID uint, blocks []segmenter.Block) extraction.Stats {
	args := m.Called(ctx, videoID, blocks)
	return args.Get(0).(extraction.Stats)
}

type orchestratorFixture struct {
	creators    *MockCreatorRepository
	discovery   *MockVideoService
	videoRepo   *MockVideoRepository
	transcripts *MockTranscriptService
	extractor   *MockBlockExtractor
	registry    *RunRegistry
}

func newFixture() *orchestratorFixture {
	return &orchestratorFixture{
		creators:    new(MockCreatorRepository),
		discovery:   new(MockVideoService),
		videoRepo:   new(MockVideoRepository),
		transcripts: new(MockTranscriptService),
		extractor:   new(MockBlockExtractor),
		registry:    NewRunRegistry(),
	}
}

func (f *orchestratorFixture) orchestrator() *Orchestrator {
	return NewOrchestrator(
		f.creators,
		f.discovery,
		f.videoRepo,
		f.transcripts,
		f.extractor,
		f.registry,
		segmenter.DefaultOptions(),
		25,
		zap.NewNop(),
	)
}

func testCreator() *models.Creator {
	creator := &models.Creator{ChannelID: "UC123", Name: "Analyst"}
	creator.ID = 1
	return creator
}

func chunkSet(videoID uint) []models.TranscriptChunk {
	return []models.TranscriptChunk{
		{ID: 10, VideoID: videoID, Text: "the market will definitely crash next quarter believe me on this one.", StartTime: 1},
		{ID: 11, VideoID: videoID, Text: "and gold is going to double within two years as a direct result of it.", StartTime: 3},
		{ID: 12, VideoID: videoID, Text: "so position yourselves accordingly before the window closes for good here.", StartTime: 5},
	}
}

func TestRunUnknownCreatorIsFatal(t *testing.T) {
	f := newFixture()
	f.creators.On("GetCreatorByChannelID", mock.Anything, "UC404").
		Return(nil, creators.ErrCreatorNotFound)

	result, err := f.orchestrator().Run(context.Background(), "UC404", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCreatorNotFound)
	assert.Nil(t, result)

	// The registry slot must be released even on the fatal path
	assert.False(t, f.registry.IsRunning("UC404"))
}

func TestRunRefusesConcurrentRun(t *testing.T) {
	f := newFixture()
	require.True(t, f.registry.TryStart("UC123"))

	result, err := f.orchestrator().Run(context.Background(), "UC123", Options{})
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Nil(t, result)

	// The pre-existing claim must survive the refusal
	assert.True(t, f.registry.IsRunning("UC123"))
}

func TestRunSkipsAllStages(t *testing.T) {
	f := newFixture()
	f.creators.On("GetCreatorByChannelID", mock.Anything, "UC123").Return(testCreator(), nil)

	result, err := f.orchestrator().Run(context.Background(), "UC123", Options{
		SkipVideoFetch:           true,
		SkipTranscriptFetch:      true,
		SkipPredictionExtraction: true,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.Videos.Ran)
	assert.False(t, result.Transcripts.Ran)
	assert.False(t, result.Extraction.Ran)
	assert.NotEmpty(t, result.RunID)
	f.discovery.AssertNotCalled(t, "DiscoverAndStore", mock.Anything, mock.Anything, mock.Anything)
	f.videoRepo.AssertNotCalled(t, "ListByCreatorAndStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunDiscoveryFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	creator := testCreator()
	f.creators.On("GetCreatorByChannelID", mock.Anything, "UC123").Return(creator, nil)
	f.discovery.On("DiscoverAndStore", mock.Anything, creator, int64(25)).
		Return(nil, errors.New("quota exceeded"))
	f.videoRepo.On("ListByCreatorAndStatus", mock.Anything, uint(1), models.VideoStatusDiscovered, 25).
		Return([]models.Video{}, nil)
	f.videoRepo.On("ListByCreatorAndStatus", mock.Anything, uint(1), models.VideoStatusTranscribed, 25).
		Return([]models.Video{}, nil)

	result, err := f.orchestrator().Run(context.Background(), "UC123", Options{})
	require.NoError(t, err)

	assert.True(t, result.Videos.Ran)
	assert.False(t, result.Videos.Success)
	assert.Len(t, result.Videos.Errors, 1)

	// Later stages still ran over the already-known videos
	assert.True(t, result.Transcripts.Ran)
	assert.True(t, result.Transcripts.Success)
	assert.True(t, result.Extraction.Ran)
	assert.True(t, result.Extraction.Success)
}

func TestRunTranscriptFailuresAreCollected(t *testing.T) {
	f := newFixture()
	creator := testCreator()
	f.creators.On("GetCreatorByChannelID", mock.Anything, "UC123").Return(creator, nil)

	pending := []models.Video{
		{CreatorID: 1, YouTubeID: "vid-ok", Status: models.VideoStatusDiscovered},
		{CreatorID: 1, YouTubeID: "vid-bad", Status: models.VideoStatusDiscovered},
	}
	pending[0].ID = 100
	pending[1].ID = 101

	f.videoRepo.On("ListByCreatorAndStatus", mock.Anything, uint(1), models.VideoStatusDiscovered, 25).
		Return(pending, nil)
	f.videoRepo.On("ListByCreatorAndStatus", mock.Anything, uint(1), models.VideoStatusTranscribed, 25).
		Return([]models.Video{}, nil)
	f.transcripts.On("FetchAndStore", mock.Anything, mock.MatchedBy(func(v *models.Video) bool {
		return v.YouTubeID == "vid-ok"
	})).Return(nil)
	f.transcripts.On("FetchAndStore", mock.Anything, mock.MatchedBy(func(v *models.Video) bool {
		return v.YouTubeID == "vid-bad"
	})).Return(errors.New("captions disabled"))

	result, err := f.orchestrator().Run(context.Background(), "UC123", Options{SkipVideoFetch: true})
	require.NoError(t, err)

	assert.True(t, result.Transcripts.Success, "per-video failures do not fail the stage")
	assert.Equal(t, 2, result.Transcripts.Processed)
	assert.Equal(t, 1, result.Transcripts.Fetched)
	require.Len(t, result.Transcripts.Errors, 1)
	assert.Contains(t, result.Transcripts.Errors[0], "vid-bad")
}

func TestRunCountsUnavailableTranscripts(t *testing.T) {
	f := newFixture()
	creator := testCreator()
	f.creators.On("GetCreatorByChannelID", mock.Anything, "UC123").Return(creator, nil)

	pending := []models.Video{
		{CreatorID: 1, YouTubeID: "vid-gone", Status: models.VideoStatusDiscovered},
		{CreatorID: 1, YouTubeID: "vid-flaky", Status: models.VideoStatusDiscovered},
	}
	pending[0].ID = 100
	pending[1].ID = 101

	f.videoRepo.On("ListByCreatorAndStatus", mock.Anything, uint(1), models.VideoStatusDiscovered, 25).
		Return(pending, nil)
	f.videoRepo.On("ListByCreatorAndStatus", mock.Anything, uint(1), models.VideoStatusTranscribed, 25).
		Return([]models.Video{}, nil)

	// Services wrap the caption failure, so the kind must survive unwrapping
	permanent := fmt.Errorf("fetching transcript for vid-gone: %w",
		&captions.FetchError{Kind: captions.FailureUnavailable, VideoID: "vid-gone"})
	f.transcripts.On("FetchAndStore", mock.Anything, mock.MatchedBy(func(v *models.Video) bool {
		return v.YouTubeID == "vid-gone"
	})).Return(permanent)
	f.transcripts.On("FetchAndStore", mock.Anything, mock.MatchedBy(func(v *models.Video) bool {
		return v.YouTubeID == "vid-flaky"
	})).Return(errors.New("connection reset"))

	result, err := f.orchestrator().Run(context.Background(), "UC123", Options{SkipVideoFetch: true})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Transcripts.Processed)
	assert.Equal(t, 0, result.Transcripts.Fetched)
	assert.Equal(t, 1, result.Transcripts.Unavailable, "only the permanent failure counts as unavailable")
	assert.Len(t, result.Transcripts.Errors, 2)
}

func TestRunExtractionAggregatesStats(t *testing.T) {
	f := newFixture()
	creator := testCreator()
	f.creators.On("GetCreatorByChannelID", mock.Anything, "UC123").Return(creator, nil)

	ready := []models.Video{{CreatorID: 1, YouTubeID: "vid-1", Status: models.VideoStatusTranscribed}}
	ready[0].ID = 200

	f.videoRepo.On("ListByCreatorAndStatus", mock.Anything, uint(1), models.VideoStatusTranscribed, 25).
		Return(ready, nil)
	f.transcripts.On("GetChunks", mock.Anything, uint(200)).Return(chunkSet(200), nil)
	f.extractor.On("ExtractForVideo", mock.Anything, uint(200), mock.Anything).
		Return(extraction.Stats{
			TotalBlocks:           2,
			BlocksWithPredictions: 1,
			TotalPredictions:      3,
			Errors:                []string{"block 1: model timeout"},
		})

	result, err := f.orchestrator().Run(context.Background(), "UC123", Options{
		SkipVideoFetch:      true,
		SkipTranscriptFetch: true,
	})
	require.NoError(t, err)

	assert.True(t, result.Extraction.Success)
	assert.Equal(t, 1, result.Extraction.VideosProcessed)
	assert.Equal(t, 2, result.Extraction.TotalBlocks)
	assert.Equal(t, 3, result.Extraction.TotalPredictions)
	require.Len(t, result.Extraction.Errors, 1)
	assert.Contains(t, result.Extraction.Errors[0], "vid-1")
}

func TestRunZeroChunkVideoFastPath(t *testing.T) {
	f := newFixture()
	creator := testCreator()
	f.creators.On("GetCreatorByChannelID", mock.Anything, "UC123").Return(creator, nil)

	ready := []models.Video{{CreatorID: 1, YouTubeID: "vid-empty", Status: models.VideoStatusTranscribed}}
	ready[0].ID = 300

	f.videoRepo.On("ListByCreatorAndStatus", mock.Anything, uint(1), models.VideoStatusTranscribed, 25).
		Return(ready, nil)
	f.transcripts.On("GetChunks", mock.Anything, uint(300)).Return([]models.TranscriptChunk{}, nil)
	f.videoRepo.On("MarkExtracted", mock.Anything, uint(300), 0).Return(nil).Once()

	result, err := f.orchestrator().Run(context.Background(), "UC123", Options{
		SkipVideoFetch:      true,
		SkipTranscriptFetch: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Extraction.VideosProcessed)
	assert.Empty(t, result.Extraction.Errors)
	f.extractor.AssertNotCalled(t, "ExtractForVideo", mock.Anything, mock.Anything, mock.Anything)
	f.videoRepo.AssertExpectations(t)
}

func TestRunMaxVideosOverride(t *testing.T) {
	f := newFixture()
	creator := testCreator()
	f.creators.On("GetCreatorByChannelID", mock.Anything, "UC123").Return(creator, nil)
	f.discovery.On("DiscoverAndStore", mock.Anything, creator, int64(5)).
		Return(&videos.DiscoveryResult{Found: []videos.Metadata{{YouTubeID: "v1"}}, Inserted: 1}, nil)
	f.videoRepo.On("ListByCreatorAndStatus", mock.Anything, uint(1), models.VideoStatusDiscovered, 5).
		Return([]models.Video{}, nil)
	f.videoRepo.On("ListByCreatorAndStatus", mock.Anything, uint(1), models.VideoStatusTranscribed, 5).
		Return([]models.Video{}, nil)

	result, err := f.orchestrator().Run(context.Background(), "UC123", Options{MaxVideos: 5})
	require.NoError(t, err)

	assert.True(t, result.Videos.Success)
	assert.Equal(t, 1, result.Videos.Found)
	assert.Equal(t, 1, result.Videos.Inserted)
	f.discovery.AssertExpectations(t)
}

func TestRunReleasesRegistryAfterCompletion(t *testing.T) {
	f := newFixture()
	f.creators.On("GetCreatorByChannelID", mock.Anything, "UC123").Return(testCreator(), nil)

	_, err := f.orchestrator().Run(context.Background(), "UC123", Options{
		SkipVideoFetch:           true,
		SkipTranscriptFetch:      true,
		SkipPredictionExtraction: true,
	})
	require.NoError(t, err)
	assert.False(t, f.registry.IsRunning("UC123"))
}
