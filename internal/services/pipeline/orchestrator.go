package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/internal/models"
	"github.com/prophetlog/prediction-api/internal/services/creators"
	"github.com/prophetlog/prediction-api/internal/services/extraction"
	"github.com/prophetlog/prediction-api/internal/services/segmenter"
	"github.com/prophetlog/prediction-api/internal/services/transcripts"
	"github.com/prophetlog/prediction-api/internal/services/videos"
	"github.com/prophetlog/prediction-api/pkg/captions"
)

// ErrAlreadyRunning signals a refusal, not a failure: another run is active
// for the channel and the caller should wait or skip
var ErrAlreadyRunning = errors.New("pipeline run already active for channel")

// ErrCreatorNotFound is the one fatal pipeline error: the channel has never
// been registered so there is nothing to process
var ErrCreatorNotFound = errors.New("creator not found for channel")

// BlockExtractor is the extraction collaborator consumed by the orchestrator
type BlockExtractor interface {
	ExtractForVideo(ctx context.Context, videoID uint, blocks []segmenter.Block) extraction.Stats
}

// Orchestrator drives the three-stage ingestion pipeline for one channel:
// video discovery, transcript fetch, and prediction extraction. Every stage
// swallows per-item errors into its result and continues.
type Orchestrator struct {
	creators    creators.CreatorRepository
	discovery   videos.VideoService
	videoRepo   videos.VideoRepository
	transcripts transcripts.TranscriptService
	extractor   BlockExtractor
	registry    *RunRegistry
	segmentOpts segmenter.Options
	maxVideos   int64
	logger      *zap.Logger
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(
	creatorRepo creators.CreatorRepository,
	discovery videos.VideoService,
	videoRepo videos.VideoRepository,
	transcriptSvc transcripts.TranscriptService,
	extractor BlockExtractor,
	registry *RunRegistry,
	segmentOpts segmenter.Options,
	maxVideos int64,
	logger *zap.Logger,
) *Orchestrator {
	if maxVideos <= 0 {
		maxVideos = 25
	}
	return &Orchestrator{
		creators:    creatorRepo,
		discovery:   discovery,
		videoRepo:   videoRepo,
		transcripts: transcriptSvc,
		extractor:   extractor,
		registry:    registry,
		segmentOpts: segmentOpts,
		maxVideos:   maxVideos,
		logger:      logger,
	}
}

// IsRunning reports whether a run is currently active for the channel
func (o *Orchestrator) IsRunning(channelID string) bool {
	return o.registry.IsRunning(channelID)
}

// Run executes the pipeline for one channel. It refuses with
// ErrAlreadyRunning when a run is active, fails only when the channel was
// never registered, and otherwise always returns a result, attributing any
// panic to the first stage that had not yet reported success.
func (o *Orchestrator) Run(ctx context.Context, channelID string, opts Options) (result *Result, err error) {
	if !o.registry.TryStart(channelID) {
		return nil, ErrAlreadyRunning
	}
	defer o.registry.Finish(channelID)

	start := time.Now()
	result = &Result{
		RunID:     uuid.NewString(),
		ChannelID: channelID,
	}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("pipeline run panicked",
				zap.String("channel_id", channelID),
				zap.Any("panic", r))
			msg := fmt.Sprintf("panic: %v", r)
			switch {
			case !result.Videos.Success:
				result.Videos.Errors = append(result.Videos.Errors, msg)
			case !result.Transcripts.Success:
				result.Transcripts.Errors = append(result.Transcripts.Errors, msg)
			default:
				result.Extraction.Errors = append(result.Extraction.Errors, msg)
			}
			result.Duration = time.Since(start)
			result.CompletedAt = time.Now().UTC()
			err = nil
		}
	}()

	maxVideos := opts.MaxVideos
	if maxVideos <= 0 {
		maxVideos = o.maxVideos
	}

	creator, resolveErr := o.creators.GetCreatorByChannelID(ctx, channelID)
	if resolveErr != nil {
		if errors.Is(resolveErr, creators.ErrCreatorNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCreatorNotFound, channelID)
		}
		return nil, fmt.Errorf("resolving channel %s: %w", channelID, resolveErr)
	}

	o.runDiscovery(ctx, creator, maxVideos, opts, result)
	o.runTranscripts(ctx, creator, maxVideos, opts, result)
	o.runExtraction(ctx, creator, maxVideos, opts, result)

	result.Duration = time.Since(start)
	result.CompletedAt = time.Now().UTC()

	o.logger.Info("pipeline run finished",
		zap.String("run_id", result.RunID),
		zap.String("channel_id", channelID),
		zap.Duration("duration", result.Duration),
		zap.Int("predictions", result.Extraction.TotalPredictions))

	return result, nil
}

// runDiscovery executes stage 1. A discovery failure is recorded but never
// blocks the later stages from processing already-known videos.
func (o *Orchestrator) runDiscovery(ctx context.Context, creator *models.Creator, maxVideos int64, opts Options, result *Result) {
	if opts.SkipVideoFetch {
		return
	}
	result.Videos.Ran = true

	discovered, err := o.discovery.DiscoverAndStore(ctx, creator, maxVideos)
	if err != nil {
		result.Videos.Errors = append(result.Videos.Errors, err.Error())
		return
	}

	result.Videos.Success = true
	result.Videos.Found = len(discovered.Found)
	result.Videos.Inserted = discovered.Inserted
	result.Videos.Skipped = discovered.Skipped
	result.Videos.Errors = append(result.Videos.Errors, discovered.Errors...)
}

// runTranscripts executes stage 2 over every video still awaiting its
// transcript. Per-video failures are collected; the stage succeeds once the
// loop completes.
func (o *Orchestrator) runTranscripts(ctx context.Context, creator *models.Creator, maxVideos int64, opts Options, result *Result) {
	if opts.SkipTranscriptFetch {
		return
	}
	result.Transcripts.Ran = true

	pending, err := o.videoRepo.ListByCreatorAndStatus(ctx, creator.ID, models.VideoStatusDiscovered, int(maxVideos))
	if err != nil {
		result.Transcripts.Errors = append(result.Transcripts.Errors, fmt.Sprintf("listing pending videos: %v", err))
		return
	}

	for i := range pending {
		video := &pending[i]
		result.Transcripts.Processed++
		if err := o.transcripts.FetchAndStore(ctx, video); err != nil {
			if captions.IsPermanent(err) {
				result.Transcripts.Unavailable++
			}
			result.Transcripts.Errors = append(result.Transcripts.Errors,
				fmt.Sprintf("video %s: %v", video.YouTubeID, err))
			continue
		}
		result.Transcripts.Fetched++
	}

	result.Transcripts.Success = true
}

// runExtraction executes stage 3 over every transcribed video awaiting
// extraction. Videos with no chunks are marked extracted immediately so they
// are never reprocessed.
func (o *Orchestrator) runExtraction(ctx context.Context, creator *models.Creator, maxVideos int64, opts Options, result *Result) {
	if opts.SkipPredictionExtraction {
		return
	}
	result.Extraction.Ran = true

	ready, err := o.videoRepo.ListByCreatorAndStatus(ctx, creator.ID, models.VideoStatusTranscribed, int(maxVideos))
	if err != nil {
		result.Extraction.Errors = append(result.Extraction.Errors, fmt.Sprintf("listing transcribed videos: %v", err))
		return
	}

	for i := range ready {
		video := &ready[i]

		chunks, err := o.transcripts.GetChunks(ctx, video.ID)
		if err != nil {
			result.Extraction.Errors = append(result.Extraction.Errors,
				fmt.Sprintf("video %s: loading chunks: %v", video.YouTubeID, err))
			continue
		}

		result.Extraction.VideosProcessed++

		if len(chunks) == 0 {
			if err := o.videoRepo.MarkExtracted(ctx, video.ID, 0); err != nil {
				result.Extraction.Errors = append(result.Extraction.Errors,
					fmt.Sprintf("video %s: marking empty video extracted: %v", video.YouTubeID, err))
			}
			continue
		}

		blocks := segmenter.Segment(chunks, o.segmentOpts)
		stats := o.extractor.ExtractForVideo(ctx, video.ID, blocks)

		result.Extraction.TotalBlocks += stats.TotalBlocks
		result.Extraction.BlocksWithPredictions += stats.BlocksWithPredictions
		result.Extraction.TotalPredictions += stats.TotalPredictions
		for _, msg := range stats.Errors {
			result.Extraction.Errors = append(result.Extraction.Errors,
				fmt.Sprintf("video %s: %s", video.YouTubeID, msg))
		}
	}

	result.Extraction.Success = true
}
