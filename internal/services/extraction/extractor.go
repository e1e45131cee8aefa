package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/prophetlog/prediction-api/internal/models"
	"github.com/prophetlog/prediction-api/internal/services/llm"
	"github.com/prophetlog/prediction-api/internal/services/segmenter"
)

const (
	// DefaultMaxAttempts bounds model calls per block, retries included
	DefaultMaxAttempts = 3
	// DefaultMinInterval is the minimum spacing between any two model calls
	DefaultMinInterval = time.Second

	backoffInitialInterval = time.Second
	backoffMaxInterval     = 10 * time.Second
)

// NewRateLimiter builds the shared model-call limiter: one call per
// minInterval, no burst. A single limiter instance must be shared by every
// extractor in the process to serialize effective LLM throughput.
func NewRateLimiter(minInterval time.Duration) *rate.Limiter {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return rate.NewLimiter(rate.Every(minInterval), 1)
}

// Stats aggregates one video's extraction run
type Stats struct {
	TotalBlocks           int      `json:"total_blocks"`
	BlocksWithPredictions int      `json:"blocks_with_predictions"`
	TotalPredictions      int      `json:"total_predictions"`
	Errors                []string `json:"errors,omitempty"`
}

// Extractor turns semantic blocks into persisted predictions via the
// language model, with rate limiting and bounded retries
type Extractor struct {
	model       llm.Client
	limiter     *rate.Limiter
	predictions PredictionStore
	videos      VideoMarker
	logger      *zap.Logger
	maxAttempts int
}

// NewExtractor creates a new extractor. The limiter is injected so tests and
// multi-extractor setups control the shared call spacing explicitly.
func NewExtractor(model llm.Client, limiter *rate.Limiter, predictions PredictionStore, videos VideoMarker, logger *zap.Logger, maxAttempts int) *Extractor {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Extractor{
		model:       model,
		limiter:     limiter,
		predictions: predictions,
		videos:      videos,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// ExtractFromBlock obtains predictions for one semantic block. Transport
// failures and unparseable responses share the same backoff ladder; after
// the attempt budget is spent the last error is returned alongside an empty
// list, which callers treat as non-fatal.
func (e *Extractor) ExtractFromBlock(ctx context.Context, block segmenter.Block, blockIndex int) ([]ExtractedPrediction, error) {
	var extracted []ExtractedPrediction

	operation := func() error {
		if err := e.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		raw, err := e.model.Complete(ctx, BuildPrompt(block.Text))
		if err != nil {
			return err
		}

		predictions, err := ParseResponse(raw)
		if err != nil {
			return err
		}

		extracted = predictions
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = backoffInitialInterval
	policy.MaxInterval = backoffMaxInterval
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(e.maxAttempts-1)), ctx))
	if err != nil {
		e.logger.Warn("block extraction failed",
			zap.Int("block", blockIndex),
			zap.Int("attempts", e.maxAttempts),
			zap.Error(err))
		return nil, fmt.Errorf("block %d: %w", blockIndex, err)
	}

	return extracted, nil
}

// ExtractForVideo processes a video's blocks strictly in order, persisting
// accepted predictions as it goes. Block and storage errors are collected,
// never fatal. The video is marked extracted afterwards regardless of errors;
// the recorded error count is what lets callers spot a run that needs a
// manual retry.
func (e *Extractor) ExtractForVideo(ctx context.Context, videoID uint, blocks []segmenter.Block) Stats {
	stats := Stats{TotalBlocks: len(blocks)}

	for i, block := range blocks {
		predictions, err := e.ExtractFromBlock(ctx, block, i)
		if err != nil {
			stats.Errors = append(stats.Errors, err.Error())
			continue
		}

		if len(predictions) > 0 {
			stats.BlocksWithPredictions++
		}

		for _, pred := range predictions {
			row := &models.Prediction{
				VideoID:           videoID,
				TranscriptChunkID: block.ChunkIDs[0],
				Claim:             pred.Claim,
				Asset:             pred.Asset,
				HorizonMonths:     pred.HorizonMonths,
				Confidence:        pred.Confidence,
				PredictionType:    pred.PredictionType,
				Timestamp:         block.StartTime,
				TranscriptText:    block.Text,
			}
			if err := e.predictions.CreatePrediction(ctx, row); err != nil {
				stats.Errors = append(stats.Errors, fmt.Sprintf("block %d: storing prediction: %v", i, err))
				continue
			}
			stats.TotalPredictions++
		}
	}

	if err := e.videos.MarkExtracted(ctx, videoID, len(stats.Errors)); err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("marking video %d extracted: %v", videoID, err))
	}

	e.logger.Info("video extraction finished",
		zap.Uint("video_id", videoID),
		zap.Int("blocks", stats.TotalBlocks),
		zap.Int("predictions", stats.TotalPredictions),
		zap.Int("errors", len(stats.Errors)))

	return stats
}
