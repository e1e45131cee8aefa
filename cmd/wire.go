package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/api/types"
	"github.com/prophetlog/prediction-api/internal/database"
	"github.com/prophetlog/prediction-api/internal/models"
	"github.com/prophetlog/prediction-api/internal/services/creators"
	"github.com/prophetlog/prediction-api/internal/services/extraction"
	"github.com/prophetlog/prediction-api/internal/services/llm"
	"github.com/prophetlog/prediction-api/internal/services/pipeline"
	"github.com/prophetlog/prediction-api/internal/services/segmenter"
	"github.com/prophetlog/prediction-api/internal/services/transcripts"
	"github.com/prophetlog/prediction-api/internal/services/videos"
	"github.com/prophetlog/prediction-api/pkg/captions"
	"github.com/prophetlog/prediction-api/pkg/config"
)

const captionFetchTimeout = 30 * time.Second

// openDatabase initializes the sqlite connection and migrates the schema
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Creator{},
		&models.Video{},
		&models.TranscriptChunk{},
		&models.Prediction{},
	); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return db, nil
}

// buildDependencies wires repositories, services, and the pipeline
// orchestrator into the handler dependency bag
func buildDependencies(ctx context.Context, cfg *config.Config, db *database.DB, log *zap.Logger) (*types.Dependencies, error) {
	creatorRepo := creators.NewRepository(db.DB)
	videoRepo := videos.NewRepository(db.DB)
	transcriptRepo := transcripts.NewRepository(db.DB)
	predictionRepo := extraction.NewRepository(db.DB)

	youtubeClient, err := videos.NewYouTubeClient(ctx, cfg.YouTube.APIKey, log)
	if err != nil {
		return nil, fmt.Errorf("creating youtube client: %w", err)
	}
	discovery := videos.NewService(youtubeClient, videoRepo, log)

	fetcher := captions.NewFetcher(captionFetchTimeout)
	transcriptSvc := transcripts.NewService(fetcher, transcriptRepo, log)

	model := llm.NewOpenAIClient(cfg.AI.OpenAIAPIKey, cfg.AI.Model, cfg.AI.Timeout, log)
	limiter := extraction.NewRateLimiter(cfg.Extraction.MinInterval)
	extractor := extraction.NewExtractor(model, limiter, predictionRepo, videoRepo, log, cfg.Extraction.MaxAttempts)

	segmentOpts := segmenter.Options{
		MinWords:  cfg.Segmenter.MinWords,
		MaxWords:  cfg.Segmenter.MaxWords,
		MaxChunks: cfg.Segmenter.MaxChunks,
	}

	orchestrator := pipeline.NewOrchestrator(
		creatorRepo,
		discovery,
		videoRepo,
		transcriptSvc,
		extractor,
		pipeline.NewRunRegistry(),
		segmentOpts,
		cfg.YouTube.MaxResults,
		log,
	)

	return &types.Dependencies{
		DB:           db,
		Creators:     creatorRepo,
		Videos:       videoRepo,
		Predictions:  predictionRepo,
		Orchestrator: orchestrator,
		Logger:       log,
	}, nil
}
