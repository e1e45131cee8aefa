package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prophetlog/prediction-api/internal/services/pipeline"
	"github.com/prophetlog/prediction-api/pkg/config"
	"github.com/prophetlog/prediction-api/pkg/logger"
)

var (
	ingestMaxVideos       int64
	ingestSkipVideos      bool
	ingestSkipTranscripts bool
	ingestSkipExtraction  bool
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <channel-id>",
	Short: "Run the ingestion pipeline for one channel",
	Long: `Run the full ingestion pipeline for a registered channel without
starting the HTTP server.

The pipeline discovers recent videos, fetches transcripts for videos that
do not have one yet, and extracts predictions from transcribed videos.
Stages can be skipped individually.

Example:
  prediction-api ingest UCFQMnBA3CS502aghlcr0_aw
  prediction-api ingest UCFQMnBA3CS502aghlcr0_aw --max-videos 5
  prediction-api ingest UCFQMnBA3CS502aghlcr0_aw --skip-videos --skip-transcripts`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().Int64Var(&ingestMaxVideos, "max-videos", 0, "cap on videos per stage (0 = configured default)")
	ingestCmd.Flags().BoolVar(&ingestSkipVideos, "skip-videos", false, "skip video discovery")
	ingestCmd.Flags().BoolVar(&ingestSkipTranscripts, "skip-transcripts", false, "skip transcript fetching")
	ingestCmd.Flags().BoolVar(&ingestSkipExtraction, "skip-extraction", false, "skip prediction extraction")
}

func runIngest(cmd *cobra.Command, args []string) error {
	channelID := args[0]

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	deps, err := buildDependencies(cmd.Context(), cfg, db, log)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		MaxVideos:                ingestMaxVideos,
		SkipVideoFetch:           ingestSkipVideos,
		SkipTranscriptFetch:      ingestSkipTranscripts,
		SkipPredictionExtraction: ingestSkipExtraction,
	}

	result, err := deps.Orchestrator.Run(cmd.Context(), channelID, opts)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s finished in %s\n", result.RunID, result.Duration.Round(time.Millisecond))
	if result.Videos.Ran {
		fmt.Fprintf(out, "Videos:      found %d, inserted %d, skipped %d, errors %d\n",
			result.Videos.Found, result.Videos.Inserted, result.Videos.Skipped, len(result.Videos.Errors))
	}
	if result.Transcripts.Ran {
		fmt.Fprintf(out, "Transcripts: processed %d, fetched %d, errors %d\n",
			result.Transcripts.Processed, result.Transcripts.Fetched, len(result.Transcripts.Errors))
	}
	if result.Extraction.Ran {
		fmt.Fprintf(out, "Extraction:  videos %d, blocks %d, predictions %d, errors %d\n",
			result.Extraction.VideosProcessed, result.Extraction.TotalBlocks,
			result.Extraction.TotalPredictions, len(result.Extraction.Errors))
	}

	for _, stageErrors := range [][]string{result.Videos.Errors, result.Transcripts.Errors, result.Extraction.Errors} {
		for _, msg := range stageErrors {
			fmt.Fprintf(out, "  error: %s\n", msg)
		}
	}

	return nil
}
