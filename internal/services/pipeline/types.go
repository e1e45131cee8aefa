package pipeline

import "time"

// Options control which stages a pipeline run executes
type Options struct {
	// MaxVideos caps discovery results and per-stage video batches; zero
	// means the configured default
	MaxVideos int64 `json:"max_videos"`

	SkipVideoFetch           bool `json:"skip_video_fetch"`
	SkipTranscriptFetch      bool `json:"skip_transcript_fetch"`
	SkipPredictionExtraction bool `json:"skip_prediction_extraction"`
}

// VideoFetchStage reports the discovery stage of a run
type VideoFetchStage struct {
	Ran      bool     `json:"ran"`
	Success  bool     `json:"success"`
	Found    int      `json:"found"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// TranscriptStage reports the transcript fetch stage of a run
type TranscriptStage struct {
	Ran         bool     `json:"ran"`
	Success     bool     `json:"success"`
	Processed   int      `json:"processed"`
	Fetched     int      `json:"fetched"`
	Unavailable int      `json:"unavailable"`
	Errors      []string `json:"errors,omitempty"`
}

// ExtractionStage reports the prediction extraction stage of a run
type ExtractionStage struct {
	Ran                   bool     `json:"ran"`
	Success               bool     `json:"success"`
	VideosProcessed       int      `json:"videos_processed"`
	TotalBlocks           int      `json:"total_blocks"`
	BlocksWithPredictions int      `json:"blocks_with_predictions"`
	TotalPredictions      int      `json:"total_predictions"`
	Errors                []string `json:"errors,omitempty"`
}

// Result aggregates one full pipeline run. A non-empty error list next to
// success=true means the stage completed with partial failures, which is an
// expected outcome, not a bug.
type Result struct {
	RunID       string          `json:"run_id"`
	ChannelID   string          `json:"channel_id"`
	Videos      VideoFetchStage `json:"videos"`
	Transcripts TranscriptStage `json:"transcripts"`
	Extraction  ExtractionStage `json:"extraction"`
	Duration    time.Duration   `json:"duration_ns"`
	CompletedAt time.Time       `json:"completed_at"`
}
