package types

// CreateCreatorRequest registers a channel for tracking
type CreateCreatorRequest struct {
	ChannelID   string `json:"channel_id" binding:"required" example:"UCFQMnBA3CS502aghlcr0_aw"`
	Name        string `json:"name" binding:"required" example:"Coffeezilla"`
	Description string `json:"description,omitempty"`
}

// IngestRequest tunes a pipeline run. All fields are optional; zero values
// mean run every stage with the configured video cap.
type IngestRequest struct {
	MaxVideos                int64 `json:"max_videos,omitempty" example:"10"`
	SkipVideoFetch           bool  `json:"skip_video_fetch,omitempty"`
	SkipTranscriptFetch      bool  `json:"skip_transcript_fetch,omitempty"`
	SkipPredictionExtraction bool  `json:"skip_prediction_extraction,omitempty"`
}
