package models

import (
	"time"

	"gorm.io/gorm"
)

// Creator represents a tracked content channel
type Creator struct {
	gorm.Model
	ChannelID   string  `json:"channel_id" gorm:"uniqueIndex;not null"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Videos      []Video `json:"videos,omitempty" gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
}

// VideoStatus tracks how far a video has moved through the ingestion pipeline.
// Transitions: discovered -> transcribed | unavailable; transcribed -> extracted.
type VideoStatus string

const (
	// VideoStatusDiscovered means the video is known but its transcript has not been fetched
	VideoStatusDiscovered VideoStatus = "discovered"
	// VideoStatusTranscribed means transcript chunks are stored and extraction is pending
	VideoStatusTranscribed VideoStatus = "transcribed"
	// VideoStatusUnavailable means the transcript is permanently unavailable (terminal)
	VideoStatusUnavailable VideoStatus = "unavailable"
	// VideoStatusExtracted means every block has been offered to the extractor (terminal)
	VideoStatusExtracted VideoStatus = "extracted"
)

// IsTerminal reports whether the pipeline has nothing left to do for this status
func (s VideoStatus) IsTerminal() bool {
	return s == VideoStatusUnavailable || s == VideoStatusExtracted
}

// Video represents one long-form video belonging to a creator
type Video struct {
	gorm.Model
	CreatorID   uint        `json:"creator_id" gorm:"not null;index"`
	YouTubeID   string      `json:"youtube_id" gorm:"uniqueIndex;not null"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	URL         string      `json:"url"`
	PublishedAt time.Time   `json:"published_at"`
	Status      VideoStatus `json:"status" gorm:"default:discovered;index"`

	// Number of block/storage errors recorded by the most recent extraction run.
	// Extraction always advances Status; this is how callers tell a clean empty
	// run apart from one that errored everywhere.
	ExtractionErrorCount int `json:"extraction_error_count" gorm:"default:0"`

	Chunks      []TranscriptChunk `json:"chunks,omitempty" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	Predictions []Prediction      `json:"predictions,omitempty" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}

// TranscriptChunk is one normalized caption entry of a video's transcript.
// Chunks for a video are totally ordered by StartTime and are replaced
// wholesale on re-fetch, never updated in place.
type TranscriptChunk struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	VideoID   uint      `json:"video_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"type:text"`
	StartTime float64   `json:"start_time"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for TranscriptChunk
func (TranscriptChunk) TableName() string {
	return "transcript_chunks"
}
