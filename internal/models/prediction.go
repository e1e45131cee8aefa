package models

import (
	"strings"
	"time"
)

// Confidence is the qualitative certainty the model assigned to a claim
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// NormalizeConfidence lower-cases and trims a raw confidence value, falling
// back to medium for anything outside the known set
func NormalizeConfidence(raw string) Confidence {
	switch Confidence(strings.ToLower(strings.TrimSpace(raw))) {
	case ConfidenceLow:
		return ConfidenceLow
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceMedium:
		return ConfidenceMedium
	default:
		return ConfidenceMedium
	}
}

// PredictionType categorizes the nature of an extracted claim
type PredictionType string

const (
	PredictionTypePrice               PredictionType = "price"
	PredictionTypeDirection           PredictionType = "direction"
	PredictionTypeRelativePerformance PredictionType = "relative performance"
	PredictionTypeMacro               PredictionType = "macro"
)

// NormalizePredictionType lower-cases and trims a raw type value, falling
// back to direction for anything outside the known set
func NormalizePredictionType(raw string) PredictionType {
	switch PredictionType(strings.ToLower(strings.TrimSpace(raw))) {
	case PredictionTypePrice:
		return PredictionTypePrice
	case PredictionTypeRelativePerformance:
		return PredictionTypeRelativePerformance
	case PredictionTypeMacro:
		return PredictionTypeMacro
	case PredictionTypeDirection:
		return PredictionTypeDirection
	default:
		return PredictionTypeDirection
	}
}

// Prediction is one future-oriented claim extracted from a semantic block.
// It is owned by a video and anchored to the first chunk of the block it
// came from; rows are never mutated after creation.
type Prediction struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	VideoID           uint           `json:"video_id" gorm:"not null;index"`
	TranscriptChunkID uint           `json:"transcript_chunk_id" gorm:"not null;index"`
	Claim             string         `json:"claim" gorm:"type:text;not null"`
	Asset             *string        `json:"asset"`
	HorizonMonths     *int           `json:"horizon_months"`
	Confidence        Confidence     `json:"confidence" gorm:"default:medium"`
	PredictionType    PredictionType `json:"prediction_type" gorm:"default:direction"`
	Timestamp         float64        `json:"timestamp"`
	TranscriptText    string         `json:"transcript_text" gorm:"type:text"`
	CreatedAt         time.Time      `json:"created_at"`
}

// TableName specifies the table name for Prediction
func (Prediction) TableName() string {
	return "predictions"
}
