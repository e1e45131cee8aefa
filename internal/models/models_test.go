package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeConfidence(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Confidence
	}{
		{name: "exact low", raw: "low", expected: ConfidenceLow},
		{name: "uppercase", raw: "HIGH", expected: ConfidenceHigh},
		{name: "mixed case with spaces", raw: "  Medium ", expected: ConfidenceMedium},
		{name: "unknown falls back to medium", raw: "very certain", expected: ConfidenceMedium},
		{name: "empty falls back to medium", raw: "", expected: ConfidenceMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeConfidence(tt.raw))
		})
	}
}

func TestNormalizePredictionType(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected PredictionType
	}{
		{name: "exact price", raw: "price", expected: PredictionTypePrice},
		{name: "uppercase", raw: "MACRO", expected: PredictionTypeMacro},
		{name: "relative performance", raw: "Relative Performance", expected: PredictionTypeRelativePerformance},
		{name: "unknown falls back to direction", raw: "sideways", expected: PredictionTypeDirection},
		{name: "empty falls back to direction", raw: "", expected: PredictionTypeDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePredictionType(tt.raw))
		})
	}
}

func TestVideoStatusIsTerminal(t *testing.T) {
	assert.False(t, VideoStatusDiscovered.IsTerminal())
	assert.False(t, VideoStatusTranscribed.IsTerminal())
	assert.True(t, VideoStatusUnavailable.IsTerminal())
	assert.True(t, VideoStatusExtracted.IsTerminal())
}
