package types

import (
	"github.com/prophetlog/prediction-api/internal/models"
	"github.com/prophetlog/prediction-api/internal/services/pipeline"
)

// Status constants for API responses
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusRunning = "running"
	StatusIdle    = "idle"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// SingleCreatorResponse for getting a single creator
type SingleCreatorResponse struct {
	BaseResponse
	Creator *models.Creator `json:"creator"`
}

// CreatorsResponse for creator lists
type CreatorsResponse struct {
	BaseResponse
	Creators []models.Creator `json:"creators"`
	Count    int              `json:"count"`
}

// PredictionsResponse for prediction lists
type PredictionsResponse struct {
	BaseResponse
	Predictions []models.Prediction `json:"predictions"`
	Count       int                 `json:"count"` // Number of results in this response
	Total       int64               `json:"total"` // Total available results
	Page        int                 `json:"page,omitempty"`
	Limit       int                 `json:"limit,omitempty"`
}

// IngestResponse reports a completed pipeline run
type IngestResponse struct {
	BaseResponse
	Run *pipeline.Result `json:"run"`
}

// IngestStatusResponse reports whether a run is active for a channel
type IngestStatusResponse struct {
	BaseResponse
	ChannelID string `json:"channel_id"`
	Running   bool   `json:"running"`
}
