package captions

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a caption fetch failed. Callers use it to decide
// whether a video should be retried later or marked permanently unavailable.
type FailureKind string

const (
	// FailureUnavailable means no caption track exists for the video
	FailureUnavailable FailureKind = "unavailable"
	// FailureDisabled means captions are turned off for the video
	FailureDisabled FailureKind = "disabled"
	// FailureTransient means the fetch failed for a retryable reason
	FailureTransient FailureKind = "transient"
)

// FetchError is a caption fetch failure with a structured kind
type FetchError struct {
	Kind    FailureKind
	VideoID string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("captions %s for video %s: %v", e.Kind, e.VideoID, e.Err)
	}
	return fmt.Sprintf("captions %s for video %s", e.Kind, e.VideoID)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsPermanent reports whether err is a caption failure that will not succeed
// on retry (no track, or captions disabled). The failure is found anywhere in
// the error chain.
func IsPermanent(err error) bool {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Kind == FailureUnavailable || fe.Kind == FailureDisabled
}

func newError(kind FailureKind, videoID string, err error) *FetchError {
	return &FetchError{Kind: kind, VideoID: videoID, Err: err}
}
