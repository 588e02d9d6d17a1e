package tts

import (
	"errors"
	"fmt"
)

// Common errors for the synthesis pipeline. Every failure in a run wraps
// exactly one of these so callers can classify with errors.Is.
var (
	// Frontend errors
	ErrUnknownProfile = errors.New("normalization profile is not registered")
	ErrEncoding       = errors.New("text contains symbols the profile cannot encode")

	// Model errors
	ErrInvalidSpeaker = errors.New("speaker id is outside the model's trained range")
	ErrModel          = errors.New("model inference failed")

	// Persistence errors
	ErrIO = errors.New("output could not be written")
)

// StageError records which pipeline stage a run failed in. The underlying
// error is surfaced unmodified; no stage recovers from another stage's
// failure and nothing is retried.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

func failStage(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
