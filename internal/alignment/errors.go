package alignment

import (
	"errors"
	"fmt"
)

var (
	// ErrMatchBelowThreshold marks a slide whose best alignment scored under
	// the configured threshold.
	ErrMatchBelowThreshold = errors.New("match quality below threshold")
	// ErrTranscriptExhausted marks a slide that found no transcript entries
	// left to align against.
	ErrTranscriptExhausted = errors.New("transcript exhausted")
	// ErrInvalidConfig marks rejected options.
	ErrInvalidConfig = errors.New("invalid alignment configuration")
)

// AlignmentError aborts a run. It carries enough context to re-chunk the
// offending slide or adjust the threshold.
type AlignmentError struct {
	// SlideIndex is the zero-based position in the caller's slide list.
	SlideIndex int
	SlideText  string
	Score      float64
	Threshold  int
	// Position is the number of transcript entries consumed before this
	// slide, and SequenceID the id of the first remaining entry (or -1).
	Position   int
	SequenceID int
	Err        error
}

func (e *AlignmentError) Error() string {
	cause := e.Err
	if cause == nil {
		cause = ErrMatchBelowThreshold
	}
	return fmt.Sprintf("slide %d: %v (score %.2f, threshold %d, transcript position %d): %q",
		e.SlideIndex, cause, e.Score, e.Threshold, e.Position, e.SlideText)
}

func (e *AlignmentError) Unwrap() error {
	if e.Err == nil {
		return ErrMatchBelowThreshold
	}
	return e.Err
}

// ErrorKind classifies the failure for run history.
func (e *AlignmentError) ErrorKind() string { return "alignment" }

// ConfigError rejects an option before any processing starts.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("alignment.%s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// ErrorKind classifies the failure for run history.
func (e *ConfigError) ErrorKind() string { return "configuration" }
