package history

import (
	"time"

	"slidesync/internal/alignment"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ErrorClassifier is implemented by errors that declare their kind.
type ErrorClassifier interface {
	ErrorKind() string
}

// Input describes a run before it starts.
type Input struct {
	TranscriptPath string
	SlidesPath     string
	OutputPath     string
	Options        alignment.Options
	EntryCount     int
	SlideCount     int
}

// Run is one persisted alignment run.
type Run struct {
	ID              string
	Status          Status
	TranscriptPath  string
	SlidesPath      string
	OutputPath      string
	MatchThreshold  int
	MaxOffset       int
	BlendWeight     float64
	CorrectionOrder string
	EntryCount      int
	SlideCount      int
	RecordCount     int
	Skipped         int
	Unconsumed      int
	ErrorKind       string
	ErrorMessage    string
	// FailedSlide and FailedScore are set only for alignment failures.
	FailedSlide *int
	FailedScore *float64
	Diagnostics []alignment.SlideDiagnostic
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// Duration is the wall time of a finished run, or zero.
func (r *Run) Duration() time.Duration {
	if r == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
