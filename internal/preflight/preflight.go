package preflight

import (
	"fmt"
	"strings"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Request lists the paths an alignment run touches.
type Request struct {
	TranscriptPath string
	SlidesPath     string
	// OutputPath is skipped when empty, as is StateDir.
	OutputPath string
	StateDir   string
}

// RunAll executes every applicable check for req.
func RunAll(req Request) []Result {
	results := []Result{
		CheckFileReadable("Transcript", req.TranscriptPath),
		CheckFileReadable("Slides", req.SlidesPath),
	}
	if req.OutputPath != "" {
		results = append(results, CheckOutputWritable("Output", req.OutputPath))
	}
	if req.StateDir != "" {
		results = append(results, CheckWritableDir("State directory", req.StateDir))
	}
	return results
}

// FailureError summarizes failed results, or returns nil when all passed.
func FailureError(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("preflight failed: %s", strings.Join(failed, "; "))
}
