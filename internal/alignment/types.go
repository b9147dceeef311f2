package alignment

// TimingRecord is the reconstructed display window of one non-empty slide.
// Times are milliseconds from the start of the transcript.
type TimingRecord struct {
	SlideText  string  `json:"slide_text"`
	StartMS    float64 `json:"start_ms"`
	EndMS      float64 `json:"end_ms"`
	DurationMS float64 `json:"duration_ms"`
}

// DurationSeconds returns the display duration rounded to two decimals.
func (r TimingRecord) DurationSeconds() float64 {
	return roundHundredths(r.DurationMS / 1000)
}

// Correction names the boundary adjustment applied to a slide.
type Correction string

const (
	CorrectionNone     Correction = "none"
	CorrectionContract Correction = "contract"
	CorrectionExpand   Correction = "expand"
)

// SlideDiagnostic describes how one slide was matched.
type SlideDiagnostic struct {
	// SlideIndex is the zero-based position in the caller's slide list.
	SlideIndex int        `json:"slide_index"`
	SlideText  string     `json:"slide_text"`
	WordCount  int        `json:"word_count"`
	Matched    int        `json:"matched_entries"`
	Missing    int        `json:"missing_positions"`
	Correction Correction `json:"correction"`
	// Shift is the number of entries dropped (contract) or added (expand).
	Shift    int     `json:"shift"`
	Score    float64 `json:"score"`
	Accepted bool    `json:"accepted"`
}

// Result is the outcome of a run. Records is nil when the run failed;
// Diagnostics still covers every slide processed up to the failure.
type Result struct {
	Records     []TimingRecord    `json:"records"`
	Diagnostics []SlideDiagnostic `json:"diagnostics"`
	// Skipped counts slides with no word characters.
	Skipped int `json:"skipped"`
	// Unconsumed counts transcript entries left after the last slide.
	Unconsumed int `json:"unconsumed"`
}
