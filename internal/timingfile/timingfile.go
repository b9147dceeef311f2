// Package timingfile serializes timing records for the slide renderer.
package timingfile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"slidesync/internal/alignment"
	"slidesync/internal/fileutil"
)

// Format selects the on-disk shape.
type Format string

const (
	// FormatTiming is the renderer contract: one {"text", "timing"} object
	// per slide with the duration in seconds.
	FormatTiming Format = "timing"
	// FormatRecords keeps the full millisecond records.
	FormatRecords Format = "records"
)

// ParseFormat accepts "timing" or "records"; empty means timing.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatTiming:
		return FormatTiming, nil
	case FormatRecords:
		return FormatRecords, nil
	default:
		return "", fmt.Errorf("unknown timing format %q (want timing or records)", value)
	}
}

// SlideTiming is one element of the timing format.
type SlideTiming struct {
	Text string `json:"text"`
	// Timing is the display duration in seconds, rounded to two decimals.
	Timing float64 `json:"timing"`
}

// Timings converts records to the renderer shape.
func Timings(records []alignment.TimingRecord) []SlideTiming {
	out := make([]SlideTiming, len(records))
	for i, r := range records {
		out[i] = SlideTiming{Text: r.SlideText, Timing: r.DurationSeconds()}
	}
	return out
}

// Encode renders records as indented JSON in the given format.
func Encode(records []alignment.TimingRecord, format Format) ([]byte, error) {
	var payload any
	switch format {
	case FormatTiming, "":
		payload = Timings(records)
	case FormatRecords:
		if records == nil {
			records = []alignment.TimingRecord{}
		}
		payload = records
	default:
		return nil, fmt.Errorf("unknown timing format %q", format)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode timing: %w", err)
	}
	return append(data, '\n'), nil
}

// Write encodes records and replaces path atomically while holding the
// path's sidecar lock.
func Write(ctx context.Context, path string, records []alignment.TimingRecord, format Format) error {
	data, err := Encode(records, format)
	if err != nil {
		return err
	}
	return fileutil.WithLock(ctx, path, func() error {
		return fileutil.WriteFileAtomic(path, data, 0o644)
	})
}
