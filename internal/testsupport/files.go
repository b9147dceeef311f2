package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Cue is a fixture subtitle block.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// WordCues returns one cue per word, each lasting a second, back to back.
func WordCues(words ...string) []Cue {
	cues := make([]Cue, len(words))
	for i, w := range words {
		cues[i] = Cue{Start: time.Duration(i) * time.Second, End: time.Duration(i+1) * time.Second, Text: w}
	}
	return cues
}

// WriteSRT renders cues as an SRT file at path.
func WriteSRT(t testing.TB, path string, cues []Cue) {
	t.Helper()

	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, srtTimestamp(cue.Start), srtTimestamp(cue.End), cue.Text)
	}
	WriteText(t, path, b.String())
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func srtTimestamp(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3_600_000, ms/60_000%60, ms/1000%60, ms%1000)
}
