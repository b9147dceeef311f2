package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCheckFileReadable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "talk.srt")
	writeFile(t, file)

	tests := []struct {
		name   string
		path   string
		passed bool
	}{
		{name: "ok", path: file, passed: true},
		{name: "missing", path: filepath.Join(dir, "nope.srt")},
		{name: "directory", path: dir},
		{name: "empty", path: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckFileReadable("Transcript", tt.path)
			if result.Passed != tt.passed {
				t.Fatalf("Passed = %v, detail %q", result.Passed, result.Detail)
			}
			if result.Detail == "" {
				t.Fatal("expected non-empty detail")
			}
		})
	}
}

func TestCheckWritableDir(t *testing.T) {
	dir := t.TempDir()
	if r := CheckWritableDir("out", dir); !r.Passed {
		t.Fatalf("expected pass, got %q", r.Detail)
	}
	nested := filepath.Join(dir, "a", "b")
	r := CheckWritableDir("out", nested)
	if !r.Passed || !strings.Contains(r.Detail, "will be created") {
		t.Fatalf("expected pass for creatable dir, got %+v", r)
	}

	file := filepath.Join(dir, "file.txt")
	writeFile(t, file)
	if r := CheckWritableDir("out", filepath.Join(file, "sub")); r.Passed {
		t.Fatal("expected failure below a regular file")
	}
}

func TestCheckOutputWritableRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if r := CheckOutputWritable("Output", dir); r.Passed {
		t.Fatal("expected failure when output path is a directory")
	}
	if r := CheckOutputWritable("Output", filepath.Join(dir, "timing.json")); !r.Passed {
		t.Fatalf("expected pass, got %q", r.Detail)
	}
}

func TestRunAllAndFailureError(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := filepath.Join(dir, "talk.srt")
	slidesPath := filepath.Join(dir, "slides.json")
	writeFile(t, transcriptPath)
	writeFile(t, slidesPath)

	results := RunAll(Request{
		TranscriptPath: transcriptPath,
		SlidesPath:     slidesPath,
		OutputPath:     filepath.Join(dir, "out", "timing.json"),
		StateDir:       filepath.Join(dir, "state"),
	})
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	if err := FailureError(results); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}

	results = RunAll(Request{TranscriptPath: filepath.Join(dir, "missing.srt"), SlidesPath: slidesPath})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	err := FailureError(results)
	if err == nil || !strings.Contains(err.Error(), "Transcript") {
		t.Fatalf("expected transcript failure, got %v", err)
	}
}
