package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"slidesync/internal/alignment"
	"slidesync/internal/testsupport"
	"slidesync/internal/timingfile"
)

func TestAlignWritesTimingFile(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath, slidesPath := env.writeFixtures(t,
		testsupport.WordCues("hello", "world", "today"),
		`[{"text": "Hello, world!"}, {"text": ""}, {"text": "today"}]`)
	outPath := filepath.Join(env.baseDir, "out", "timing.json")

	out, _, err := runCLI(t, []string{"align", "-t", transcriptPath, "-s", slidesPath, "-o", outPath}, env.configPath)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	requireContains(t, out, "Wrote 2 slide timings")
	requireContains(t, out, "Skipped 1 empty slides")

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read timing file: %v", err)
	}
	var timings []timingfile.SlideTiming
	if err := json.Unmarshal(data, &timings); err != nil {
		t.Fatalf("decode timing file: %v", err)
	}
	want := []timingfile.SlideTiming{{Text: "Hello, world!", Timing: 2}, {Text: "today", Timing: 1}}
	if len(timings) != len(want) || timings[0] != want[0] || timings[1] != want[1] {
		t.Fatalf("timings = %+v, want %+v", timings, want)
	}
}

func TestAlignJSONAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath, slidesPath := env.writeFixtures(t,
		testsupport.WordCues("hello", "world", "today"),
		`["hello world", "today"]`)

	out, _, err := runCLI(t, []string{"align", "-t", transcriptPath, "-s", slidesPath, "--format", "records", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	var summary alignSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary %q: %v", out, err)
	}
	if summary.RunID == "" || summary.Format != "records" || len(summary.Records) != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.OutputPath != env.cfg.Output.Path {
		t.Fatalf("output = %q, want config default %q", summary.OutputPath, env.cfg.Output.Path)
	}
	if got := summary.Records[1]; got.StartMS != 2000 || got.EndMS != 3000 {
		t.Fatalf("second record = %+v", got)
	}

	out, _, err = runCLI(t, []string{"runs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("runs list: %v", err)
	}
	requireContains(t, out, summary.RunID)
	requireContains(t, out, "succeeded")

	out, _, err = runCLI(t, []string{"runs", "show", summary.RunID}, env.configPath)
	if err != nil {
		t.Fatalf("runs show: %v", err)
	}
	requireContains(t, out, "Status:      succeeded")
	requireContains(t, out, "hello world")
}

func TestAlignFailureWritesNothing(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath, slidesPath := env.writeFixtures(t,
		testsupport.WordCues("hello", "world", "banana"),
		`["hello world", "completely different"]`)
	outPath := filepath.Join(env.baseDir, "out", "timing.json")

	_, _, err := runCLI(t, []string{"align", "-t", transcriptPath, "-s", slidesPath, "-o", outPath}, env.configPath)
	if err == nil {
		t.Fatal("expected alignment failure")
	}
	var alignErr *alignment.AlignmentError
	if !errors.As(err, &alignErr) || alignErr.SlideIndex != 1 {
		t.Fatalf("expected AlignmentError for slide 1, got %v", err)
	}
	requireContains(t, err.Error(), "threshold 90")
	requireContains(t, err.Error(), `"completely different"`)
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Fatalf("timing file should not exist, stat err = %v", statErr)
	}

	out, _, err := runCLI(t, []string{"runs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("runs list: %v", err)
	}
	requireContains(t, out, "failed")
	requireContains(t, out, "alignment")
}

func TestAlignRejectsInvalidOptions(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath, slidesPath := env.writeFixtures(t, testsupport.WordCues("hello"), `["hello"]`)

	tests := [][]string{
		{"--threshold", "150"},
		{"--blend", "2"},
		{"--blend", "NaN"},
		{"--max-offset", "-1"},
		{"--correction-order", "sideways"},
	}
	for _, extra := range tests {
		args := append([]string{"align", "-t", transcriptPath, "-s", slidesPath}, extra...)
		_, _, err := runCLI(t, args, env.configPath)
		if !errors.Is(err, alignment.ErrInvalidConfig) {
			t.Fatalf("%v: expected ErrInvalidConfig, got %v", extra, err)
		}
	}
}

func TestAlignThresholdFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithThreshold(100))
	transcriptPath, slidesPath := env.writeFixtures(t, testsupport.WordCues("hello", "word"), `["hello world"]`)

	if _, _, err := runCLI(t, []string{"align", "-t", transcriptPath, "-s", slidesPath}, env.configPath); err == nil {
		t.Fatal("expected failure at configured threshold 100")
	}
	if _, _, err := runCLI(t, []string{"align", "-t", transcriptPath, "-s", slidesPath, "--threshold", "90"}, env.configPath); err != nil {
		t.Fatalf("expected success with --threshold 90: %v", err)
	}
}

func TestAlignPreflightFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	_, slidesPath := env.writeFixtures(t, testsupport.WordCues("hello"), `["hello"]`)

	_, _, err := runCLI(t, []string{"align", "-t", filepath.Join(env.baseDir, "missing.srt"), "-s", slidesPath}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	requireContains(t, err.Error(), "preflight failed")
	requireContains(t, err.Error(), "Transcript")
}

func TestAlignWithoutHistory(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithHistoryDisabled())
	transcriptPath, slidesPath := env.writeFixtures(t, testsupport.WordCues("hello"), `["hello"]`)

	if _, _, err := runCLI(t, []string{"align", "-t", transcriptPath, "-s", slidesPath}, env.configPath); err != nil {
		t.Fatalf("align: %v", err)
	}
	if _, err := os.Stat(env.cfg.HistoryPath()); !os.IsNotExist(err) {
		t.Fatalf("history database should not exist, stat err = %v", err)
	}
	_, _, err := runCLI(t, []string{"runs", "list"}, env.configPath)
	if !errors.Is(err, errHistoryDisabled) {
		t.Fatalf("expected errHistoryDisabled, got %v", err)
	}
}

func TestInspectShowsDiagnostics(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath, slidesPath := env.writeFixtures(t,
		testsupport.WordCues("alpha", "gamma", "delta", "epsilon"),
		`["alpha beta gamma delta", "epsilon"]`)

	out, _, err := runCLI(t, []string{"inspect", "-t", transcriptPath, "-s", slidesPath}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "contract -1")
	requireContains(t, out, "100.00")
	requireContains(t, out, "ok")

	out, _, err = runCLI(t, []string{"inspect", "-t", transcriptPath, "-s", slidesPath, "--threshold", "100", "--max-offset", "0"}, env.configPath)
	if err == nil {
		t.Fatal("expected failure without boundary correction")
	}
	requireContains(t, out, "rejected")
}
