package history_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"slidesync/internal/alignment"
	"slidesync/internal/history"
	"slidesync/internal/testsupport"
	"slidesync/internal/transcript"
)

func beginRun(t *testing.T, store *history.Store) *history.Run {
	t.Helper()
	run, err := store.Begin(context.Background(), history.Input{
		TranscriptPath: "/tmp/talk.srt",
		SlidesPath:     "/tmp/slides.json",
		OutputPath:     "/tmp/slides-timing.json",
		Options:        alignment.DefaultOptions(),
		EntryCount:     3,
		SlideCount:     2,
	})
	if err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	return run
}

func TestBeginStoresRunningRun(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	run := beginRun(t, store)

	if run.ID == "" || run.Status != history.StatusRunning {
		t.Fatalf("unexpected run %+v", run)
	}
	if run.MatchThreshold != 90 || run.MaxOffset != 3 || run.BlendWeight != 0.5 || run.CorrectionOrder != "contract_first" {
		t.Fatalf("options not stored: %+v", run)
	}
	if run.EntryCount != 3 || run.SlideCount != 2 {
		t.Fatalf("counts not stored: %+v", run)
	}
	if run.FinishedAt != nil || run.Duration() != 0 {
		t.Fatal("running run should not be finished")
	}
}

func TestCompleteStoresResult(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	run := beginRun(t, store)

	runner, err := alignment.NewRunner(alignment.DefaultOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	entries := []transcript.Entry{
		{SequenceID: 1, StartMS: 0, EndMS: 1000, Text: "hello"},
		{SequenceID: 2, StartMS: 1000, EndMS: 2000, Text: "world"},
		{SequenceID: 3, StartMS: 2000, EndMS: 3000, Text: "today"},
	}
	res, err := runner.Run(context.Background(), entries, []string{"hello world", ""})
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Complete(context.Background(), run.ID, res); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	got, err := store.Get(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Status != history.StatusSucceeded || got.RecordCount != 1 || got.Skipped != 1 || got.Unconsumed != 1 {
		t.Fatalf("unexpected run %+v", got)
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Score != 100 {
		t.Fatalf("diagnostics not round-tripped: %+v", got.Diagnostics)
	}
	if got.FinishedAt == nil {
		t.Fatal("expected finished_at")
	}
}

func TestFailStoresAlignmentDetails(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	run := beginRun(t, store)

	cause := &alignment.AlignmentError{SlideIndex: 4, SlideText: "x", Score: 42.5, Threshold: 90, Err: alignment.ErrMatchBelowThreshold}
	if err := store.Fail(context.Background(), run.ID, nil, fmt.Errorf("align: %w", cause)); err != nil {
		t.Fatalf("Fail returned error: %v", err)
	}
	got, err := store.Get(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Status != history.StatusFailed || got.ErrorKind != "alignment" {
		t.Fatalf("unexpected run %+v", got)
	}
	if got.FailedSlide == nil || *got.FailedSlide != 4 || got.FailedScore == nil || *got.FailedScore != 42.5 {
		t.Fatalf("failure details missing: %+v", got)
	}
	if got.ErrorMessage == "" {
		t.Fatal("expected error message")
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: errors.New("boom"), want: "internal"},
		{err: &alignment.ConfigError{Field: "max_offset"}, want: "configuration"},
		{err: &transcript.ParseError{Source: "a.srt", Err: transcript.ErrUndecodable}, want: "parse"},
		{err: fmt.Errorf("wrapped: %w", context.Canceled), want: "canceled"},
	}
	for _, tt := range tests {
		if got := history.ErrorKind(tt.err); got != tt.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	var ids []string
	for range 3 {
		ids = append(ids, beginRun(t, store).ID)
	}

	runs, err := store.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("unexpected order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestGetMissingAndUnknownUpdate(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	run, err := store.Get(context.Background(), "nope")
	if err != nil || run != nil {
		t.Fatalf("Get(missing) = %v, %v", run, err)
	}
	if err := store.Complete(context.Background(), "nope", nil); err == nil {
		t.Fatal("expected error completing unknown run")
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	run := beginRun(t, store)
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened := testsupport.MustOpenHistory(t, cfg)
	got, err := reopened.Get(context.Background(), run.ID)
	if err != nil || got == nil {
		t.Fatalf("run lost after reopen: %v", err)
	}
	if reopened.Path() != filepath.Join(cfg.Paths.StateDir, "history.db") {
		t.Fatalf("unexpected path %q", reopened.Path())
	}
}
