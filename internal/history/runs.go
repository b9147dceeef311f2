package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"slidesync/internal/alignment"
)

const runColumns = "id, status, transcript_path, slides_path, output_path, match_threshold, max_offset, blend_weight, correction_order, entry_count, slide_count, record_count, skipped_count, unconsumed_count, error_kind, error_message, failed_slide, failed_score, diagnostics_json, started_at, finished_at"

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 20

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func now() string {
	return time.Now().UTC().Format(timeLayout)
}

// Begin inserts a running row and returns it.
func (s *Store) Begin(ctx context.Context, in Input) (*Run, error) {
	id := uuid.NewString()
	_, err := s.execWithRetry(ctx,
		`INSERT INTO runs (
            id, status, transcript_path, slides_path, output_path,
            match_threshold, max_offset, blend_weight, correction_order,
            entry_count, slide_count, started_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		StatusRunning,
		in.TranscriptPath,
		in.SlidesPath,
		nullableString(in.OutputPath),
		in.Options.MatchThreshold,
		in.Options.MaxOffset,
		in.Options.BlendWeight,
		string(in.Options.CorrectionOrder),
		in.EntryCount,
		in.SlideCount,
		now(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return s.Get(ctx, id)
}

// Complete marks a run succeeded and stores its counters and diagnostics.
func (s *Store) Complete(ctx context.Context, id string, result *alignment.Result) error {
	if result == nil {
		result = &alignment.Result{}
	}
	diagnostics, err := encodeDiagnostics(result.Diagnostics)
	if err != nil {
		return err
	}
	return s.finish(ctx, id,
		`UPDATE runs SET status = ?, record_count = ?, skipped_count = ?, unconsumed_count = ?,
            diagnostics_json = ?, finished_at = ? WHERE id = ?`,
		StatusSucceeded,
		len(result.Records),
		result.Skipped,
		result.Unconsumed,
		diagnostics,
		now(),
		id,
	)
}

// Fail marks a run failed. The error kind comes from ErrorClassifier, and an
// *alignment.AlignmentError also contributes the failing slide and score.
// result may be nil when the failure happened before alignment.
func (s *Store) Fail(ctx context.Context, id string, result *alignment.Result, cause error) error {
	var (
		diagnostics any
		failedSlide any
		failedScore any
	)
	if result != nil {
		encoded, err := encodeDiagnostics(result.Diagnostics)
		if err != nil {
			return err
		}
		diagnostics = encoded
	}
	var alignErr *alignment.AlignmentError
	if errors.As(cause, &alignErr) {
		failedSlide = alignErr.SlideIndex
		failedScore = alignErr.Score
	}
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return s.finish(ctx, id,
		`UPDATE runs SET status = ?, error_kind = ?, error_message = ?, failed_slide = ?,
            failed_score = ?, diagnostics_json = ?, finished_at = ? WHERE id = ?`,
		StatusFailed,
		ErrorKind(cause),
		nullableString(message),
		failedSlide,
		failedScore,
		diagnostics,
		now(),
		id,
	)
}

func (s *Store) finish(ctx context.Context, id, query string, args ...any) error {
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update run %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update run %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// ErrorKind classifies err for storage. Unclassified errors are "internal",
// context cancellation is "canceled".
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "internal"
}

// Get fetches a run by id. It returns nil, nil when no such run exists.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run          Run
		status       string
		outputPath   sql.NullString
		errorKind    sql.NullString
		errorMessage sql.NullString
		failedSlide  sql.NullInt64
		failedScore  sql.NullFloat64
		diagnostics  sql.NullString
		startedRaw   string
		finishedRaw  sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&status,
		&run.TranscriptPath,
		&run.SlidesPath,
		&outputPath,
		&run.MatchThreshold,
		&run.MaxOffset,
		&run.BlendWeight,
		&run.CorrectionOrder,
		&run.EntryCount,
		&run.SlideCount,
		&run.RecordCount,
		&run.Skipped,
		&run.Unconsumed,
		&errorKind,
		&errorMessage,
		&failedSlide,
		&failedScore,
		&diagnostics,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	run.Status = Status(status)
	run.OutputPath = outputPath.String
	run.ErrorKind = errorKind.String
	run.ErrorMessage = errorMessage.String
	if failedSlide.Valid {
		v := int(failedSlide.Int64)
		run.FailedSlide = &v
	}
	if failedScore.Valid {
		v := failedScore.Float64
		run.FailedScore = &v
	}
	if diagnostics.Valid && diagnostics.String != "" {
		if err := json.Unmarshal([]byte(diagnostics.String), &run.Diagnostics); err != nil {
			return nil, fmt.Errorf("decode diagnostics for run %s: %w", run.ID, err)
		}
	}
	started, err := time.Parse(time.RFC3339Nano, startedRaw)
	if err != nil {
		return nil, fmt.Errorf("parse started_at for run %s: %w", run.ID, err)
	}
	run.StartedAt = started
	if finishedRaw.Valid {
		if finished, err := time.Parse(time.RFC3339Nano, finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}

func encodeDiagnostics(diags []alignment.SlideDiagnostic) (any, error) {
	if len(diags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(diags)
	if err != nil {
		return nil, fmt.Errorf("encode diagnostics: %w", err)
	}
	return string(data), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
