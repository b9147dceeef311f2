package alignment

import (
	"context"
	"log/slog"

	"slidesync/internal/logging"
	"slidesync/internal/textutil"
	"slidesync/internal/transcript"
)

// Runner aligns slide lists against transcripts with fixed options.
type Runner struct {
	opts   Options
	logger *slog.Logger
}

// NewRunner validates opts and returns a Runner. A nil logger discards output.
func NewRunner(opts Options, logger *slog.Logger) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "alignment"),
	}, nil
}

// Align runs a single alignment with a no-op logger.
func Align(entries []transcript.Entry, slides []string, opts Options) ([]TimingRecord, error) {
	runner, err := NewRunner(opts, nil)
	if err != nil {
		return nil, err
	}
	result, err := runner.Run(context.Background(), entries, slides)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// Run processes slides in order against entries. Entries must start in
// strictly increasing order; otherwise Run fails with a
// *transcript.ParseError wrapping transcript.ErrOutOfOrder before any slide
// is aligned. Empty slides are skipped without touching the pool or the
// clock. The first slide scoring below the threshold aborts the run with an
// *AlignmentError; Result.Records is nil in that case. ctx is checked between
// slides only.
//
// The last record ends at the final transcript entry's end only when the
// slides consume the whole transcript; with Result.Unconsumed > 0 its end is
// blended toward the next unconsumed entry like any other boundary.
func (r *Runner) Run(ctx context.Context, entries []transcript.Entry, slides []string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := transcript.CheckEntries(entries); err != nil {
		r.logger.Error("transcript entries rejected", logging.Error(err))
		return &Result{}, err
	}

	p := newPool(entries)
	c := &clock{}
	result := &Result{
		Records:     make([]TimingRecord, 0, len(slides)),
		Diagnostics: make([]SlideDiagnostic, 0, len(slides)),
	}

	r.logger.Debug("alignment started",
		logging.Int("entries", len(entries)),
		logging.Int("slides", len(slides)),
		logging.String("options", r.opts.String()))

	for index, slide := range slides {
		if err := ctx.Err(); err != nil {
			result.Records = nil
			return result, err
		}

		words := textutil.Words(slide)
		if len(words) == 0 {
			result.Skipped++
			r.logger.Debug("skipping empty slide", logging.Int(logging.FieldSlideIndex, index))
			continue
		}

		record, diag, err := r.step(index, slide, words, p, c)
		result.Diagnostics = append(result.Diagnostics, diag)
		if err != nil {
			result.Records = nil
			return result, err
		}
		result.Records = append(result.Records, record)
	}

	result.Unconsumed = len(p.remaining())
	if result.Unconsumed > 0 {
		r.logger.Warn("transcript entries left after last slide",
			logging.Int("unconsumed", result.Unconsumed),
			logging.Int("next_sequence_id", p.headSequenceID()))
	}
	r.logger.Debug("alignment finished",
		logging.Int("records", len(result.Records)),
		logging.Int("skipped", result.Skipped))
	return result, nil
}

// step aligns, gates, and times one non-empty slide.
func (r *Runner) step(index int, slide string, words []string, p *pool, c *clock) (TimingRecord, SlideDiagnostic, error) {
	logger := r.logger.With(logging.Int(logging.FieldSlideIndex, index))
	remaining := p.remaining()
	m := alignSlide(remaining, words, r.opts)

	diag := SlideDiagnostic{
		SlideIndex: index,
		SlideText:  slide,
		WordCount:  len(words),
		Matched:    m.count(),
		Missing:    m.missing,
		Correction: m.correction,
		Shift:      m.shift,
		Score:      m.score,
	}

	if m.missing > 0 {
		logger.Warn("transcript shorter than slide",
			logging.Int("missing", m.missing),
			logging.Int("words", len(words)))
	}
	if m.correction != CorrectionNone {
		logger.Warn("slide boundary corrected",
			logging.String("correction", string(m.correction)),
			logging.Int("shift", m.shift),
			logging.String("last_word", words[len(words)-1]))
	}

	if m.count() == 0 || m.score < float64(r.opts.MatchThreshold) {
		cause := ErrMatchBelowThreshold
		if m.count() == 0 {
			cause = ErrTranscriptExhausted
		}
		err := &AlignmentError{
			SlideIndex: index,
			SlideText:  slide,
			Score:      m.score,
			Threshold:  r.opts.MatchThreshold,
			Position:   p.consumed(),
			SequenceID: p.headSequenceID(),
			Err:        cause,
		}
		logger.Error("slide alignment rejected",
			logging.Float64(logging.FieldScore, m.score),
			logging.Int(logging.FieldThreshold, r.opts.MatchThreshold),
			logging.Int("position", p.consumed()),
			logging.String("slide_text", slide),
			logging.Error(cause))
		return TimingRecord{}, diag, err
	}

	diag.Accepted = true
	record := synthesize(slide, remaining, m.count(), c, r.opts.BlendWeight)
	p.consume(m.count())

	logger.Debug("slide aligned",
		logging.Float64(logging.FieldScore, m.score),
		logging.Int("entries", m.count()),
		logging.Float64("start_ms", record.StartMS),
		logging.Float64("end_ms", record.EndMS))
	return record, diag, nil
}
