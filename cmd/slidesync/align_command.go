package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"slidesync/internal/alignment"
	"slidesync/internal/config"
	"slidesync/internal/history"
	"slidesync/internal/logging"
	"slidesync/internal/preflight"
	"slidesync/internal/timingfile"
)

type alignSummary struct {
	RunID      string                   `json:"run_id"`
	OutputPath string                   `json:"output_path"`
	Format     string                   `json:"format"`
	Skipped    int                      `json:"skipped"`
	Unconsumed int                      `json:"unconsumed"`
	Records    []alignment.TimingRecord `json:"records"`
}

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var flags alignFlags
	var outputPath string
	var format string

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Align slides to a transcript and write the timing file",
		Long: `Align walks the slides in order, matches each one against the next
transcript entries, and writes one display duration per non-empty slide.

The run aborts on the first slide whose match score is below the threshold;
no timing file is written in that case.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Output.Format
			}
			outFormat, err := timingfile.ParseFormat(format)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") {
				outputPath = cfg.Output.Path
			}
			target, err := config.ExpandPath(strings.TrimSpace(outputPath))
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			transcriptPath, slidesPath, err := flags.resolvePaths()
			if err != nil {
				return err
			}
			req := preflight.Request{TranscriptPath: transcriptPath, SlidesPath: slidesPath, OutputPath: target}
			if cfg.History.Enabled {
				req.StateDir = cfg.Paths.StateDir
			}
			if err := preflight.FailureError(preflight.RunAll(req)); err != nil {
				return err
			}

			in, err := loadInputs(transcriptPath, slidesPath)
			if err != nil {
				return err
			}

			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			runID := uuid.NewString()
			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}
			if store != nil {
				run, err := store.Begin(runCtx, history.Input{
					TranscriptPath: in.transcriptPath,
					SlidesPath:     in.slidesPath,
					OutputPath:     target,
					Options:        opts,
					EntryCount:     len(in.entries),
					SlideCount:     len(in.slides),
				})
				if err != nil {
					return err
				}
				runID = run.ID
			}
			runCtx = logging.WithRunID(runCtx, runID)
			runLogger := logging.WithContext(runCtx, logger)

			runLogger.Info("alignment run started",
				logging.String("transcript", in.transcriptPath),
				logging.String("slides", in.slidesPath),
				logging.Int("entries", len(in.entries)),
				logging.Int("slide_count", len(in.slides)),
				logging.String("options", opts.String()))

			runner, err := alignment.NewRunner(opts, runLogger)
			if err != nil {
				return err
			}
			result, runErr := runner.Run(runCtx, in.entries, in.slides)
			if runErr == nil {
				runErr = timingfile.Write(runCtx, target, result.Records, outFormat)
			}
			if runErr != nil {
				if store != nil {
					if err := store.Fail(context.WithoutCancel(runCtx), runID, result, runErr); err != nil {
						runLogger.Warn("record failed run", logging.Error(err))
					}
				}
				return describeRunError(runErr)
			}
			if store != nil {
				if err := store.Complete(runCtx, runID, result); err != nil {
					runLogger.Warn("record completed run", logging.Error(err))
				}
			}

			runLogger.Info("timing file written",
				logging.String("path", target),
				logging.String("format", string(outFormat)),
				logging.Int("records", len(result.Records)))

			if flags.json {
				return writeJSON(cmd, alignSummary{
					RunID:      runID,
					OutputPath: target,
					Format:     string(outFormat),
					Skipped:    result.Skipped,
					Unconsumed: result.Unconsumed,
					Records:    result.Records,
				})
			}

			out := cmd.OutOrStdout()
			renderRecords(out, result.Records)
			fmt.Fprintf(out, "Wrote %d slide timings to %s (run %s)\n", len(result.Records), target, runID)
			if result.Skipped > 0 {
				fmt.Fprintf(out, "Skipped %d empty slides\n", result.Skipped)
			}
			if result.Unconsumed > 0 {
				fmt.Fprintf(out, "Warning: %d transcript entries were not matched to any slide\n", result.Unconsumed)
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Timing file path (default output.path)")
	cmd.Flags().StringVar(&format, "format", string(timingfile.FormatTiming), "Timing file format: timing or records")
	return cmd
}

// describeRunError adds a hint to alignment failures.
func describeRunError(err error) error {
	var alignErr *alignment.AlignmentError
	if !errors.As(err, &alignErr) {
		return err
	}
	hint := "split the slide or lower --threshold"
	if errors.Is(err, alignment.ErrTranscriptExhausted) {
		hint = "the transcript ended before this slide; check that slides and transcript belong together"
	}
	return fmt.Errorf("alignment failed: %w (%s)", err, hint)
}

func renderRecords(w io.Writer, records []alignment.TimingRecord) {
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			slideCell(r.SlideText),
			formatSeconds(r.StartMS),
			formatSeconds(r.EndMS),
			formatSeconds(r.DurationMS),
		})
	}
	renderTabular(w, []string{"#", "Slide", "Start", "End", "Duration"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight})
}
