package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"slidesync/internal/alignment"
	"slidesync/internal/preflight"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var flags alignFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show per-slide match diagnostics without writing a timing file",
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
			transcriptPath, slidesPath, err := flags.resolvePaths()
			if err != nil {
				return err
			}
			if err := preflight.FailureError(preflight.RunAll(preflight.Request{
				TranscriptPath: transcriptPath,
				SlidesPath:     slidesPath,
			})); err != nil {
				return err
			}
			in, err := loadInputs(transcriptPath, slidesPath)
			if err != nil {
				return err
			}

			runner, err := alignment.NewRunner(opts, logger)
			if err != nil {
				return err
			}
			result, runErr := runner.Run(cmd.Context(), in.entries, in.slides)

			if flags.json {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
				return describeRunError(runErr)
			}

			out := cmd.OutOrStdout()
			renderDiagnostics(out, result.Diagnostics, opts.MatchThreshold)
			fmt.Fprintf(out, "Transcript entries: %d, slides: %d, skipped: %d\n", len(in.entries), len(in.slides), result.Skipped)
			if runErr == nil && result.Unconsumed > 0 {
				fmt.Fprintf(out, "Unconsumed transcript entries: %d\n", result.Unconsumed)
			}
			return describeRunError(runErr)
		},
	}

	flags.bind(cmd)
	return cmd
}

func renderDiagnostics(w io.Writer, diags []alignment.SlideDiagnostic, threshold int) {
	colorize := isTerminal(w)
	rows := make([][]string, 0, len(diags))
	for _, d := range diags {
		shift := "-"
		if d.Correction != alignment.CorrectionNone {
			shift = fmt.Sprintf("%s %+d", d.Correction, signedShift(d))
		}
		rows = append(rows, []string{
			strconv.Itoa(d.SlideIndex),
			slideCell(d.SlideText),
			strconv.Itoa(d.WordCount),
			strconv.Itoa(d.Matched),
			strconv.Itoa(d.Missing),
			shift,
			fmt.Sprintf("%.2f", d.Score),
			verdict(d.Accepted, colorize),
		})
	}
	renderTabular(w,
		[]string{"Slide", "Text", "Words", "Entries", "Missing", "Correction", "Score", fmt.Sprintf("≥%d", threshold)},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight, alignLeft})
}

func signedShift(d alignment.SlideDiagnostic) int {
	if d.Correction == alignment.CorrectionContract {
		return -d.Shift
	}
	return d.Shift
}

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
)

func verdict(accepted, colorize bool) string {
	label, color := "rejected", ansiRed
	if accepted {
		label, color = "ok", ansiGreen
	}
	if !colorize {
		return label
	}
	return color + label + ansiReset
}
