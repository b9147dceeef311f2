package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"slidesync/internal/history"
)

var errHistoryDisabled = errors.New("run history is disabled (history.enabled = false)")

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect past alignment runs",
	}
	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	return runsCmd
}

func withHistory(ctx *commandContext, fn func(*history.Store) error) error {
	store, err := ctx.openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return errHistoryDisabled
	}
	defer store.Close()
	return fn(store)
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					if runs == nil {
						runs = []*history.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						string(run.Status),
						run.StartedAt.Local().Format("2006-01-02 15:04:05"),
						strconv.Itoa(run.SlideCount),
						strconv.Itoa(run.RecordCount),
						formatDuration(run.Duration()),
						dash(run.ErrorKind),
					})
				}
				renderTabular(out,
					[]string{"ID", "Status", "Started", "Slides", "Records", "Took", "Error"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft})
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run with its slide diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", args[0])
				}
				if asJSON {
					return writeJSON(cmd, run)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run:         %s\n", run.ID)
				fmt.Fprintf(out, "Status:      %s\n", run.Status)
				fmt.Fprintf(out, "Started:     %s\n", run.StartedAt.Local().Format(time.RFC3339))
				fmt.Fprintf(out, "Took:        %s\n", formatDuration(run.Duration()))
				fmt.Fprintf(out, "Transcript:  %s (%d entries)\n", run.TranscriptPath, run.EntryCount)
				fmt.Fprintf(out, "Slides:      %s (%d slides, %d skipped)\n", run.SlidesPath, run.SlideCount, run.Skipped)
				fmt.Fprintf(out, "Output:      %s\n", dash(run.OutputPath))
				fmt.Fprintf(out, "Options:     threshold=%d max_offset=%d blend=%.2f order=%s\n",
					run.MatchThreshold, run.MaxOffset, run.BlendWeight, run.CorrectionOrder)
				fmt.Fprintf(out, "Records:     %d (unconsumed entries: %d)\n", run.RecordCount, run.Unconsumed)
				if run.Status == history.StatusFailed {
					fmt.Fprintf(out, "Error:       [%s] %s\n", run.ErrorKind, run.ErrorMessage)
					if run.FailedSlide != nil && run.FailedScore != nil {
						fmt.Fprintf(out, "Failed at:   slide %d, score %.2f\n", *run.FailedSlide, *run.FailedScore)
					}
				}
				if len(run.Diagnostics) > 0 {
					fmt.Fprintln(out)
					renderDiagnostics(out, run.Diagnostics, run.MatchThreshold)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
