package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"slidesync/internal/alignment"
	"slidesync/internal/config"
	"slidesync/internal/slides"
	"slidesync/internal/transcript"
)

// alignFlags are shared by align and inspect. Unset tuning flags fall back
// to the [alignment] section of the config.
type alignFlags struct {
	transcriptPath  string
	slidesPath      string
	threshold       int
	maxOffset       int
	blendWeight     float64
	correctionOrder string
	json            bool
}

func (f *alignFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.transcriptPath, "transcript", "t", "", "SRT transcript file")
	flags.StringVarP(&f.slidesPath, "slides", "s", "", "Slide list (.json, .yaml, .yml, .txt)")
	flags.IntVar(&f.threshold, "threshold", alignment.DefaultMatchThreshold, "Minimum match percentage per slide (0-100)")
	flags.IntVar(&f.maxOffset, "max-offset", alignment.DefaultMaxOffset, "How far a slide boundary may move, in transcript entries")
	flags.Float64Var(&f.blendWeight, "blend", alignment.DefaultBlendWeight, "Share of the matched cue end in each slide boundary (0-1)")
	flags.StringVar(&f.correctionOrder, "correction-order", string(alignment.ContractFirst), "contract_first or expand_first")
	flags.BoolVar(&f.json, "json", false, "Emit JSON instead of a table")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("slides")
}

// options merges config values with explicitly set flags and validates the
// result, returning an *alignment.ConfigError on bad values.
func (f *alignFlags) options(cmd *cobra.Command, cfg *config.Config) (alignment.Options, error) {
	opts := alignmentOptions(cfg)

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		opts.MatchThreshold = f.threshold
	}
	if flags.Changed("max-offset") {
		opts.MaxOffset = f.maxOffset
	}
	if flags.Changed("blend") {
		opts.BlendWeight = f.blendWeight
	}
	if flags.Changed("correction-order") {
		order, err := alignment.ParseCorrectionOrder(f.correctionOrder)
		if err != nil {
			return alignment.Options{}, err
		}
		opts.CorrectionOrder = order
	}

	if err := opts.Validate(); err != nil {
		return alignment.Options{}, err
	}
	return opts, nil
}

type inputs struct {
	transcriptPath string
	slidesPath     string
	entries        []transcript.Entry
	slides         []string
}

func (f *alignFlags) resolvePaths() (string, string, error) {
	transcriptPath, err := config.ExpandPath(strings.TrimSpace(f.transcriptPath))
	if err != nil {
		return "", "", fmt.Errorf("resolve transcript path: %w", err)
	}
	slidesPath, err := config.ExpandPath(strings.TrimSpace(f.slidesPath))
	if err != nil {
		return "", "", fmt.Errorf("resolve slides path: %w", err)
	}
	return transcriptPath, slidesPath, nil
}

func loadInputs(transcriptPath, slidesPath string) (*inputs, error) {
	entries, err := transcript.ReadFile(transcriptPath)
	if err != nil {
		return nil, err
	}
	texts, err := slides.Load(slidesPath)
	if err != nil {
		return nil, err
	}
	return &inputs{
		transcriptPath: transcriptPath,
		slidesPath:     slidesPath,
		entries:        entries,
		slides:         texts,
	}, nil
}
