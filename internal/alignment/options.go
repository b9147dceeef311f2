package alignment

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultMatchThreshold is the minimum accepted FuzzyMatchAverage score.
	DefaultMatchThreshold = 90
	// DefaultMaxOffset bounds the boundary-correction search window.
	DefaultMaxOffset = 3
	// DefaultBlendWeight places inter-slide boundaries at the midpoint between
	// the last matched cue's end and the next cue's start.
	DefaultBlendWeight = 0.5
)

// CorrectionOrder selects which boundary-correction pass is tried first.
type CorrectionOrder string

const (
	// ContractFirst searches backwards inside the positional range before
	// looking past it.
	ContractFirst CorrectionOrder = "contract_first"
	// ExpandFirst looks past the positional range before searching inside it.
	ExpandFirst CorrectionOrder = "expand_first"
)

// ParseCorrectionOrder accepts the canonical names plus a few spellings.
func ParseCorrectionOrder(value string) (CorrectionOrder, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "contract_first", "contract-first", "contract":
		return ContractFirst, nil
	case "expand_first", "expand-first", "expand":
		return ExpandFirst, nil
	default:
		return "", &ConfigError{Field: "correction_order", Value: value, Reason: "must be contract_first or expand_first"}
	}
}

// Options tunes a run.
type Options struct {
	// MatchThreshold is a percentage in [0,100].
	MatchThreshold int
	// MaxOffset is the number of entries the boundary may move; 0 disables
	// correction.
	MaxOffset int
	// BlendWeight is the share of the matched cue's end time in an
	// inter-slide boundary; the next cue's start gets 1-BlendWeight.
	BlendWeight     float64
	CorrectionOrder CorrectionOrder
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		MatchThreshold:  DefaultMatchThreshold,
		MaxOffset:       DefaultMaxOffset,
		BlendWeight:     DefaultBlendWeight,
		CorrectionOrder: ContractFirst,
	}
}

// Validate rejects out-of-range values with a ConfigError.
func (o Options) Validate() error {
	if o.MatchThreshold < 0 || o.MatchThreshold > 100 {
		return &ConfigError{Field: "match_threshold", Value: o.MatchThreshold, Reason: "must be between 0 and 100"}
	}
	if o.MaxOffset < 0 {
		return &ConfigError{Field: "max_offset", Value: o.MaxOffset, Reason: "must not be negative"}
	}
	if math.IsNaN(o.BlendWeight) || o.BlendWeight < 0 || o.BlendWeight > 1 {
		return &ConfigError{Field: "blend_weight", Value: o.BlendWeight, Reason: "must be between 0 and 1"}
	}
	switch o.CorrectionOrder {
	case ContractFirst, ExpandFirst:
	case "":
		return &ConfigError{Field: "correction_order", Value: "", Reason: "must be set"}
	default:
		return &ConfigError{Field: "correction_order", Value: string(o.CorrectionOrder), Reason: "must be contract_first or expand_first"}
	}
	return nil
}

func (o Options) String() string {
	return fmt.Sprintf("threshold=%d max_offset=%d blend=%.2f order=%s",
		o.MatchThreshold, o.MaxOffset, o.BlendWeight, o.CorrectionOrder)
}
