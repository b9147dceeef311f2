package transcript

import "fmt"

// Entry is one parsed cue. Entries are immutable once parsed.
type Entry struct {
	SequenceID int    `json:"sequence_id"`
	StartMS    int    `json:"start_ms"`
	EndMS      int    `json:"end_ms"`
	Text       string `json:"text"`
}

// Validate checks the per-cue timing invariants.
func (e Entry) Validate() error {
	if e.StartMS < 0 {
		return fmt.Errorf("cue %d: start_ms cannot be negative", e.SequenceID)
	}
	if e.EndMS < e.StartMS {
		return fmt.Errorf("cue %d: end_ms %d precedes start_ms %d", e.SequenceID, e.EndMS, e.StartMS)
	}
	return nil
}

// CheckEntries reports the first entry that breaks the per-cue invariants or
// does not start strictly after its predecessor. Parse never returns such a
// list; the check guards entries built by other means.
func CheckEntries(entries []Entry) error {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return &ParseError{Err: fmt.Errorf("entry %d: %w", i, err)}
		}
		if i > 0 && e.StartMS <= entries[i-1].StartMS {
			return &ParseError{Err: fmt.Errorf("entry %d (cue %d) starts at %d ms, not after %d ms: %w",
				i, e.SequenceID, e.StartMS, entries[i-1].StartMS, ErrOutOfOrder)}
		}
	}
	return nil
}

// LastEndMS returns the end of the final entry, or 0 for an empty list.
func LastEndMS(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	return entries[len(entries)-1].EndMS
}
