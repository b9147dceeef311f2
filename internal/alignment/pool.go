package alignment

import (
	"slidesync/internal/textutil"
	"slidesync/internal/transcript"
)

// cue pairs a transcript entry with its normalized text.
type cue struct {
	entry transcript.Entry
	norm  string
}

// pool holds the not-yet-consumed transcript entries of one run. Entries are
// only ever consumed from the front, so a cursor is enough.
type pool struct {
	cues   []cue
	cursor int
}

func newPool(entries []transcript.Entry) *pool {
	cues := make([]cue, len(entries))
	for i, entry := range entries {
		cues[i] = cue{entry: entry, norm: textutil.Normalize(entry.Text)}
	}
	return &pool{cues: cues}
}

func (p *pool) remaining() []cue {
	return p.cues[p.cursor:]
}

func (p *pool) consumed() int {
	return p.cursor
}

// consume drops the first n remaining entries.
func (p *pool) consume(n int) {
	p.cursor = min(p.cursor+n, len(p.cues))
}

// headSequenceID returns the id of the first remaining entry, or -1.
func (p *pool) headSequenceID() int {
	if p.cursor >= len(p.cues) {
		return -1
	}
	return p.cues[p.cursor].entry.SequenceID
}
