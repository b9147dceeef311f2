package alignment

import (
	"slidesync/internal/textutil"
)

// match is the aligned range for one slide, relative to the front of the
// remaining pool.
type match struct {
	// words holds the normalized text of each aligned entry.
	words      []string
	missing    int
	correction Correction
	shift      int
	score      float64
}

// count is the number of pool entries the match covers.
func (m match) count() int {
	return len(m.words)
}

// alignSlide builds the positional hypothesis for slideWords, applies at
// most one boundary correction, and scores the result. It never looks
// behind the front of remaining.
func alignSlide(remaining []cue, slideWords []string, opts Options) match {
	n := min(len(slideWords), len(remaining))
	m := match{
		words:      make([]string, 0, n+opts.MaxOffset),
		missing:    len(slideWords) - n,
		correction: CorrectionNone,
	}
	for i := 0; i < n; i++ {
		m.words = append(m.words, remaining[i].norm)
	}

	last := slideWords[len(slideWords)-1]
	if lastOf(m.words) != last && opts.MaxOffset > 0 {
		switch opts.CorrectionOrder {
		case ExpandFirst:
			if !m.expand(remaining, last, opts.MaxOffset) {
				m.contract(last, opts.MaxOffset)
			}
		default:
			if !m.contract(last, opts.MaxOffset) {
				m.expand(remaining, last, opts.MaxOffset)
			}
		}
	}

	m.score = textutil.FuzzyMatchAverage(m.words, slideWords)
	return m
}

// contract trims the aligned range so it ends at the nearest of its last
// maxOffset elements equal to last.
func (m *match) contract(last string, maxOffset int) bool {
	for k := 0; k < maxOffset && k < len(m.words); k++ {
		if m.words[len(m.words)-1-k] != last {
			continue
		}
		if k == 0 {
			return true
		}
		m.words = m.words[:len(m.words)-k]
		m.correction = CorrectionContract
		m.shift = k
		return true
	}
	return false
}

// expand extends the aligned range through the first of the next maxOffset
// pool entries equal to last. The search starts at the current right
// boundary of the range.
func (m *match) expand(remaining []cue, last string, maxOffset int) bool {
	from := len(m.words)
	for i := 0; i < maxOffset; i++ {
		idx := from + i
		if idx >= len(remaining) {
			return false
		}
		if remaining[idx].norm != last {
			continue
		}
		for j := from; j <= idx; j++ {
			m.words = append(m.words, remaining[j].norm)
		}
		m.correction = CorrectionExpand
		m.shift = idx - from + 1
		return true
	}
	return false
}

func lastOf(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}
