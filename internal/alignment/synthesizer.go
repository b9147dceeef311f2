package alignment

import "math"

// clock is the running state of one run, reset at the start of every run
// and advanced once per accepted slide.
type clock struct {
	lastEndMS  float64
	slideIndex int
}

// synthesize turns the first count remaining entries into a TimingRecord and
// advances c. count must be in [1, len(remaining)].
func synthesize(text string, remaining []cue, count int, c *clock, blend float64) TimingRecord {
	start := 0.0
	if c.slideIndex > 0 {
		start = c.lastEndMS
	}

	last := remaining[count-1].entry
	end := float64(last.EndMS)
	if count < len(remaining) {
		next := remaining[count].entry
		end = blendBoundary(float64(last.EndMS), float64(next.StartMS), blend)
	}

	c.lastEndMS = end
	c.slideIndex++
	return TimingRecord{
		SlideText:  text,
		StartMS:    start,
		EndMS:      end,
		DurationMS: end - start,
	}
}

// blendBoundary interpolates between the matched cue's end and the next
// cue's start; weight 0.5 is the midpoint.
func blendBoundary(matchedEnd, nextStart, weight float64) float64 {
	return weight*matchedEnd + (1-weight)*nextStart
}

func roundHundredths(value float64) float64 {
	return math.Round(value*100) / 100
}
