// Package alignment reconstructs start and end times for slide texts by
// matching their words against a time-coded transcript.
//
// Slides are processed strictly in order. For each non-empty slide the
// aligner takes as many transcript entries as the slide has words from the
// front of the remaining pool, optionally shifts the right boundary by up to
// MaxOffset entries so the last words agree, scores the result with
// textutil.FuzzyMatchAverage, and either accepts it or aborts the whole run
// with an AlignmentError. Accepted ranges are consumed from the pool and
// turned into chained TimingRecords: each record starts where the previous
// one ended, and the final record ends exactly when its last cue ends.
//
// A Runner owns no state between runs; every call to Run builds its own pool
// and clock, so independent runs may execute concurrently.
package alignment
