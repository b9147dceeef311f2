// Package textutil provides the word-level text primitives used to line slide
// text up against transcript cues.
//
// The primary use cases are:
//   - Normalizing cue and slide text into comparable word lists
//   - Computing Levenshtein edit distance and the derived 0..1 similarity
//   - Scoring one word list against another with FuzzyMatchAverage
//
// All functions are pure and safe for concurrent use. Lengths and edit
// distances are measured in runes, not bytes.
package textutil
