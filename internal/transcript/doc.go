// Package transcript parses time-coded subtitle text into ordered cue entries.
//
// Input follows the SRT cue convention: an index line, a
// `HH:MM:SS,mmm --> HH:MM:SS,mmm` timing line, one or more text lines, and a
// blank line between cues. Blocks that do not match are dropped silently;
// only input that cannot be decoded as text at all is an error.
package transcript
