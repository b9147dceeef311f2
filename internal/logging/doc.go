// Package logging builds the slog loggers used by slidesync.
//
// It owns the console and JSON handlers, level parsing, and output fan-out
// to stdout plus an optional log file. Context helpers tag log lines with
// the current run ID so every record of one alignment can be grepped
// together. NewNop serves tests and callers that pass a nil logger.
package logging
