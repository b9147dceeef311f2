// Package main hosts the slidesync CLI.
//
// The Cobra command tree loads configuration once per invocation, runs
// preflight checks, and hands parsed transcripts and slide lists to the
// alignment package. Timing files, run history, and table rendering are
// wired here; the algorithms live under internal/.
package main
