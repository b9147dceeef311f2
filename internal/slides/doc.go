// Package slides loads ordered slide texts from JSON, YAML, or plain text
// files. Empty slides are kept in place; the aligner decides to skip them.
package slides
