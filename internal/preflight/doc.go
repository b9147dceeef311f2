// Package preflight checks filesystem access before an alignment run.
//
// `slidesync align` runs every check before reading any input so that a
// missing transcript or a read-only output directory is reported together
// with the other problems instead of one at a time.
package preflight
