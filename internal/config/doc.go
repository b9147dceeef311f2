// Package config loads, normalizes, and validates slidesync configuration.
//
// It supplies defaults, expands tilde paths, reads TOML files, and honours
// the SLIDESYNC_STATE_DIR and SLIDESYNC_LOG_LEVEL environment fallbacks.
// Alignment tuning is stored here as plain values; the alignment package
// owns their range checks.
package config
