// Package config loads, normalizes, and validates vidio configuration data.
//
// It supplies built-in defaults, reads an optional TOML file, and applies
// VIDIO_* environment overrides on top. The Config type carries the tool
// paths, the shared encoding defaults used by the re-encoding commands, and
// the GIF, grid and logging knobs.
//
// Always obtain settings through this package so commands receive trimmed
// values, canonical log formats, and clear validation errors.
package config
