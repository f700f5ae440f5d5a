// Package config loads, normalizes, and validates dedup configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// resolver, the journal, and the timestamp patcher need, so command code can
// layer flag overrides on top of one sanitized value.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors. Checks
// that touch the filesystem (for example, that the move directory exists) are
// left to the resolver so they happen at run time.
package config
