// Package logging assembles structured slog loggers and formatting helpers used
// across dedup commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and colours console lines by severity when the destination is a
// terminal. The package also provides a no-op logger for tests and wiring code
// that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
