// Package logging assembles structured slog loggers used across the
// deduplication pipeline.
//
// It centralizes level and output plumbing for console/JSON handlers and
// exposes context-aware helpers so pipeline code automatically tags log lines
// with run identifiers, stage names, and source tags. A no-op logger is
// provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
