// Package services defines shared utilities consumed across the
// deduplication pipeline.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, pipeline stage names, and
//     source tags for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     into the pipeline's error taxonomy (invalid data, missing model,
//     configuration, validation).
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across stages.
package services
