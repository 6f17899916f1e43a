// Package services defines shared utilities consumed by the pipeline stage
// handlers and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp production identifiers and stage names for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures as
//     run-aborting or recoverable.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
