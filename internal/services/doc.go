// Package services defines shared utilities consumed by the rendering,
// synthesis, and composition pipelines and their external integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     (configuration, validation, missing inputs, environment, external
//     tools) so the CLI maps them to consistent exit behaviour.
//   - Context helpers that stamp correlation identifiers for logging.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform across commands.
package services
