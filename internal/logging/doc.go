// Package logging assembles the structured slog loggers used across tvbrowse.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing (including an optional size-rotated log file), and exposes
// context-aware helpers so fetches and state transitions are tagged with
// request IDs and show IDs. A no-op logger is provided for tests and wiring
// code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
