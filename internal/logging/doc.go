// Package logging assembles structured slog loggers used across vynlassets.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing (stdout plus the log file under the configured log directory), and
// exposes context helpers so copy runs tag every line with their run ID and
// operation. The package also provides a no-op logger for tests.
//
// Prefer these constructors over hand-rolled slog setup so every command emits
// lines with the same shape.
package logging
