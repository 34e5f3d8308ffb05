// Package logging builds slog loggers for the CLI and batch processor.
//
// Two output shapes are supported: a compact console format (UTC timestamp,
// level, message, key=value attributes) and line-delimited JSON. Output can
// fan out to stdout/stderr and a log file simultaneously.
package logging
