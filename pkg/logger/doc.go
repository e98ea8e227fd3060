// Package logger provides structured logging with configurable log levels.
// It wraps the standard log/slog package and keeps diagnostics on a writer
// separate from the tool's result output.
package logger
