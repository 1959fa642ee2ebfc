// Package logger builds slog loggers from configuration: JSON output in
// prod, human-readable text elsewhere.
package logger
