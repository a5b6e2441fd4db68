// Package logger provides shared slog attribute helpers so that log fields
// keep consistent keys across the order and notification packages.
package logger
