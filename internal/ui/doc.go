// Package ui provides helpers for formatting human-readable console output.
//
// The helpers translate git invocation events into concise messages so that
// verbose-mode feedback stays actionable while structured telemetry continues
// to flow through the zap logger.
package ui
