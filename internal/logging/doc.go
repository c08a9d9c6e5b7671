// Package logging provides structured logging utilities for cadence.
//
// All packages log through log/slog. This package builds the root logger from
// the configured level and format and centralizes attribute naming so that log
// lines from the engine, the calendar adapter and the snapshot stores can be
// correlated.
//
// # Usage Patterns
//
//	logger, err := logging.New("info", logging.FormatJSON, os.Stderr)
//	logger = logging.WithOperation(logger, "refresh")
//	logger.Info("due date computed", logging.UserHash(email))
//
// # Security Considerations
//
// People's email addresses are hashed with UserHash before they are logged.
// OAuth tokens are never logged directly; use SanitizeToken.
package logging
