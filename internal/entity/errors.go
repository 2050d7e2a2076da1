package entity

import "errors"

// Domain errors
var (
	// Query errors
	ErrEmptyQuery = errors.New("query is empty")
	ErrSuperseded = errors.New("submission superseded by a newer one")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Export errors
	ErrNothingToExport   = errors.New("no answer to export")
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
