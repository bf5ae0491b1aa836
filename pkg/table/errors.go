package table

import "errors"

// Package-specific errors
var (
	// ErrEmptyInput is returned when the source contains no data at all,
	// not even a header row.
	ErrEmptyInput = errors.New("tabular source is empty")
)
