package sheets

import "errors"

// Package-specific errors
var (
	// ErrInvalidSheetURL is returned when a URL does not contain a sheet key.
	ErrInvalidSheetURL = errors.New("not a Google Sheets URL")

	// ErrFetchFailed is returned when the CSV export cannot be downloaded,
	// typically because the sheet is not publicly viewable.
	ErrFetchFailed = errors.New("failed to fetch sheet")
)
