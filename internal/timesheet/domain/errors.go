package timesheet

import "errors"

var (
	// ErrInvalidNorm is returned when the day/shift norms are unusable.
	ErrInvalidNorm = errors.New("timesheet: day and shift norms must be non-negative and not both zero")
	// ErrBadFormat is returned when the uploaded file lacks the expected
	// structure (name column, day columns covering the month).
	ErrBadFormat = errors.New("timesheet: unrecognized timesheet format")
	// ErrEmptyFile is returned when the upload holds no data rows.
	ErrEmptyFile = errors.New("timesheet: no employee rows found")
)
