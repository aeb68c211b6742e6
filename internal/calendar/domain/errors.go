package calendar

import "errors"

var (
	// ErrInvalidPeriod is returned when year/month are missing or out of range.
	ErrInvalidPeriod = errors.New("calendar: year/month out of range")
	// ErrInvalidDate is returned for malformed holiday dates.
	ErrInvalidDate = errors.New("calendar: invalid date, expected YYYY-MM-DD")
	// ErrHolidayNotFound is returned when removing a holiday that is absent.
	ErrHolidayNotFound = errors.New("calendar: holiday not found")
)
