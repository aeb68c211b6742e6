package timesheet

import (
	"github.com/shopspring/decimal"

	roster "timesheet-kpi/internal/roster/domain"
)

// ErrorKind enumerates row-level data-quality errors.
type ErrorKind string

const (
	KindAmbiguousMatch      ErrorKind = "AMBIGUOUS_MATCH"
	KindUnmatchedAttendance ErrorKind = "UNMATCHED_ATTENDANCE"
	KindUnmatchedRoster     ErrorKind = "UNMATCHED_ROSTER"
	KindZeroAssignedDays    ErrorKind = "ZERO_ASSIGNED_DAYS"
	KindUnrecognizedCode    ErrorKind = "UNRECOGNIZED_CODE"
	KindExcludedCategory    ErrorKind = "EXCLUDED_CATEGORY"
)

// CalcError is one non-fatal data-quality finding. Fatal conditions are Go
// errors, never CalcErrors.
type CalcError struct {
	FullName string    `json:"full_name,omitempty"`
	Kind     ErrorKind `json:"kind"`
	Details  string    `json:"details"`
}

// CalcResult is the per-employee evaluation. Every matched, non-excluded
// employee yields exactly one result, warnings included.
type CalcResult struct {
	FullName          string              `json:"full_name"`
	Schedule          roster.ScheduleKind `json:"schedule"`
	Department        string              `json:"department"`
	DaysAssigned      int                 `json:"days_assigned"`
	DaysWorked        int                 `json:"days_worked"`
	DaysNotWorked     int                 `json:"days_not_worked"`
	CompletionPercent decimal.Decimal     `json:"completion_percent"`
	KPIBase           decimal.Decimal     `json:"kpi_base"`
	KPIFinal          decimal.Decimal     `json:"kpi_final"`
}
