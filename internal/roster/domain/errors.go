package roster

import "errors"

var (
	// ErrEmptyFullName is returned when a full name is blank.
	ErrEmptyFullName = errors.New("roster: empty full name")
	// ErrNonPositiveKPIBase is returned when the KPI base amount is not > 0.
	ErrNonPositiveKPIBase = errors.New("roster: kpi base amount must be positive")
	// ErrUnknownSchedule is returned for a schedule kind outside day/shift.
	ErrUnknownSchedule = errors.New("roster: unknown schedule kind")
	// ErrEmptyDepartment is returned when the department is blank.
	ErrEmptyDepartment = errors.New("roster: empty department")
	// ErrEmployeeNotFound is returned when an employee id does not exist.
	ErrEmployeeNotFound = errors.New("roster: employee not found")
)
