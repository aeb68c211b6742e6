package roster

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleKind classifies how an employee's assigned days are counted.
type ScheduleKind string

const (
	// ScheduleDay follows the standard weekday pattern.
	ScheduleDay ScheduleKind = "day"
	// ScheduleDuty is a rotating around-the-clock duty pattern.
	ScheduleDuty ScheduleKind = "shift"
)

// CategoryStudent marks employees excluded from KPI evaluation.
const CategoryStudent = "4"

// Employee is one roster entry eligible for KPI evaluation.
type Employee struct {
	ID           int64
	FullName     string
	KPIBase      decimal.Decimal
	Schedule     ScheduleKind
	Department   string
	CategoryCode string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    time.Time
	DeleteReason string
}

// Deleted reports whether the entry has been soft-deleted.
func (e *Employee) Deleted() bool {
	return !e.DeletedAt.IsZero()
}

// Validate checks invariants for storing an employee.
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.FullName) == "" {
		return ErrEmptyFullName
	}
	if !e.KPIBase.IsPositive() {
		return ErrNonPositiveKPIBase
	}
	if e.Schedule != ScheduleDay && e.Schedule != ScheduleDuty {
		return ErrUnknownSchedule
	}
	if strings.TrimSpace(e.Department) == "" {
		return ErrEmptyDepartment
	}
	return nil
}

// NormalizeFullName trims, collapses internal whitespace and lowercases a
// full name so that timesheet rows and roster entries compare equal
// regardless of spacing or case. Cyrillic names are handled by the Unicode
// case tables.
func NormalizeFullName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// ParseScheduleKind maps stored or submitted values to a ScheduleKind,
// defaulting to the day schedule the way the legacy roster did.
func ParseScheduleKind(value string) ScheduleKind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ScheduleDuty), "duty":
		return ScheduleDuty
	default:
		return ScheduleDay
	}
}
