package timesheet

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	calendar "timesheet-kpi/internal/calendar/domain"
	roster "timesheet-kpi/internal/roster/domain"
)

var hundred = decimal.NewFromInt(100)

// Calculator applies the KPI business formula for one evaluated month. It is
// built once per request and holds no state beyond the request inputs.
type Calculator struct {
	year      int
	month     int
	normDay   int
	normShift int
	holidays  *calendar.DaySet
	codes     CodeSet
}

// NewCalculator validates the period and norms up front: a bad norm pair or
// period aborts the whole request before any per-employee work.
func NewCalculator(year, month, normDay, normShift int, holidays *calendar.DaySet, codes CodeSet) (*Calculator, error) {
	if err := calendar.ValidatePeriod(year, month); err != nil {
		return nil, err
	}
	if normDay < 0 || normShift < 0 {
		return nil, ErrInvalidNorm
	}
	if normDay == 0 && normShift == 0 {
		return nil, ErrInvalidNorm
	}
	if holidays == nil {
		holidays = calendar.NewDaySet(year, month)
	}
	return &Calculator{
		year:      year,
		month:     month,
		normDay:   normDay,
		normShift: normShift,
		holidays:  holidays,
		codes:     codes,
	}, nil
}

// Calculate evaluates every matched employee. Each non-excluded employee
// yields exactly one result; warnings are accumulated alongside, so partial
// success is the default posture.
func (c *Calculator) Calculate(matched []Matched) ([]CalcResult, []CalcError) {
	results := make([]CalcResult, 0, len(matched))
	var errs []CalcError

	for _, pair := range matched {
		emp := pair.Employee
		if strings.TrimSpace(emp.CategoryCode) == roster.CategoryStudent {
			errs = append(errs, CalcError{
				FullName: emp.FullName,
				Kind:     KindExcludedCategory,
				Details:  "category code 4 is excluded from KPI evaluation",
			})
			continue
		}

		for _, anomaly := range pair.Row.Anomalies {
			errs = append(errs, CalcError{
				FullName: emp.FullName,
				Kind:     KindUnrecognizedCode,
				Details:  fmt.Sprintf("day %d: unrecognized attendance code %q", anomaly.Day, anomaly.Code),
			})
		}

		assigned := c.normDay
		if emp.Schedule == roster.ScheduleDuty {
			assigned = c.normShift
		}
		worked := c.countWorkedDays(emp.Schedule, pair.Row)

		result := CalcResult{
			FullName:     emp.FullName,
			Schedule:     emp.Schedule,
			Department:   emp.Department,
			DaysAssigned: assigned,
			DaysWorked:   worked,
			KPIBase:      emp.KPIBase,
		}
		if assigned == 0 {
			// Still emit the row so the caller gets one result per matched
			// employee; the percent is zero, never a division fault.
			errs = append(errs, CalcError{
				FullName: emp.FullName,
				Kind:     KindZeroAssignedDays,
				Details:  "assigned days is zero for this schedule kind",
			})
			result.CompletionPercent = decimal.Zero
			result.KPIFinal = decimal.Zero
			results = append(results, result)
			continue
		}

		result.DaysNotWorked = assigned - worked
		if result.DaysNotWorked < 0 {
			result.DaysNotWorked = 0
		}

		workedDec := decimal.NewFromInt(int64(worked))
		assignedDec := decimal.NewFromInt(int64(assigned))
		// Percent is not capped at 100: over-performance stays visible.
		// The final amount is derived from the unrounded ratio so the
		// display rounding of the percent does not leak into money.
		result.CompletionPercent = workedDec.Mul(hundred).Div(assignedDec).Round(2)
		result.KPIFinal = emp.KPIBase.Mul(workedDec).Div(assignedDec).Round(2)
		results = append(results, result)
	}

	return results, errs
}

// countWorkedDays applies the schedule-specific policy. A duty-shift roster
// spans weekends and holidays by design, so every worked cell counts. A
// day-shift employee gets no credit for a plain worked cell on a holiday
// date; only the explicit worked-on-holiday codes count there.
func (c *Calculator) countWorkedDays(kind roster.ScheduleKind, row AttendanceRow) int {
	worked := 0
	for _, cell := range row.Cells {
		switch c.codes.Classify(cell.Code) {
		case ClassWorked:
			if kind == roster.ScheduleDay && c.holidays.Contains(cell.Day) {
				continue
			}
			worked++
		case ClassWorkedHoliday:
			worked++
		}
	}
	return worked
}
