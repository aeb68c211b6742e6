package timesheet

import (
	"fmt"

	roster "timesheet-kpi/internal/roster/domain"
)

// Matched pairs one attendance row with its unique roster entry.
type Matched struct {
	Employee roster.Employee
	Row      AttendanceRow
}

// MatchResult partitions both inputs: every attendance row and every roster
// entry ends up matched, unmatched or ambiguous, never in two buckets.
type MatchResult struct {
	Matched            []Matched
	UnmatchedRows      []AttendanceRow
	UnmatchedEmployees []roster.Employee
	Errors             []CalcError
}

// MatchRoster reconciles parsed rows against the roster snapshot by
// normalized full name. Ambiguity on either side excludes all candidates
// from calculation. Errors keep spreadsheet row order; roster-side
// advisories follow in roster order.
func MatchRoster(rows []AttendanceRow, employees []roster.Employee) MatchResult {
	byName := make(map[string][]roster.Employee, len(employees))
	for _, emp := range employees {
		key := roster.NormalizeFullName(emp.FullName)
		if key == "" {
			continue
		}
		byName[key] = append(byName[key], emp)
	}

	rowCount := make(map[string]int, len(rows))
	for _, row := range rows {
		key := roster.NormalizeFullName(row.RawName)
		if key == "" {
			continue
		}
		rowCount[key]++
	}

	var out MatchResult
	consumed := make(map[string]bool)

	for _, row := range rows {
		key := roster.NormalizeFullName(row.RawName)
		if key == "" {
			continue
		}
		candidates := byName[key]
		switch {
		case rowCount[key] > 1:
			consumed[key] = true
			out.Errors = append(out.Errors, CalcError{
				FullName: row.RawName,
				Kind:     KindAmbiguousMatch,
				Details:  fmt.Sprintf("full name appears in %d timesheet rows", rowCount[key]),
			})
		case len(candidates) > 1:
			consumed[key] = true
			out.Errors = append(out.Errors, CalcError{
				FullName: row.RawName,
				Kind:     KindAmbiguousMatch,
				Details:  fmt.Sprintf("full name matches %d roster entries", len(candidates)),
			})
		case len(candidates) == 1:
			consumed[key] = true
			out.Matched = append(out.Matched, Matched{Employee: candidates[0], Row: row})
		default:
			out.UnmatchedRows = append(out.UnmatchedRows, row)
			out.Errors = append(out.Errors, CalcError{
				FullName: row.RawName,
				Kind:     KindUnmatchedAttendance,
				Details:  "no roster entry for this full name",
			})
		}
	}

	for _, emp := range employees {
		key := roster.NormalizeFullName(emp.FullName)
		if key == "" {
			continue
		}
		if len(byName[key]) > 1 {
			out.Errors = append(out.Errors, CalcError{
				FullName: emp.FullName,
				Kind:     KindAmbiguousMatch,
				Details:  "duplicate full name in roster",
			})
			continue
		}
		if consumed[key] {
			continue
		}
		// An employee absent from the timesheet is advisory only; no
		// zero-days result row is fabricated for them.
		out.UnmatchedEmployees = append(out.UnmatchedEmployees, emp)
		out.Errors = append(out.Errors, CalcError{
			FullName: emp.FullName,
			Kind:     KindUnmatchedRoster,
			Details:  "no timesheet row for this roster entry",
		})
	}

	return out
}
