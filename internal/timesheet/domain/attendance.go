package timesheet

import (
	"strconv"
	"strings"
)

// CellClass is the interpretation of one day cell of a timesheet row.
type CellClass int

const (
	// ClassDayOff is a scheduled rest day. Not worked and not an anomaly.
	ClassDayOff CellClass = iota
	// ClassWorked is a regular worked day (the cell carries worked hours).
	ClassWorked
	// ClassWorkedHoliday explicitly marks work on a holiday or rest day.
	ClassWorkedHoliday
	// ClassAbsence is a recognized absence (vacation, sick leave, trip).
	ClassAbsence
	// ClassUnknown is a code outside the vocabulary.
	ClassUnknown
)

// CodeSet is the attendance-code vocabulary. The letter codes follow the
// legacy timesheets; the authoritative list is unconfirmed, so deployments
// may override it through configuration.
type CodeSet struct {
	DayOff        []string `yaml:"day_off"`
	WorkedHoliday []string `yaml:"worked_holiday"`
	Absence       []string `yaml:"absence"`
}

// DefaultCodes returns the vocabulary observed in the legacy timesheets.
func DefaultCodes() CodeSet {
	return CodeSet{
		DayOff:        []string{"В", "-"},
		WorkedHoliday: []string{"РВ", "РП"},
		Absence:       []string{"О", "ОТ", "Б", "К", "П"},
	}
}

// Classify interprets a raw cell value. Empty cells are rest days. A cell
// parseable as a number is a worked day (the sheets record worked hours, a
// comma decimal separator is common).
func (c CodeSet) Classify(raw string) CellClass {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ClassDayOff
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64); err == nil {
		return ClassWorked
	}
	upper := strings.ToUpper(value)
	if containsCode(c.DayOff, upper) {
		return ClassDayOff
	}
	if containsCode(c.WorkedHoliday, upper) {
		return ClassWorkedHoliday
	}
	if containsCode(c.Absence, upper) {
		return ClassAbsence
	}
	return ClassUnknown
}

func containsCode(codes []string, upper string) bool {
	for _, code := range codes {
		if strings.ToUpper(strings.TrimSpace(code)) == upper {
			return true
		}
	}
	return false
}

// DayCell is one (day of month, attendance code) pair.
type DayCell struct {
	Day  int
	Code string
}

// CellAnomaly records a day cell whose code is outside the vocabulary. The
// day is excluded from the worked-day count; the row itself still counts.
type CellAnomaly struct {
	Day  int
	Code string
}

// AttendanceRow is one employee line parsed from the uploaded timesheet.
// Rows keep their spreadsheet order, which downstream error reporting
// preserves.
type AttendanceRow struct {
	Line      int
	RawName   string
	Cells     []DayCell
	Anomalies []CellAnomaly
}
