package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	calendar "timesheet-kpi/internal/calendar/domain"
	timesheet "timesheet-kpi/internal/timesheet/domain"
)

const (
	// kzNameHeader marks the name column of the institutional template; the
	// row below it carries the day numbers.
	kzNameHeader = "АТЫ-жөні (толығымен)"
	// simpleNameHeader marks the plain template with 01..31 day columns.
	simpleNameHeader = "Сотрудник"
)

// Reader parses one uploaded monthly timesheet workbook. It is a pure
// transform of bytes into attendance rows; nothing is persisted.
type Reader struct {
	uploadID string
	codes    timesheet.CodeSet
}

// NewReader constructs a reader with an upload id for log correlation.
func NewReader(codes timesheet.CodeSet) *Reader {
	return &Reader{uploadID: uuid.New().String(), codes: codes}
}

// UploadID returns the id assigned to this upload.
func (r *Reader) UploadID() string {
	return r.uploadID
}

// Parse reads the first worksheet and returns attendance rows in sheet
// order. The day columns must cover every day of the target month, else the
// whole parse fails; unknown attendance codes become soft per-row anomalies
// instead.
func (r *Reader) Parse(src io.Reader, year, month int) ([]timesheet.AttendanceRow, error) {
	if err := calendar.ValidatePeriod(year, month); err != nil {
		return nil, err
	}
	file, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", timesheet.ErrBadFormat, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, timesheet.ErrBadFormat
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", timesheet.ErrBadFormat, err)
	}

	if headerRow, nameCol, ok := findCell(rows, kzNameHeader); ok {
		return r.parseInstitutional(rows, headerRow, nameCol, year, month)
	}
	if len(rows) > 0 {
		if nameCol := findInRow(rows[0], simpleNameHeader); nameCol >= 0 {
			return r.parseSimple(rows, nameCol, year, month)
		}
	}
	return nil, fmt.Errorf("%w: neither %q header nor %q column found", timesheet.ErrBadFormat, kzNameHeader, simpleNameHeader)
}

// parseInstitutional handles the template where the day numbers sit on the
// row below the name header.
func (r *Reader) parseInstitutional(rows [][]string, headerRow, nameCol, year, month int) ([]timesheet.AttendanceRow, error) {
	dayHeaderRow := headerRow + 1
	if dayHeaderRow >= len(rows) {
		return nil, fmt.Errorf("%w: no day-number row below the name header", timesheet.ErrBadFormat)
	}
	dayCols, err := collectDayColumns(rows[dayHeaderRow], year, month, false)
	if err != nil {
		return nil, err
	}

	var out []timesheet.AttendanceRow
	for i := dayHeaderRow + 1; i < len(rows); i++ {
		name := strings.TrimSpace(getCell(rows[i], nameCol))
		if name == "" || name == kzNameHeader {
			continue
		}
		out = append(out, r.buildRow(i+1, name, rows[i], dayCols))
	}
	if len(out) == 0 {
		return nil, timesheet.ErrEmptyFile
	}
	return out, nil
}

// parseSimple handles the template with a header row of 01..31 columns.
func (r *Reader) parseSimple(rows [][]string, nameCol, year, month int) ([]timesheet.AttendanceRow, error) {
	dayCols, err := collectDayColumns(rows[0], year, month, true)
	if err != nil {
		return nil, err
	}

	var out []timesheet.AttendanceRow
	for i := 1; i < len(rows); i++ {
		name := strings.TrimSpace(getCell(rows[i], nameCol))
		if name == "" {
			continue
		}
		out = append(out, r.buildRow(i+1, name, rows[i], dayCols))
	}
	if len(out) == 0 {
		return nil, timesheet.ErrEmptyFile
	}
	return out, nil
}

func (r *Reader) buildRow(line int, name string, cells []string, dayCols []dayColumn) timesheet.AttendanceRow {
	row := timesheet.AttendanceRow{Line: line, RawName: name}
	for _, dc := range dayCols {
		code := strings.TrimSpace(getCell(cells, dc.col))
		if code == "" {
			continue
		}
		row.Cells = append(row.Cells, timesheet.DayCell{Day: dc.day, Code: code})
		if r.codes.Classify(code) == timesheet.ClassUnknown {
			row.Anomalies = append(row.Anomalies, timesheet.CellAnomaly{Day: dc.day, Code: code})
		}
	}
	return row
}

type dayColumn struct {
	col int
	day int
}

// collectDayColumns maps header cells to days of the month. twoDigit selects
// the 01..31 convention of the simple template. Every day of the target
// month must be present; the sheet's own weekday labels are never trusted.
func collectDayColumns(header []string, year, month int, twoDigit bool) ([]dayColumn, error) {
	seen := make(map[int]bool)
	var cols []dayColumn
	for col, value := range header {
		value = strings.TrimSpace(value)
		if twoDigit && len(value) != 2 {
			continue
		}
		day, err := strconv.Atoi(value)
		if err != nil || day < 1 || day > 31 {
			continue
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		cols = append(cols, dayColumn{col: col, day: day})
	}
	want := calendar.DaysInMonth(year, month)
	for day := 1; day <= want; day++ {
		if !seen[day] {
			return nil, fmt.Errorf("%w: day column %d missing for a %d-day month", timesheet.ErrBadFormat, day, want)
		}
	}
	return cols, nil
}

func findCell(rows [][]string, want string) (row, col int, ok bool) {
	for i, r := range rows {
		if c := findInRow(r, want); c >= 0 {
			return i, c, true
		}
	}
	return 0, 0, false
}

func findInRow(row []string, want string) int {
	for i, v := range row {
		if strings.TrimSpace(v) == want {
			return i
		}
	}
	return -1
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
