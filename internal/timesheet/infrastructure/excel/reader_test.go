package excel

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	timesheet "timesheet-kpi/internal/timesheet/domain"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func simpleHeader(days int) []any {
	header := []any{"Сотрудник"}
	for day := 1; day <= days; day++ {
		header = append(header, fmt.Sprintf("%02d", day))
	}
	return header
}

func kzDayRow(days int) []any {
	row := []any{nil}
	for day := 1; day <= days; day++ {
		row = append(row, day)
	}
	return row
}

func dataRow(name string, codes map[int]string, days int) []any {
	row := []any{name}
	for day := 1; day <= days; day++ {
		if code, ok := codes[day]; ok {
			row = append(row, code)
		} else {
			row = append(row, nil)
		}
	}
	return row
}

func TestParseSimpleTemplate(t *testing.T) {
	src := buildWorkbook(t, [][]any{
		simpleHeader(31),
		dataRow("Иванов Иван Иванович", map[int]string{1: "8", 2: "8", 3: "В"}, 31),
		dataRow("Петров Пётр Петрович", map[int]string{1: "24", 4: "РВ"}, 31),
	})

	reader := NewReader(timesheet.DefaultCodes())
	rows, err := reader.Parse(src, 2025, 7)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].RawName != "Иванов Иван Иванович" {
		t.Fatalf("unexpected name %q", rows[0].RawName)
	}
	if len(rows[0].Cells) != 3 {
		t.Fatalf("expected 3 filled cells, got %d", len(rows[0].Cells))
	}
	if rows[1].Cells[1].Day != 4 || rows[1].Cells[1].Code != "РВ" {
		t.Fatalf("unexpected cell %+v", rows[1].Cells[1])
	}
	if reader.UploadID() == "" {
		t.Fatalf("expected a non-empty upload id")
	}
}

func TestParseInstitutionalTemplate(t *testing.T) {
	src := buildWorkbook(t, [][]any{
		{"Табель учета рабочего времени"},
		{"АТЫ-жөні (толығымен)"},
		kzDayRow(31),
		dataRow("Иванов Иван Иванович", map[int]string{1: "8", 7: "ЯЯ"}, 31),
	})

	reader := NewReader(timesheet.DefaultCodes())
	rows, err := reader.Parse(src, 2025, 7)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if len(rows[0].Anomalies) != 1 || rows[0].Anomalies[0].Day != 7 {
		t.Fatalf("expected one anomaly on day 7, got %v", rows[0].Anomalies)
	}
}

func TestParseMissingDayColumn(t *testing.T) {
	header := simpleHeader(31)
	header[15] = "xx" // drop day 15

	src := buildWorkbook(t, [][]any{
		header,
		dataRow("Иванов Иван Иванович", map[int]string{1: "8"}, 31),
	})

	reader := NewReader(timesheet.DefaultCodes())
	if _, err := reader.Parse(src, 2025, 7); !errors.Is(err, timesheet.ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
}

func TestParseUnknownTemplate(t *testing.T) {
	src := buildWorkbook(t, [][]any{
		{"whatever", "columns"},
		{"Иванов", "8"},
	})

	reader := NewReader(timesheet.DefaultCodes())
	if _, err := reader.Parse(src, 2025, 7); !errors.Is(err, timesheet.ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
}

func TestParseEmptyData(t *testing.T) {
	src := buildWorkbook(t, [][]any{simpleHeader(31)})

	reader := NewReader(timesheet.DefaultCodes())
	if _, err := reader.Parse(src, 2025, 7); !errors.Is(err, timesheet.ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestParseGarbageBytes(t *testing.T) {
	reader := NewReader(timesheet.DefaultCodes())
	if _, err := reader.Parse(strings.NewReader("not a workbook"), 2025, 7); !errors.Is(err, timesheet.ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
}

func TestParseInvalidPeriod(t *testing.T) {
	reader := NewReader(timesheet.DefaultCodes())
	if _, err := reader.Parse(strings.NewReader(""), 2025, 0); err == nil {
		t.Fatalf("expected an error for invalid period")
	}
}
