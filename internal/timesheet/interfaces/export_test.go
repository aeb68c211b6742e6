package interfaces

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"timesheet-kpi/internal/timesheet/application"

	roster "timesheet-kpi/internal/roster/domain"
	timesheet "timesheet-kpi/internal/timesheet/domain"
)

func sampleReport() *application.Report {
	return &application.Report{
		UploadID: "upload-1",
		Year:     2025,
		Month:    7,
		Results: []timesheet.CalcResult{{
			FullName:          "Иванов Иван Иванович",
			Schedule:          roster.ScheduleDay,
			Department:        "operations",
			DaysAssigned:      21,
			DaysWorked:        20,
			DaysNotWorked:     1,
			CompletionPercent: decimal.RequireFromString("95.24"),
			KPIBase:           decimal.NewFromInt(11000),
			KPIFinal:          decimal.RequireFromString("10476.19"),
		}},
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	value, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("get cell %s!%s: %v", sheet, cell, err)
	}
	return value
}

func TestBuildGeneralXLSX(t *testing.T) {
	report := sampleReport()
	report.Errors = []timesheet.CalcError{{
		FullName: "Петров Пётр Петрович",
		Kind:     timesheet.KindUnmatchedAttendance,
		Details:  "no roster entry for this full name",
	}}

	data, err := BuildGeneralXLSX(report)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f := openWorkbook(t, data)
	defer f.Close()

	if got := cellValue(t, f, "KPI", "A1"); got != "ФИО" {
		t.Fatalf("unexpected header %q", got)
	}
	if got := cellValue(t, f, "KPI", "A2"); got != "Иванов Иван Иванович" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := cellValue(t, f, "KPI", "G2"); got != "95.24" {
		t.Fatalf("unexpected percent %q", got)
	}
	if got := cellValue(t, f, "KPI", "I2"); got != "10476.19" {
		t.Fatalf("unexpected final %q", got)
	}
	if idx, _ := f.GetSheetIndex("Errors"); idx < 0 {
		t.Fatalf("expected an Errors sheet")
	}
	if got := cellValue(t, f, "Errors", "B2"); got != "UNMATCHED_ATTENDANCE" {
		t.Fatalf("unexpected error kind %q", got)
	}
}

func TestBuildGeneralXLSXNoErrorsSheet(t *testing.T) {
	data, err := BuildGeneralXLSX(sampleReport())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f := openWorkbook(t, data)
	defer f.Close()

	if idx, _ := f.GetSheetIndex("Errors"); idx >= 0 {
		t.Fatalf("Errors sheet must be omitted when there are no findings")
	}
}

func TestBuildImportXLSX(t *testing.T) {
	data, err := BuildImportXLSX(sampleReport())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f := openWorkbook(t, data)
	defer f.Close()

	// Headerless: the first row is already data, the final is rounded up.
	if got := cellValue(t, f, "1C", "A1"); got != "1" {
		t.Fatalf("unexpected index %q", got)
	}
	if got := cellValue(t, f, "1C", "B1"); got != "Иванов Иван Иванович" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := cellValue(t, f, "1C", "C1"); got != "10477" {
		t.Fatalf("expected ceiling 10477, got %q", got)
	}
}

func TestBuildAccountingXLSX(t *testing.T) {
	data, err := BuildAccountingXLSX(sampleReport())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f := openWorkbook(t, data)
	defer f.Close()

	if got := cellValue(t, f, "Buh", "B2"); got != "11000" {
		t.Fatalf("unexpected plan %q", got)
	}
	if got := cellValue(t, f, "Buh", "E2"); got != "5500" {
		t.Fatalf("expected half plan 5500, got %q", got)
	}
	if got := cellValue(t, f, "Buh", "G2"); got != "5238.2" {
		t.Fatalf("expected half final 5238.2, got %q", got)
	}
	if got := cellValue(t, f, "Buh", "H2"); got != "5500" {
		t.Fatalf("expected second half plan 5500, got %q", got)
	}
	if got := cellValue(t, f, "Buh", "J2"); got != "5238.2" {
		t.Fatalf("expected second half final 5238.2, got %q", got)
	}
}

func TestBuildSummaryPDF(t *testing.T) {
	data, err := BuildSummaryPDF(sampleReport())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q", data[:8])
	}
}
