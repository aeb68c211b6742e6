package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"timesheet-kpi/internal/timesheet/application"
)

// BuildSummaryPDF renders a one-page overview of a calculation run. Names are
// transliterated only by the font fallback; the table layout matches the
// general workbook.
func BuildSummaryPDF(report *application.Report) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")

	pdf.Cell(0, 8, "KPI Summary")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %04d-%02d", report.Year, report.Month))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Upload: %s", report.UploadID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Rows: %d   Findings: %d", len(report.Results), len(report.Errors)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(80, 6, "Full name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Schedule", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Assigned", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Worked", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Percent", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Final", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, res := range report.Results {
		pdf.CellFormat(80, 6, tr(res.FullName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, string(res.Schedule), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", res.DaysAssigned), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", res.DaysWorked), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, res.CompletionPercent.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, res.KPIFinal.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if len(report.Errors) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 9)
		pdf.Cell(0, 6, "Findings")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 9)
		for _, e := range report.Errors {
			pdf.Cell(0, 5, tr(fmt.Sprintf("%s: %s %s", e.Kind, e.FullName, e.Details)))
			pdf.Ln(4)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
