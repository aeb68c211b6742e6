package interfaces

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"timesheet-kpi/internal/timesheet/application"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// BuildGeneralXLSX renders the full report workbook: a KPI sheet with one row
// per result and, only when findings exist, an Errors sheet.
func BuildGeneralXLSX(report *application.Report) ([]byte, error) {
	f := excelize.NewFile()
	kpiSheet := "KPI"
	f.SetSheetName("Sheet1", kpiSheet)

	headers := []string{
		"ФИО", "График", "Отдел",
		"Дней_назначено", "Дней_отработано", "Дней_не_отработано",
		"KPI_%", "KPI_план", "KPI_итог",
	}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(kpiSheet, cell, h)
	}
	for i, res := range report.Results {
		row := i + 2
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("A%d", row), res.FullName)
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("B%d", row), string(res.Schedule))
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("C%d", row), res.Department)
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("D%d", row), res.DaysAssigned)
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("E%d", row), res.DaysWorked)
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("F%d", row), res.DaysNotWorked)
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("G%d", row), res.CompletionPercent.InexactFloat64())
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("H%d", row), res.KPIBase.InexactFloat64())
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("I%d", row), res.KPIFinal.InexactFloat64())
	}

	if len(report.Errors) > 0 {
		errSheet := "Errors"
		_, _ = f.NewSheet(errSheet)
		_ = f.SetCellValue(errSheet, "A1", "ФИО")
		_ = f.SetCellValue(errSheet, "B1", "Тип")
		_ = f.SetCellValue(errSheet, "C1", "Детали")
		for i, e := range report.Errors {
			row := i + 2
			_ = f.SetCellValue(errSheet, fmt.Sprintf("A%d", row), e.FullName)
			_ = f.SetCellValue(errSheet, fmt.Sprintf("B%d", row), string(e.Kind))
			_ = f.SetCellValue(errSheet, fmt.Sprintf("C%d", row), e.Details)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildImportXLSX renders the payroll-import workbook. The sheet is
// headerless: row index, full name and the final figure rounded up to a whole
// number, which is what the downstream import expects.
func BuildImportXLSX(report *application.Report) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "1C"
	f.SetSheetName("Sheet1", sheet)

	for i, res := range report.Results {
		row := i + 1
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), res.FullName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), res.KPIFinal.Ceil().IntPart())
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildAccountingXLSX renders the accounting workbook. The base figure is
// split into two equal halves, each scaled by the same completion percent.
func BuildAccountingXLSX(report *application.Report) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Buh"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"ФИО", "KPI_план", "KPI_%", "KPI_итог",
		"КПР1_план", "КПР1_%", "КПР1_итог",
		"КПР2_план", "КПР2_%", "КПР2_итог",
	}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, res := range report.Results {
		row := i + 2
		half := decimal.Zero
		if res.KPIBase.IsPositive() {
			half = res.KPIBase.Div(two)
		}
		halfFinal := half.Mul(res.CompletionPercent).Div(hundred).Round(2)
		percent := res.CompletionPercent.InexactFloat64()

		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), res.FullName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), res.KPIBase.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), percent)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), res.KPIFinal.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), half.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), percent)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), halfFinal.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", row), half.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("I%d", row), percent)
		_ = f.SetCellValue(sheet, fmt.Sprintf("J%d", row), halfFinal.InexactFloat64())
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
