package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"schedscan/internal/batch"
)

const sheetName = "Schedules"

// xlsx caps a cell at 32767 characters; longer schedule text is truncated
// rather than failing the whole workbook.
const maxCellChars = 32767

var columnWidths = []struct {
	col   string
	width float64
}{
	{"A", 25},  // Sport
	{"B", 50},  // Source File
	{"C", 20},  // Pages Found
	{"D", 100}, // Schedule Text
	{"E", 15},  // Has Duplicate
}

// WriteWorkbook renders the rows to an xlsx file at path, one row per
// extraction, plus a small run-summary sheet.
func WriteWorkbook(path string, rows []Row, outcome *batch.Outcome) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("workbook setup: %w", err)
	}

	header := []any{"Sport", "Source File", "Pages Found", "Schedule Text", "Has Duplicate"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("workbook header: %w", err)
	}

	for i, row := range rows {
		dup := "No"
		if row.HasDuplicate {
			dup = "Yes"
		}
		cells := []any{
			row.Sport,
			row.SourceFile,
			row.PagesFound,
			truncate(row.ScheduleText, maxCellChars),
			dup,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("workbook row %d: %w", i+2, err)
		}
	}

	for _, cw := range columnWidths {
		if err := f.SetColWidth(sheetName, cw.col, cw.col, cw.width); err != nil {
			return fmt.Errorf("workbook widths: %w", err)
		}
	}

	if len(rows) > 0 {
		wrap, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		})
		if err != nil {
			return fmt.Errorf("workbook style: %w", err)
		}
		last := fmt.Sprintf("D%d", len(rows)+1)
		if err := f.SetCellStyle(sheetName, "D2", last, wrap); err != nil {
			return fmt.Errorf("workbook style: %w", err)
		}
	}

	if err := writeRunSheet(f, outcome); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// writeRunSheet records run provenance so a workbook can be traced back to
// the batch that produced it.
func writeRunSheet(f *excelize.File, outcome *batch.Outcome) error {
	const sheet = "Run"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("run sheet: %w", err)
	}

	lines := [][]any{
		{"Run ID", outcome.RunID},
		{"Documents", outcome.DocumentCount()},
		{"Sports", len(outcome.Groups)},
		{"Duplicates", len(outcome.Duplicates)},
		{"Open failures", len(outcome.Failures)},
	}
	for _, fail := range outcome.Failures {
		lines = append(lines, []any{"Failed", fail.Filename, fail.Err.Error()})
	}
	for i, line := range lines {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return fmt.Errorf("run sheet: %w", err)
		}
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
