package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet  = "Summary"
	findingsSheet = "Findings"
)

var findingsHeader = []any{"Severity", "Row", "Code", "Field", "Message"}

// Writer renders import templates and validation reports as xlsx workbooks.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// Template returns a workbook whose only row is the column vocabulary of entity.
func (w *Writer) Template(entity string, columns []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := entity
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name template sheet: %w", err)
	}

	header := make([]any, 0, len(columns))
	for _, c := range columns {
		header = append(header, c)
	}
	if err := writeHeader(f, sheet, header); err != nil {
		return nil, err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("freeze template header: %w", err)
	}

	return bytesOf(f)
}

// Report returns a workbook with a summary sheet and one row per finding.
func (w *Writer) Report(entity string, report batch.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("name summary sheet: %w", err)
	}
	summary := [][]any{
		{"Entity", entity},
		{"Total rows", report.TotalRows},
		{"Valid rows", report.ValidRows},
		{"Errors", len(report.Errors)},
		{"Warnings", len(report.Warnings)},
	}
	if report.FileError != nil {
		summary = append(summary, []any{"File error", report.FileError.Code + ": " + report.FileError.Message})
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(findingsSheet); err != nil {
		return nil, fmt.Errorf("create findings sheet: %w", err)
	}
	if err := writeHeader(f, findingsSheet, findingsHeader); err != nil {
		return nil, err
	}
	next := 2
	for _, group := range []struct {
		severity string
		findings []batch.ValidationError
	}{{"ERROR", report.Errors}, {"WARNING", report.Warnings}} {
		for _, v := range group.findings {
			if err := setRow(f, findingsSheet, next, []any{group.severity, v.RowNumber, v.Code, v.Field, v.Message}); err != nil {
				return nil, err
			}
			next++
		}
	}

	return bytesOf(f)
}

func writeHeader(f *excelize.File, sheet string, header []any) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(max(len(header), 1), 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func bytesOf(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
