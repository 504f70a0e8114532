package spreadsheet_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
	"github.com/mohammadpnp/supplier-import/internal/domain/partner"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/spreadsheet"
)

func workbook(t *testing.T, rows map[string]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range rows {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadFirstSheetWithHeader(t *testing.T) {
	t.Parallel()

	raw := workbook(t, map[string]any{
		"A1": "PARTNER_INTERNAL_ID", "B1": "PARTNER_NAME", "C1": "DUE_DATE",
		"A2": "P1", "B2": "Acme", "C2": time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		"A4": "P2", "B4": "Beta", "C4": "2026-11-30",
	})

	sheet, err := spreadsheet.NewReader().Read(raw)

	require.NoError(t, err)
	require.Equal(t, []string{"PARTNER_INTERNAL_ID", "PARTNER_NAME", "DUE_DATE"}, sheet.Header)
	require.Len(t, sheet.Rows, 3, "blank middle row keeps its position")
	require.Equal(t, "P1", sheet.Rows[0][0])
	require.Empty(t, sheet.Rows[1])
	require.Equal(t, "P2", sheet.Rows[2][0])

	due, err := batch.ParseDate(sheet.Rows[0][2])
	require.NoError(t, err)
	require.True(t, due.Equal(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)))
}

func TestReadRowNumbersSurviveBlankRows(t *testing.T) {
	t.Parallel()

	raw := workbook(t, map[string]any{
		"A1": "PARTNER_INTERNAL_ID", "B1": "PARTNER_NAME",
		"A2": "P1", "B2": "Acme",
		"B4": "Nameless",
	})
	sheet, err := spreadsheet.NewReader().Read(raw)
	require.NoError(t, err)

	out := batch.Parse(partner.Schema("US"), sheet)

	require.Equal(t, 2, out.Report.TotalRows)
	require.Len(t, out.Report.Errors, 1)
	require.Equal(t, 4, out.Report.Errors[0].RowNumber)
}

func TestReadEmptyWorkbook(t *testing.T) {
	t.Parallel()

	sheet, err := spreadsheet.NewReader().Read(workbook(t, nil))

	require.NoError(t, err)
	require.Empty(t, sheet.Header)
}

func TestReadRejectsNonWorkbook(t *testing.T) {
	t.Parallel()

	_, err := spreadsheet.NewReader().Read([]byte("PARTNER_INTERNAL_ID,PARTNER_NAME\nP1,Acme\n"))

	require.Error(t, err)
}

func TestTemplateRoundTrip(t *testing.T) {
	t.Parallel()

	raw, err := spreadsheet.NewWriter().Template(partner.Entity, partner.Columns)
	require.NoError(t, err)

	sheet, err := spreadsheet.NewReader().Read(raw)
	require.NoError(t, err)
	require.Equal(t, partner.Columns, sheet.Header)
	require.Empty(t, sheet.Rows)
}

func TestReportWorkbook(t *testing.T) {
	t.Parallel()

	report := batch.Report{
		TotalRows: 2,
		ValidRows: 1,
		Errors:    []batch.ValidationError{{Code: "ERR-PART-002", Message: "PARTNER_INTERNAL_ID is required", RowNumber: 2, Field: "PARTNER_INTERNAL_ID"}},
		Warnings:  []batch.ValidationError{{Code: "WARN-PART-001", Message: "not a phone", RowNumber: 3, Field: "PARTNER_POC_PHONE_NUMBER"}},
	}

	raw, err := spreadsheet.NewWriter().Report(partner.Entity, report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Summary", "Findings"}, f.GetSheetList())

	rows, err := f.GetRows("Findings")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Severity", "Row", "Code", "Field", "Message"},
		{"ERROR", "2", "ERR-PART-002", "PARTNER_INTERNAL_ID", "PARTNER_INTERNAL_ID is required"},
		{"WARNING", "3", "WARN-PART-001", "PARTNER_POC_PHONE_NUMBER", "not a phone"},
	}, rows)

	total, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	require.Equal(t, "2", total)
}
