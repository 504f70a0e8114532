package assignment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/supplier-import/internal/domain/assignment"
	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

func sheet(rows ...[]string) batch.Sheet {
	return batch.Sheet{Header: assignment.Columns, Rows: rows}
}

func TestDuplicatePairIsWarningAndRowStillImported(t *testing.T) {
	t.Parallel()

	out := batch.Parse(assignment.Schema(), sheet(
		[]string{"P1", "TP-1", "2026-11-01", "N", ""},
		[]string{"P1", "TP-1", "2026-12-01", "N", ""},
	))

	require.Empty(t, out.Report.Errors)
	require.Len(t, out.Report.Warnings, 1)
	require.Equal(t, assignment.CodeDuplicatePair, out.Report.Warnings[0].Code)
	require.Equal(t, 3, out.Report.Warnings[0].RowNumber)
	require.Len(t, out.Records, 2)
	require.Equal(t, 2, out.Report.ValidRows)
}

func TestSlashInsideKeyPartsIsNotADuplicate(t *testing.T) {
	t.Parallel()

	out := batch.Parse(assignment.Schema(), sheet(
		[]string{"A/B", "C", "2026-11-01", "N", ""},
		[]string{"A", "B/C", "2026-11-01", "N", ""},
	))

	require.Empty(t, out.Report.Errors)
	require.Empty(t, out.Report.Warnings)
	require.Len(t, out.Records, 2)
	require.NotEqual(t, out.Records[0].Key, out.Records[1].Key)
}

func TestRequiredAndFormatRules(t *testing.T) {
	t.Parallel()

	out := batch.Parse(assignment.Schema(), sheet(
		[]string{"", "", "", "Y", ""},
		[]string{"P1", "TP-1", "31/31/2026", "sometimes", "ro@"},
	))

	byRow := map[int][]string{}
	for _, e := range out.Report.Errors {
		byRow[e.RowNumber] = append(byRow[e.RowNumber], e.Code)
	}
	require.Equal(t, []string{
		assignment.CodePartnerRequired, assignment.CodeTouchpointRequired,
		assignment.CodeDueDateRequired, assignment.CodeROEmailRequired,
	}, byRow[2])
	require.ElementsMatch(t, []string{
		assignment.CodeInvalidDueDate, assignment.CodeInvalidSendInvite, assignment.CodeInvalidROEmail,
	}, byRow[3])
	require.Empty(t, out.Report.Warnings)
	require.Empty(t, out.Records)
}

func TestBuildAndInvite(t *testing.T) {
	t.Parallel()

	out := batch.Parse(assignment.Schema(), sheet(
		[]string{"P1", "TP-1", "46310", "Y", "ro@acme.test"},
		[]string{"P2", "TP-1", "11/30/2026", "", ""},
	))

	require.True(t, out.Report.OK())
	require.Len(t, out.Records, 2)

	first := out.Records[0].Value
	require.True(t, first.DueDate.Equal(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)))
	recipient, ok := assignment.Invite(first)
	require.True(t, ok)
	require.Equal(t, "ro@acme.test", recipient)

	_, ok = assignment.Invite(out.Records[1].Value)
	require.False(t, ok)
}
