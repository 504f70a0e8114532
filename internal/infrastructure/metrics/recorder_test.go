package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/metrics"
)

func TestRecorderObserveRun(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)

	rec.ObserveRun(batch.Run{
		Entity: "partners",
		Status: batch.RunSucceeded,
		Report: batch.Report{Warnings: []batch.ValidationError{{Code: "WARN-PART-001"}}},
		Result: batch.Result{Created: 3, Skipped: 2, Errors: []batch.RowError{{RowNumber: 4}}},
	}, 1500*time.Millisecond)
	rec.ObserveRun(batch.Run{Entity: "partners", Status: batch.RunRejected}, time.Millisecond)

	expected := `
# HELP supplier_import_rows_total Reconciled rows by entity and disposition.
# TYPE supplier_import_rows_total counter
supplier_import_rows_total{disposition="CREATED",entity="partners"} 3
supplier_import_rows_total{disposition="SKIPPED",entity="partners"} 2
# HELP supplier_import_runs_total Import runs by entity and final status.
# TYPE supplier_import_runs_total counter
supplier_import_runs_total{entity="partners",status="rejected"} 1
supplier_import_runs_total{entity="partners",status="succeeded"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"supplier_import_rows_total", "supplier_import_runs_total"))

	count, err := testutil.GatherAndCount(reg, "supplier_import_run_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
