package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

// Recorder exports import run outcomes as Prometheus metrics.
type Recorder struct {
	runs        *prometheus.CounterVec
	rows        *prometheus.CounterVec
	rowErrors   *prometheus.CounterVec
	findings    *prometheus.CounterVec
	invitations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_import_runs_total",
			Help: "Import runs by entity and final status.",
		}, []string{"entity", "status"}),
		rows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_import_rows_total",
			Help: "Reconciled rows by entity and disposition.",
		}, []string{"entity", "disposition"}),
		rowErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_import_row_errors_total",
			Help: "Valid rows that failed to persist.",
		}, []string{"entity"}),
		findings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_import_validation_findings_total",
			Help: "Validation errors and warnings raised while parsing uploads.",
		}, []string{"entity", "severity"}),
		invitations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_import_invitations_total",
			Help: "Invitations requested by committed imports.",
		}, []string{"entity"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "supplier_import_run_duration_seconds",
			Help:    "Wall time of an import run.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"entity"}),
	}
}

func (r *Recorder) ObserveRun(run batch.Run, elapsed time.Duration) {
	r.runs.WithLabelValues(run.Entity, string(run.Status)).Inc()
	for _, d := range []batch.Disposition{batch.Created, batch.Updated, batch.Skipped, batch.Reactivated} {
		if n := run.Result.Count(d); n > 0 {
			r.rows.WithLabelValues(run.Entity, string(d)).Add(float64(n))
		}
	}
	r.rowErrors.WithLabelValues(run.Entity).Add(float64(len(run.Result.Errors)))
	r.findings.WithLabelValues(run.Entity, "error").Add(float64(len(run.Report.Errors)))
	r.findings.WithLabelValues(run.Entity, "warning").Add(float64(len(run.Report.Warnings)))
	r.invitations.WithLabelValues(run.Entity).Add(float64(run.Result.InvitationsSent))
	r.duration.WithLabelValues(run.Entity).Observe(elapsed.Seconds())
}
