package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the compliance module.
type Metrics struct {
	RequirementsCreated prometheus.Counter
	LinkageFailures     prometheus.Counter
	AuditRuns           prometheus.Counter
	AuditRunDuration    prometheus.Histogram
	FlippedNonCompliant prometheus.Counter
	LeaseContention     prometheus.Counter
}

// New creates and registers the compliance metrics.
func New() *Metrics {
	return &Metrics{
		RequirementsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "complytrack_requirements_created_total",
			Help: "Total number of compliance requirements created",
		}),
		LinkageFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "complytrack_equipment_linkage_failures_total",
			Help: "Total number of best-effort equipment linkage failures during requirement creation",
		}),
		AuditRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "complytrack_audit_runs_total",
			Help: "Total number of audit runs executed",
		}),
		AuditRunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "complytrack_audit_run_duration_seconds",
			Help:    "Duration of audit runs",
			Buckets: prometheus.DefBuckets,
		}),
		FlippedNonCompliant: promauto.NewCounter(prometheus.CounterOpts{
			Name: "complytrack_requirements_flipped_non_compliant_total",
			Help: "Total number of requirements flipped to non_compliant by audit runs",
		}),
		LeaseContention: promauto.NewCounter(prometheus.CounterOpts{
			Name: "complytrack_audit_lease_contention_total",
			Help: "Total number of audit runs that proceeded without obtaining the advisory lease",
		}),
	}
}
