package monitoring

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/metadata/info"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// PrometheusReporter collects merge metrics, it implements info.MergeReporter
type PrometheusReporter struct {
	mergeDuration   *prometheus.HistogramVec
	stageDuration   *prometheus.HistogramVec
	mergeTotal      *prometheus.CounterVec
	rowsAffected    *prometheus.CounterVec
	rowsStaged      *prometheus.CounterVec
	identitiesTotal *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewPrometheusReporter creates reporter with its own registry
func NewPrometheusReporter() *PrometheusReporter {
	registry := prometheus.NewRegistry()
	r := &PrometheusReporter{
		mergeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sqlmerge_merge_duration_seconds",
				Help:    "Duration of merge execution in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
			},
			[]string{"table", "status"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sqlmerge_stage_duration_seconds",
				Help:    "Duration of staging table bulk load in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
			},
			[]string{"table"},
		),
		mergeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sqlmerge_merge_total",
				Help: "Total number of merge executions",
			},
			[]string{"table", "status"},
		),
		rowsAffected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sqlmerge_rows_affected_total",
				Help: "Total number of rows inserted, updated or deleted",
			},
			[]string{"table"},
		),
		rowsStaged: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sqlmerge_rows_staged_total",
				Help: "Total number of rows bulk loaded into staging tables",
			},
			[]string{"table"},
		),
		identitiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sqlmerge_identities_synced_total",
				Help: "Total number of generated identities assigned to records",
			},
			[]string{"table"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sqlmerge_errors_total",
				Help: "Total number of merge errors",
			},
			[]string{"table", "error_type"},
		),
		registry: registry,
	}
	registry.MustRegister(
		r.mergeDuration,
		r.stageDuration,
		r.mergeTotal,
		r.rowsAffected,
		r.rowsStaged,
		r.identitiesTotal,
		r.errorTotal,
	)
	return r
}

// ReportMerge records merge result
func (r *PrometheusReporter) ReportMerge(result info.MergeResult, err error) {
	table := result.MergedTable()
	status := statusSuccess
	if err != nil {
		status = statusFailure
		r.errorTotal.WithLabelValues(table, errorType(err)).Inc()
	}
	r.mergeDuration.WithLabelValues(table, status).Observe(result.TotalTime().Seconds())
	r.mergeTotal.WithLabelValues(table, status).Inc()
	if result.StagedRows() > 0 {
		r.stageDuration.WithLabelValues(table).Observe(result.StagingTime().Seconds())
		r.rowsStaged.WithLabelValues(table).Add(float64(result.StagedRows()))
	}
	if err != nil {
		return
	}
	r.rowsAffected.WithLabelValues(table).Add(float64(result.RowsAffected()))
	r.identitiesTotal.WithLabelValues(table).Add(float64(result.IdentitiesSynced()))
}

// Registry returns reporter registry
func (r *PrometheusReporter) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns metrics http handler
func (r *PrometheusReporter) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func errorType(err error) string {
	switch {
	case errors.Is(err, errx.ErrConfig):
		return "config"
	case errors.Is(err, errx.ErrIdentity):
		return "identity"
	case errors.Is(err, errx.ErrMissingColumn):
		return "missing_column"
	}
	return "server"
}
