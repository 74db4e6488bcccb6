// Package metrics holds the Prometheus instruments exported by the MBEL
// server: parse and analyze latency, diagnostic counts, and query volume.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParseDuration tracks the latency of a single parse call.
	ParseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mbel_parse_duration_seconds",
		Help:    "Histogram of parse() call latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// AnalyzeDuration tracks the latency of a single analyze call.
	AnalyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mbel_analyze_duration_seconds",
		Help:    "Histogram of analyze() call latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// DiagnosticsEmitted counts diagnostics by code and severity.
	DiagnosticsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mbel_diagnostics_emitted_total",
		Help: "Total number of diagnostics emitted by the analyzer",
	}, []string{"code", "severity"})

	// QueriesExecuted counts Query Engine queries by kind.
	QueriesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mbel_queries_executed_total",
		Help: "Total number of Query Engine queries executed",
	}, []string{"kind"})

	// QueryErrors counts failed Query Engine queries by kind.
	QueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mbel_query_errors_total",
		Help: "Total number of Query Engine queries that returned an error",
	}, []string{"kind"})
)

// ObserveParse records one parse call's duration.
func ObserveParse(d time.Duration) {
	ParseDuration.Observe(d.Seconds())
}

// ObserveAnalyze records one analyze call's duration and its diagnostics.
func ObserveAnalyze(d time.Duration, codeCounts map[string]int, severity func(code string) string) {
	AnalyzeDuration.Observe(d.Seconds())
	for code, n := range codeCounts {
		DiagnosticsEmitted.WithLabelValues(code, severity(code)).Add(float64(n))
	}
}
