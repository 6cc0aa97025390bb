package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Evaluation outcomes
const (
	OutcomeDuplicates = "completed_with_duplicates"
	OutcomeClean      = "completed_clean"
	OutcomeRejected   = "rejected"
	OutcomeCancelled  = "cancelled"
)

// Oracle call results
const (
	OracleOK       = "ok"
	OracleError    = "error"
	OracleFallback = "fallback"
)

// Metrics holds the duplicate-check collectors. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	evaluations   *prometheus.CounterVec
	findings      *prometheus.CounterVec
	oracleCalls   *prometheus.CounterVec
	oracleLatency prometheus.Histogram
}

// New creates collectors registered on a fresh registry
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.evaluations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "awardcheck",
		Name:      "evaluations_total",
		Help:      "Award evaluations by terminal outcome",
	}, []string{"outcome"})
	m.findings = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "awardcheck",
		Name:      "duplicate_findings_total",
		Help:      "Duplicate findings by match kind",
	}, []string{"match_kind"})
	m.oracleCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "awardcheck",
		Name:      "oracle_calls_total",
		Help:      "Judgment oracle invocations by result",
	}, []string{"result"})
	m.oracleLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "awardcheck",
		Name:      "oracle_call_duration_seconds",
		Help:      "Time spent waiting on the judgment oracle",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	m.registry.MustRegister(m.evaluations, m.findings, m.oracleCalls, m.oracleLatency)
	return m
}

// ObserveEvaluation counts a finished evaluation
func (m *Metrics) ObserveEvaluation(outcome string) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(outcome).Inc()
}

// ObserveFinding counts one duplicate finding
func (m *Metrics) ObserveFinding(matchKind string) {
	if m == nil {
		return
	}
	m.findings.WithLabelValues(matchKind).Inc()
}

// ObserveOracleCall records an oracle attempt and how long it took
func (m *Metrics) ObserveOracleCall(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.oracleCalls.WithLabelValues(result).Inc()
	if result != OracleFallback {
		m.oracleLatency.Observe(elapsed.Seconds())
	}
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
