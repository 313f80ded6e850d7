// Package metrics collects per-run Prometheus counters for the extraction and
// scrape commands. Metrics live on a private registry and are flushed to a
// node-exporter textfile at the end of a run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultNamespace = "editorialhub"

// Manager owns the run metrics. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	rowsDropped       *prometheus.CounterVec
	records           *prometheus.GaugeVec
	chartEvents       *prometheus.CounterVec
	knowledgeOutcomes *prometheus.CounterVec
	knowledgeDuration prometheus.Histogram
	lastRunUnix       prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry replaces the private registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a metrics manager on a fresh registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: defaultNamespace,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)
	m.rowsDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rows_dropped_total",
		Help:      "Source rows discarded during normalization, by source and reason",
	}, []string{"source", "reason"})
	m.records = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "records",
		Help:      "Records in the last produced dataset, by kind",
	}, []string{"kind"})
	m.chartEvents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "chart_events_total",
		Help:      "Chart events kept or suppressed by a matching video",
	}, []string{"result"})
	m.knowledgeOutcomes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "knowledge_outcomes_total",
		Help:      "Knowledge resolutions by outcome",
	}, []string{"outcome"})
	m.knowledgeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "knowledge_resolve_seconds",
		Help:      "Wall time spent resolving one artist",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the last run finished",
	})
	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordDropped adds n dropped rows for source and reason.
func (m *Manager) RecordDropped(source, reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsDropped.WithLabelValues(source, reason).Add(float64(n))
}

// SetRecords sets the record count for kind.
func (m *Manager) SetRecords(kind string, n int) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(kind).Set(float64(n))
}

// RecordChart adds the chart suppression tallies.
func (m *Manager) RecordChart(kept, removed int) {
	if m == nil {
		return
	}
	m.chartEvents.WithLabelValues("kept").Add(float64(kept))
	m.chartEvents.WithLabelValues("removed").Add(float64(removed))
}

// RecordKnowledge counts one resolution outcome and its duration in seconds.
func (m *Manager) RecordKnowledge(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.knowledgeOutcomes.WithLabelValues(outcome).Inc()
	m.knowledgeDuration.Observe(seconds)
}

// MarkRun records the finish time of a run.
func (m *Manager) MarkRun(unix int64) {
	if m == nil {
		return
	}
	m.lastRunUnix.Set(float64(unix))
}

// WriteTextfile writes the registry in the Prometheus text format to path.
// An empty path is a no-op.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
