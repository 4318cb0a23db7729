// Package metrics exposes Prometheus collectors for the bar store, the
// decision pipeline and the feed. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	TicksTotal       *prometheus.CounterVec
	BarsClosedTotal  *prometheus.CounterVec
	DroppedTotal     *prometheus.CounterVec
	ListenerFailures prometheus.Counter
	DecisionsTotal   *prometheus.CounterVec
	RejectsTotal     *prometheus.CounterVec
	AlertsTotal      *prometheus.CounterVec
	FeedMessages     *prometheus.CounterVec
	SnapshotSeconds  prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TicksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "prop8_ticks_total", Help: "Ticks ingested"},
			[]string{"instrument"},
		),
		BarsClosedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "prop8_bars_closed_total", Help: "Bars appended to the store"},
			[]string{"instrument"},
		),
		DroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "prop8_dropped_total", Help: "Malformed or out of order input dropped"},
			[]string{"kind"},
		),
		ListenerFailures: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "prop8_listener_failures_total", Help: "Bar close listener calls that failed"},
		),
		DecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "prop8_decisions_total", Help: "Decisions produced by state"},
			[]string{"state"},
		),
		RejectsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "prop8_pipeline_rejects_total", Help: "Evaluations rejected before the decision policy"},
			[]string{"stage"},
		),
		AlertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "prop8_alerts_total", Help: "Execute decisions by dispatch outcome"},
			[]string{"outcome"},
		),
		FeedMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "prop8_feed_messages_total", Help: "Feed messages by type"},
			[]string{"type"},
		),
		SnapshotSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{Name: "prop8_snapshot_seconds", Help: "Snapshot save duration", Buckets: prometheus.DefBuckets},
		),
	}

	m.registry.MustRegister(
		m.TicksTotal, m.BarsClosedTotal, m.DroppedTotal, m.ListenerFailures,
		m.DecisionsTotal, m.RejectsTotal, m.AlertsTotal, m.FeedMessages, m.SnapshotSeconds,
	)

	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Tick(instrument string) {
	if m == nil {
		return
	}

	m.TicksTotal.WithLabelValues(instrument).Inc()
}

func (m *Metrics) BarClosed(instrument string) {
	if m == nil {
		return
	}

	m.BarsClosedTotal.WithLabelValues(instrument).Inc()
}

func (m *Metrics) Dropped(kind string) {
	if m == nil {
		return
	}

	m.DroppedTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) ListenerFailed() {
	if m == nil {
		return
	}

	m.ListenerFailures.Inc()
}

func (m *Metrics) Decision(state string) {
	if m == nil {
		return
	}

	m.DecisionsTotal.WithLabelValues(state).Inc()
}

func (m *Metrics) Reject(stage string) {
	if m == nil {
		return
	}

	m.RejectsTotal.WithLabelValues(stage).Inc()
}

func (m *Metrics) Alert(outcome string) {
	if m == nil {
		return
	}

	m.AlertsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) FeedMessage(kind string) {
	if m == nil {
		return
	}

	m.FeedMessages.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveSnapshot(seconds float64) {
	if m == nil {
		return
	}

	m.SnapshotSeconds.Observe(seconds)
}
