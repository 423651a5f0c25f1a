package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch results.
const (
	FetchApplied = "applied"
	FetchStale   = "stale"
	FetchFailed  = "failed"
)

// Metrics records poll and write activity. A nil *Metrics records nothing.
type Metrics struct {
	fetches   *prometheus.CounterVec
	merge     prometheus.Histogram
	preserved prometheus.Gauge
	sequence  prometheus.Gauge
	writes    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "board",
			Name:      "snapshot_fetches_total",
			Help:      "Snapshot fetches by result (applied, stale, failed).",
		}, []string{"result"}),
		merge: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "board",
			Name:      "merge_duration_seconds",
			Help:      "Time spent reconciling an incoming snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		preserved: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "board",
			Name:      "preserved_edits",
			Help:      "Local edits kept over server values by the last merge.",
		}),
		sequence: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "board",
			Name:      "applied_sequence",
			Help:      "Sequence number of the last applied snapshot.",
		}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "board",
			Name:      "writes_total",
			Help:      "Backend writes by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.fetches, m.merge, m.preserved, m.sequence, m.writes)
	}
	return m
}

// ObserveFetch counts one fetch.
func (m *Metrics) ObserveFetch(result string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(result).Inc()
}

// ObserveMerge records an applied merge.
func (m *Metrics) ObserveMerge(seq uint64, preserved int, d time.Duration) {
	if m == nil {
		return
	}
	m.merge.Observe(d.Seconds())
	m.preserved.Set(float64(preserved))
	m.sequence.Set(float64(seq))
}

// ObserveWrite counts one backend write.
func (m *Metrics) ObserveWrite(kind, outcome string) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(kind, outcome).Inc()
}
