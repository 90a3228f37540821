// Package metrics exposes the coordinator's counters as Prometheus
// collectors. A nil *Metrics is a valid, zero-overhead no-op, so callers
// only pay for instrumentation when --metrics-addr is given.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics wraps the counters, gauge and histogram mftfind exposes under
// /metrics.
type Metrics struct {
	RecordsSearched *prometheus.CounterVec
	MatchesFound    *prometheus.CounterVec
	VolumesScanned  prometheus.Gauge
	ScanDuration    prometheus.Histogram
}

// New creates and registers mftfind's metrics against reg. Pass nil to
// build unregistered collectors (useful for tests).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecordsSearched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mftfind_records_searched_total",
				Help: "Total MFT records examined by the predicate path, by volume.",
			},
			[]string{"volume"},
		),
		MatchesFound: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mftfind_matches_found_total",
				Help: "Total records that matched the search predicate, by volume.",
			},
			[]string{"volume"},
		),
		VolumesScanned: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "mftfind_volumes_scanned",
				Help: "Number of volumes included in the most recent run.",
			},
		),
		ScanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mftfind_scan_duration_seconds",
				Help:    "Wall-clock duration of a full run, from spawn to join.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.RecordsSearched, m.MatchesFound, m.VolumesScanned, m.ScanDuration)
	}
	return m
}

// ObserveVolume records one volume's final counters. Safe to call on a
// nil receiver.
func (m *Metrics) ObserveVolume(letter byte, searched, found int64) {
	if m == nil {
		return
	}
	label := string(letter)
	m.RecordsSearched.WithLabelValues(label).Add(float64(searched))
	m.MatchesFound.WithLabelValues(label).Add(float64(found))
}

// ObserveRun records the whole run's volume count and elapsed duration.
// Safe to call on a nil receiver.
func (m *Metrics) ObserveRun(volumes int, elapsedSeconds float64) {
	if m == nil {
		return
	}
	m.VolumesScanned.Set(float64(volumes))
	m.ScanDuration.Observe(elapsedSeconds)
}
