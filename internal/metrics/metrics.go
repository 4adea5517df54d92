// Package metrics exposes scan and submission counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors. A nil *Metrics records nothing.
type Metrics struct {
	Scans          *prometheus.CounterVec
	Submissions    *prometheus.CounterVec
	SubmitDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qrattend",
			Name:      "scans_total",
			Help:      "Scan events by entry point and outcome.",
		}, []string{"source", "outcome"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qrattend",
			Name:      "submissions_total",
			Help:      "Row submissions by outcome (ok or error category).",
		}, []string{"outcome"}),
		SubmitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "qrattend",
			Name:      "submission_duration_seconds",
			Help:      "Time from credential load to append response.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.Scans, m.Submissions, m.SubmitDuration)
	return m
}

// ScanObserved counts one scan event.
func (m *Metrics) ScanObserved(source, outcome string) {
	if m == nil {
		return
	}
	m.Scans.WithLabelValues(source, outcome).Inc()
}

// SubmissionObserved counts one submission and its latency.
func (m *Metrics) SubmissionObserved(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
	m.SubmitDuration.Observe(took.Seconds())
}
