package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	duration    prometheus.Histogram
}

func newMetrics(reg *prometheus.Registry) *metrics {
	m := &metrics{
		registry: reg,
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpncalc_evaluations_total",
				Help: "Total number of evaluation requests by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rpncalc_evaluation_duration_seconds",
				Help:    "Time spent compiling and evaluating an expression",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
	}

	reg.MustRegister(m.evaluations, m.duration)
	return m
}

func (m *metrics) count(outcome string) {
	m.evaluations.With(prometheus.Labels{"outcome": outcome}).Inc()
}

func (m *metrics) observe(outcome string, d time.Duration) {
	m.count(outcome)
	m.duration.Observe(d.Seconds())
}
