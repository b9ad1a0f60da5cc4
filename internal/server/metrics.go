package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the gateway's Prometheus instruments. Each Server owns its
// registry, so two servers in one process never fight over registration.
type metrics struct {
	registry         *prometheus.Registry
	envelopesTotal   prometheus.Counter
	subrequestsTotal prometheus.Counter
	envelopeErrors   prometheus.Counter
	envelopeDuration prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		envelopesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httpmulti_envelopes_total",
			Help: "Number of request envelopes received.",
		}),
		subrequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httpmulti_subrequests_total",
			Help: "Number of sub-requests dispatched to the upstream.",
		}),
		envelopeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httpmulti_envelope_errors_total",
			Help: "Number of envelope exchanges rejected before dispatch.",
		}),
		envelopeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "httpmulti_envelope_duration_seconds",
			Help:    "Time spent handling one envelope, including dispatch.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.envelopesTotal,
		m.subrequestsTotal,
		m.envelopeErrors,
		m.envelopeDuration,
	)

	return m
}
