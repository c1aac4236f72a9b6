package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request metrics
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shortener_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortener_requests_total",
			Help: "Total number of requests",
		},
		[]string{"method", "route", "status"},
	)

	// Domain metrics
	LinksCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shortener_links_created_total",
			Help: "Total number of short links created",
		},
	)

	Redirects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortener_redirects_total",
			Help: "Redirect lookups by outcome",
		},
		[]string{"outcome"}, // "found", "not_found" or "error"
	)

	QRFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shortener_qr_render_failures_total",
			Help: "Total number of failed QR code renders",
		},
	)
)
