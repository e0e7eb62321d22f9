package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts HTTP requests by method, route pattern, and
	// status code.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veridoc_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// requestDuration tracks request latency. Buckets span fast static
	// responses through multi-second PDF render and analysis times.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "veridoc_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// analysesTotal counts completed analyses by resulting label.
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veridoc_analyses_total",
			Help: "Total number of completed authenticity analyses",
		},
		[]string{"label"},
	)
)
