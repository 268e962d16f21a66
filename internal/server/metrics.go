package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	buildInfo       *prometheus.GaugeVec

	// Registration guard
	metricsOnce       sync.Once
	metricsRegistered bool
)

// InitMetrics registers the HTTP metrics with the default registry. Safe to
// call more than once; only the first call registers.
func InitMetrics() {
	metricsOnce.Do(func() {
		requestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "googleops_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "path", "status"},
		)

		requestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "googleops_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"method", "path"},
		)

		buildInfo = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "googleops_build_info",
				Help: "Build information, always 1",
			},
			[]string{"version"},
		)
		buildInfo.WithLabelValues(ServiceVersion).Set(1)

		metricsRegistered = true
	})
}

// recordRequest records one served request.
func recordRequest(method, path, status string, durationSeconds float64) {
	if !metricsRegistered {
		return
	}

	if requestsTotal != nil {
		requestsTotal.WithLabelValues(method, path, status).Inc()
	}
	if requestDuration != nil {
		requestDuration.WithLabelValues(method, path).Observe(durationSeconds)
	}
}
