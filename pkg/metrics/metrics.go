// Package metrics exposes Prometheus collectors for document generation and
// the preview server.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Generation results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

//nolint:gochecknoglobals // Prometheus collectors are process-wide
var (
	registerOnce sync.Once

	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio_cv",
			Name:      "generations_total",
			Help:      "Documents generated, by language, format and result.",
		},
		[]string{"lang", "format", "result"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfolio_cv",
			Name:      "generation_duration_seconds",
			Help:      "Time spent rendering one document.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfolio_cv",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Preview request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio_cv",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Preview requests served.",
		},
		[]string{"method", "path", "status"},
	)

	requestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "portfolio_cv",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Preview requests currently being served.",
		},
	)
)

// Register adds the collectors to the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(generationsTotal, generationDuration, requestDuration, requestTotal, requestsInFlight)
	})
}

// ObserveGeneration records one rendered (or failed) document.
func ObserveGeneration(lang, format string, elapsed time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	generationsTotal.WithLabelValues(lang, format, result).Inc()
	generationDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// GinMiddleware records request metrics for the preview server.
func GinMiddleware() gin.HandlerFunc {
	Register()

	return func(c *gin.Context) {
		start := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		}

		requestDuration.With(labels).Observe(time.Since(start).Seconds())
		requestTotal.With(labels).Inc()
	}
}
