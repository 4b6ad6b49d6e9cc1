package middleware

import (
	"net/http"
	"strconv"
	"time"

	"taskboard/config"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsMiddleware records request counts and latencies per route.
type MetricsMiddleware struct {
	registry       *prometheus.Registry
	requestCount   *prometheus.CounterVec
	requestLatency *prometheus.SummaryVec
	enabled        bool
}

var metricLabels = []string{"method", "route", "status"}

// NewMetricsMiddleware creates the collectors on a private registry.
func NewMetricsMiddleware(cfg *config.Config) *MetricsMiddleware {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	requestCount := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "api",
		Subsystem: "taskboard",
		Name:      "request_count",
		Help:      "Number of requests received.",
	}, metricLabels)
	requestLatency := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  "api",
		Subsystem:  "taskboard",
		Name:       "request_latency_seconds",
		Help:       "Total duration of requests in seconds.",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, metricLabels)
	registry.MustRegister(requestCount, requestLatency)

	return &MetricsMiddleware{
		registry:       registry,
		requestCount:   requestCount,
		requestLatency: requestLatency,
		enabled:        cfg.Metrics != nil && cfg.Metrics.Enabled,
	}
}

// Enabled reports whether metrics collection is switched on.
func (m *MetricsMiddleware) Enabled() bool {
	return m.enabled
}

// Handle instruments the wrapped handler.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	if !m.enabled {
		return next
	}

	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			// The central error handler has not written the response yet.
			status = statusFromError(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		labels := prometheus.Labels{
			"method": c.Request().Method,
			"route":  route,
			"status": strconv.Itoa(status),
		}
		m.requestCount.With(labels).Inc()
		m.requestLatency.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}

func statusFromError(err error) int {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsMiddleware) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
