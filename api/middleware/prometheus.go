package middleware

import (
	"errors"
	"strconv"
	"time"

	"ainnect/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "service"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	relationOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relation_operations_total",
			Help: "Total number of relation graph operations",
		},
		[]string{"operation", "status", "service"},
	)

	relationOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relation_operation_duration_seconds",
			Help:    "Duration of relation graph operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "service"},
	)

	relationOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relation_operation_errors_total",
			Help: "Total number of relation graph operation errors",
		},
		[]string{"operation", "error_type", "service"},
	)
)

func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
			serviceName,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			serviceName,
		).Observe(duration)
	}
}

// RecordRelationOperation фиксирует метрики операции над графом связей
func RecordRelationOperation(operation, status, serviceName string, duration time.Duration, err error) {
	relationOpsTotal.WithLabelValues(operation, status, serviceName).Inc()
	relationOpDuration.WithLabelValues(operation, serviceName).Observe(duration.Seconds())

	if err != nil {
		relationOpErrors.WithLabelValues(operation, errorKind(err), serviceName).Inc()
	}
}

// errorKind сворачивает ошибку в метку с ограниченной кардинальностью
func errorKind(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidOperation):
		return "invalid_operation"
	case errors.Is(err, services.ErrForbidden):
		return "forbidden"
	case errors.Is(err, services.ErrNotFound):
		return "not_found"
	case errors.Is(err, services.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, services.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
