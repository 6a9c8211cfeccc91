package metrics

import (
	"time"

	"github.com/TharakaGamage830/OmniDash/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Domain metrics
	StockMovementsCounter prometheus.CounterVec
	ProductClicksCounter  prometheus.Counter
	QuotationsCounter     prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics() {
	prefix := config.AppConfig.MetricsPrefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of admin login attempts",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of rejected tokens or failed logins",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	StockMovementsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_stock_movements_total",
			Help: "Total number of stock ledger entries written",
		},
		[]string{"type"},
	)

	ProductClicksCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_product_clicks_total",
			Help: "Total number of storefront product clicks tracked",
		},
	)

	QuotationsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_quotations_total",
			Help: "Total number of quotation logs written",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordStockMovement increments the ledger counter for a movement type
func RecordStockMovement(movementType string) {
	StockMovementsCounter.WithLabelValues(movementType).Inc()
}
