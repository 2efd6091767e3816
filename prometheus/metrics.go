package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login attempts, successes counted separately
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "monipack_login_total",
			Help: "Total number of admin login attempts",
		},
	)

	LoginSuccessCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "monipack_login_success_total",
			Help: "Total number of successful admin logins",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monipack_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monipack_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "invalid_pin", "missing_cookie", "invalid_session" etc.
	)

	// Soft-delete ledger operations by entity type
	SoftDeleteCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monipack_soft_deletes_total",
			Help: "Total number of soft-delete operations by entity type",
		},
		[]string{"entity"},
	)

	RestoreCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monipack_restores_total",
			Help: "Total number of restore operations by entity type",
		},
		[]string{"entity"},
	)

	AuditWriteCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "monipack_audit_entries_total",
			Help: "Total number of audit log entries written",
		},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "monipack_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "monipack_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active admin sessions
	ActiveSessionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "monipack_active_sessions",
			Help: "Number of currently active admin sessions",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "monipack_info",
			Help: "Information about the catalog backend",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(LoginSuccessCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(SoftDeleteCounter)
	prometheus.MustRegister(RestoreCounter)
	prometheus.MustRegister(AuditWriteCounter)

	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	prometheus.MustRegister(ActiveSessionsGauge)
	prometheus.MustRegister(InfoGauge)

	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordSoftDelete records a soft-delete by entity type
func RecordSoftDelete(entity string) {
	SoftDeleteCounter.With(prometheus.Labels{"entity": entity}).Inc()
}

// RecordRestore records a restore by entity type
func RecordRestore(entity string) {
	RestoreCounter.With(prometheus.Labels{"entity": entity}).Inc()
}

// IncreaseActiveSessions increments the active sessions gauge
func IncreaseActiveSessions() {
	ActiveSessionsGauge.Inc()
}

// ReduceActiveSessions subtracts n from the active sessions gauge. Callers
// pass the number of rows a delete actually removed, so expiry sweeps and
// bulk revocations keep the gauge honest.
func ReduceActiveSessions(n int64) {
	if n > 0 {
		ActiveSessionsGauge.Sub(float64(n))
	}
}
