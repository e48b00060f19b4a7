package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	migrantsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "migrants_registered_total",
			Help: "Total number of migrant workers registered",
		},
	)

	healthRecordsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_records_added_total",
			Help: "Total number of health records added",
		},
		[]string{"sdg_tag"},
	)

	indicatorUpserts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "indicator_upserts_total",
			Help: "Total number of SDG indicator upserts",
		},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	coveragePercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "migrant_health_coverage_percent",
			Help: "Share of registered migrants with at least one health visit",
		},
	)

	dashboardComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_computations_total",
			Help: "Total number of dashboard summary computations",
		},
		[]string{"source"},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware creates HTTP metrics middleware
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath normalizes URL paths for metrics to avoid cardinality explosion
func normalizePath(path string) string {
	if len(path) > 100 {
		return "/api/..."
	}
	return path
}

// --- Business metric helpers ---

// RecordMigrantRegistered records a migrant registration
func RecordMigrantRegistered() {
	migrantsRegistered.Inc()
}

// RecordHealthRecordAdded records a new health record
func RecordHealthRecordAdded(sdgTag string) {
	healthRecordsAdded.WithLabelValues(sdgTag).Inc()
}

// RecordIndicatorUpsert records an SDG indicator write
func RecordIndicatorUpsert() {
	indicatorUpserts.Inc()
}

// RecordLoginAttempt records a login attempt outcome
func RecordLoginAttempt(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	loginAttempts.WithLabelValues(outcome).Inc()
}

// SetCoveragePercent publishes the latest computed coverage percentage
func SetCoveragePercent(pct float64) {
	coveragePercent.Set(pct)
}

// RecordDashboardComputation records a dashboard computation and where the
// result came from ("computed" or "cache")
func RecordDashboardComputation(source string) {
	dashboardComputations.WithLabelValues(source).Inc()
}
