package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetricsOptions configures the HTTP metrics middleware.
type HTTPMetricsOptions struct {
	Registerer prometheus.Registerer
	Namespace  string
	Subsystem  string
	Buckets    []float64
}

// HTTPMetrics exposes Prometheus collectors for request instrumentation.
type HTTPMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewHTTPMetrics constructs collectors and registers them with the provided registerer.
// Collectors already present in the registerer are reused.
func NewHTTPMetrics(opts HTTPMetricsOptions) (*HTTPMetrics, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "jobtracker"
	}

	subsystem := opts.Subsystem
	if subsystem == "" {
		subsystem = "http"
	}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "Total number of HTTP requests partitioned by method, route, and status code.",
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, fmt.Errorf("register requests collector: %w", err)
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of HTTP request latencies in seconds partitioned by method, route, and status code.",
		Buckets:   buckets,
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, fmt.Errorf("register duration collector: %w", err)
	}

	inFlight, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "in_flight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	}))
	if err != nil {
		return nil, fmt.Errorf("register inflight collector: %w", err)
	}

	return &HTTPMetrics{
		Requests: requests,
		Duration: duration,
		InFlight: inFlight,
	}, nil
}

// register регистрирует коллектор или возвращает уже зарегистрированный того же типа
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return c, err
	}

	existing, ok := already.ExistingCollector.(C)
	if !ok {
		return c, fmt.Errorf("existing collector has unexpected type %T", already.ExistingCollector)
	}
	return existing, nil
}

// Middleware returns a net/http middleware that records the HTTP metrics.
// The route label is the ServeMux pattern that matched the request,
// so it must wrap the mux directly.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.InFlight.Inc()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		completed := false

		// Паника не перехватывается здесь: ее обрабатывает RecoveryMiddleware
		// снаружи и отвечает 500, поэтому запрос учитывается с тем же статусом
		defer func() {
			m.InFlight.Dec()

			status := wrapped.statusCode
			if !completed {
				status = http.StatusInternalServerError
			}

			// Незнакомые пути не попадают в label, чтобы не раздувать кардинальность
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}

			labels := prometheus.Labels{
				"method": r.Method,
				"route":  route,
				"status": strconv.Itoa(status),
			}
			m.Requests.With(labels).Inc()
			m.Duration.With(labels).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(wrapped, r)
		completed = true
	})
}
