package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry wraps the Prometheus collectors exercised by the solve pipeline:
// HTTP request metrics, CP-SAT solve outcomes, and demand-cache hit ratio,
// grounded on internal/service/metrics_service.go's registry shape.
type Registry struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	solveDuration *prometheus.HistogramVec
	solveTotal    *prometheus.CounterVec
	solveObjective prometheus.Histogram

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// New registers the collectors and returns a ready-to-use Registry.
func New() *Registry {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solver_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solver_solve_duration_seconds",
		Help:    "Wall-clock duration of CP-SAT solve calls",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"outcome"})

	solveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_solve_total",
		Help: "Total solve calls by outcome",
	}, []string{"outcome"})

	solveObjective := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_objective_value",
		Help:    "Objective value of feasible solves",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solver_demand_cache_hits_total",
		Help: "Total demand-cache hits",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solver_demand_cache_misses_total",
		Help: "Total demand-cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "solver_goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, solveDuration, solveTotal, solveObjective, cacheHits, cacheMisses, goroutines)

	return &Registry{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solveDuration:   solveDuration,
		solveTotal:      solveTotal,
		solveObjective:  solveObjective,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveHTTPRequest records one HTTP request's outcome and latency.
func (r *Registry) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	label := statusLabel(status)
	r.requestDuration.WithLabelValues(method, path, label).Observe(duration.Seconds())
	r.requestTotal.WithLabelValues(method, path, label).Inc()
}

// ObserveSolve records a solve call's outcome (feasible/infeasible/
// validation_error/error),
// its wall time, and — for feasible solves — its objective value.
func (r *Registry) ObserveSolve(outcome string, duration time.Duration, objectiveValue float64, hasObjective bool) {
	if r == nil {
		return
	}
	r.solveDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	r.solveTotal.WithLabelValues(outcome).Inc()
	if hasObjective {
		r.solveObjective.Observe(objectiveValue)
	}
}

// ObserveCacheLookup records a demand-cache hit or miss.
func (r *Registry) ObserveCacheLookup(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.cacheHits.Inc()
		return
	}
	r.cacheMisses.Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
