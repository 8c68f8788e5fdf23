package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTPRequestIncrementsCounter(t *testing.T) {
	r := New()
	r.ObserveHTTPRequest("POST", "/api/v1/solve", 200, 10*time.Millisecond)
	r.ObserveHTTPRequest("POST", "/api/v1/solve", 500, 5*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.requestTotal.WithLabelValues("POST", "/api/v1/solve", "2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.requestTotal.WithLabelValues("POST", "/api/v1/solve", "5xx")))
}

func TestObserveSolveRecordsOutcome(t *testing.T) {
	r := New()
	r.ObserveSolve("feasible", 250*time.Millisecond, 120, true)
	r.ObserveSolve("infeasible", 30*time.Millisecond, 0, false)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.solveTotal.WithLabelValues("feasible")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.solveTotal.WithLabelValues("infeasible")))
}

func TestObserveCacheLookupTracksHitsAndMisses(t *testing.T) {
	r := New()
	r.ObserveCacheLookup(true)
	r.ObserveCacheLookup(false)
	r.ObserveCacheLookup(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.cacheHits))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.cacheMisses))
}

func TestNilRegistrySafe(t *testing.T) {
	var r *Registry
	r.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
	r.ObserveSolve("feasible", time.Millisecond, 1, true)
	r.ObserveCacheLookup(true)
	assert.NotNil(t, r.Handler())
}
