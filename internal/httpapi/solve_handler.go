package httpapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/shift-scheduler/internal/cache"
	"github.com/noah-isme/shift-scheduler/internal/metrics"
	"github.com/noah-isme/shift-scheduler/internal/repository"
	"github.com/noah-isme/shift-scheduler/internal/scheduler"
	appErrors "github.com/noah-isme/shift-scheduler/pkg/errors"
	"github.com/noah-isme/shift-scheduler/pkg/jobs"
	"github.com/noah-isme/shift-scheduler/pkg/response"
)

// PersistRunJobType identifies a persist-solve-run job on the shared queue.
const PersistRunJobType = "persist_solve_run"

// persistRunPayload is the jobs.Job payload carried by PersistRunJobType jobs.
type persistRunPayload struct {
	Fingerprint string
	Output      scheduler.Output
	Elapsed     time.Duration
}

// NewPersistRunHandler builds the jobs.Handler that writes a solve run to
// storage off the request path; wired onto a jobs.Queue in cmd/solver-api.
func NewPersistRunHandler(runs *repository.SolveRunRepository, logger *zap.Logger) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		payload, ok := job.Payload.(persistRunPayload)
		if !ok {
			return nil
		}
		return persistSolveRun(ctx, runs, payload.Fingerprint, payload.Output, payload.Elapsed)
	}
}

// SolveHandler exposes the /solve endpoint: validate, build, solve, and
// assemble the Output exactly as scheduler.Solve defines it (spec §6).
type SolveHandler struct {
	catalog          *scheduler.Catalog
	timeLimitSeconds float64
	cache            *cache.DemandCache
	runs             *repository.SolveRunRepository
	runQueue         *jobs.Queue
	metrics          *metrics.Registry
	logger           *zap.Logger
}

// NewSolveHandler constructs a SolveHandler. cache, runs, runQueue, and
// metrics are all optional (nil-safe) so the handler degrades gracefully
// when Redis, Postgres, or the background worker pool are unavailable. When
// runQueue is set, solve-run persistence is offloaded to it instead of
// blocking the response on a database write.
func NewSolveHandler(catalog *scheduler.Catalog, timeLimitSeconds float64, demandCache *cache.DemandCache, runs *repository.SolveRunRepository, runQueue *jobs.Queue, reg *metrics.Registry, logger *zap.Logger) *SolveHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SolveHandler{catalog: catalog, timeLimitSeconds: timeLimitSeconds, cache: demandCache, runs: runs, runQueue: runQueue, metrics: reg, logger: logger}
}

// Solve godoc
// @Summary Solve a monthly shift schedule
// @Tags Solver
// @Accept json
// @Produce json
// @Param payload body scheduler.Input true "Scheduling input"
// @Success 200 {object} scheduler.Output
// @Failure 400 {object} scheduler.Output
// @Router /solve [post]
func (h *SolveHandler) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	input := req.ToInput()

	fingerprint := fingerprintInput(input)
	ctx := c.Request.Context()

	var cached scheduler.Output
	if h.cache != nil {
		if err := h.cache.Get(ctx, fingerprint, &cached); err == nil {
			h.metrics.ObserveCacheLookup(true)
			c.JSON(http.StatusOK, cached)
			return
		}
		h.metrics.ObserveCacheLookup(false)
	}

	var logLines []string
	start := time.Now()
	out, err := scheduler.Solve(input, h.catalog, h.timeLimitSeconds, &logLines)
	elapsed := time.Since(start)
	if err != nil {
		h.metrics.ObserveSolve("error", elapsed, 0, false)
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "solve failed"))
		return
	}

	outcome := "feasible"
	if out.Infeasible {
		outcome = "infeasible"
	} else if out.Error != nil {
		outcome = "validation_error"
	}
	h.metrics.ObserveSolve(outcome, elapsed, float64(out.Summary.Totals.Shortage), outcome == "feasible")

	if h.cache != nil && outcome == "feasible" {
		if err := h.cache.Set(ctx, fingerprint, out); err != nil {
			h.logger.Warn("failed to cache solve output", zap.Error(err))
		}
	}

	if h.runs != nil {
		h.schedulePersist(ctx, fingerprint, out, elapsed)
	}

	status := http.StatusOK
	if out.Error != nil {
		status = http.StatusBadRequest
	}
	c.JSON(status, out)
}

// schedulePersist hands the solve-run write off to the background queue
// when one is configured, falling back to a synchronous write so a
// Postgres-only deployment (no worker pool) still gets an audit trail.
func (h *SolveHandler) schedulePersist(ctx context.Context, fingerprint string, out scheduler.Output, elapsed time.Duration) {
	if h.runQueue != nil {
		job := jobs.Job{
			ID:      fingerprint,
			Type:    PersistRunJobType,
			Payload: persistRunPayload{Fingerprint: fingerprint, Output: out, Elapsed: elapsed},
		}
		if err := h.runQueue.Enqueue(job); err != nil {
			h.logger.Warn("failed to enqueue solve-run persistence, writing synchronously", zap.Error(err))
			h.persistRunSync(ctx, fingerprint, out, elapsed)
		}
		return
	}
	h.persistRunSync(ctx, fingerprint, out, elapsed)
}

func (h *SolveHandler) persistRunSync(ctx context.Context, fingerprint string, out scheduler.Output, elapsed time.Duration) {
	if err := persistSolveRun(ctx, h.runs, fingerprint, out, elapsed); err != nil {
		h.logger.Warn("failed to persist solve run", zap.Error(err))
	}
}

func persistSolveRun(ctx context.Context, runs *repository.SolveRunRepository, fingerprint string, out scheduler.Output, elapsed time.Duration) error {
	payload, err := json.Marshal(out)
	if err != nil {
		return err
	}
	run := &repository.SolveRun{
		Fingerprint:    fingerprint,
		Feasible:       !out.Infeasible && out.Error == nil,
		ObjectiveValue: float64(out.Summary.Totals.Shortage),
		OutputJSON:     payload,
		WallTimeMs:     elapsed.Milliseconds(),
	}
	return runs.Create(ctx, run)
}

// fingerprintInput derives a stable cache key from the solve input so that
// identical requests are served from the demand cache (spec §5).
func fingerprintInput(input scheduler.Input) string {
	payload, err := json.Marshal(input)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
