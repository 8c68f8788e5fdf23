package scheduler

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

// SolveResult is the Solver Driver's output: either a feasible/optimal
// assignment (Feasible=true, with X/Work readable via SolutionX/SolutionWork)
// or an infeasible/unknown status, in which case the caller proceeds to the
// Infeasibility Reporter instead of the Summary Reporter (spec §4.5).
type SolveResult struct {
	Feasible       bool
	ObjectiveValue float64
	Response       *cmpb.CpSolverResponse
	WallTime       time.Duration
}

// defaultTimeLimitSeconds is the spec §6 default, overridden by the
// SOLVER_TIME_LIMIT environment variable at startup or per-call.
const defaultTimeLimitSeconds = 60.0

// RunSolver invokes CP-SAT on the built model with the given time limit
// (spec §4.5: "Configure CP-SAT with max_time_in_seconds = time_limit").
// The call is synchronous and non-interruptible except by the time limit;
// concurrent invocations of Solve are fully independent (spec §5).
func RunSolver(m *Model, timeLimitSeconds float64) (*SolveResult, error) {
	if timeLimitSeconds <= 0 {
		timeLimitSeconds = defaultTimeLimitSeconds
	}

	proto, err := m.Builder.Model()
	if err != nil {
		return nil, fmt.Errorf("instantiate cp model: %w", err)
	}

	params := &sppb.SatParameters{
		MaxTimeInSeconds: &timeLimitSeconds,
	}

	start := time.Now()
	response, err := cpmodel.SolveCpModelWithParameters(proto, params)
	wall := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("solve cp model: %w", err)
	}

	status := response.GetStatus()
	feasible := status == cmpb.CpSolverStatus_OPTIMAL || status == cmpb.CpSolverStatus_FEASIBLE

	return &SolveResult{
		Feasible:       feasible,
		ObjectiveValue: response.GetObjectiveValue(),
		Response:       response,
		WallTime:       wall,
	}, nil
}

// SolutionX reports whether x[d,i,k] was set to 1 in the solution.
func SolutionX(result *SolveResult, m *Model, d, i, k int) bool {
	xv, ok := m.X[xKey{Day: d, Person: i, Shift: k}]
	if !ok {
		return false
	}
	return cpmodel.SolutionBooleanValue(result.Response, xv)
}

// SolutionS reports the solved coverage count s[d,σ].
func SolutionS(result *SolveResult, m *Model, d int, slot string) int64 {
	sv, ok := m.S[sKey{Day: d, Slot: slot}]
	if !ok {
		return 0
	}
	return cpmodel.SolutionIntegerValue(result.Response, sv)
}

// SolutionLack reports the solved lack[d,σ] slack value, or 0 if the slot
// carries no slack term.
func SolutionLack(result *SolveResult, m *Model, d int, slot string) int64 {
	lv, ok := m.Lack[sKey{Day: d, Slot: slot}]
	if !ok {
		return 0
	}
	return cpmodel.SolutionIntegerValue(result.Response, lv)
}
