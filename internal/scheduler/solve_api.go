package scheduler

import (
	"fmt"

	"github.com/noah-isme/shift-scheduler/internal/scheduler/errs"
)

// Solve is the core's single public entry point, wiring the data flow of
// spec §2: raw input -> Input Validator -> PreparedDemand ->
// {Availability Analyzer -> Model Builder -> Solver Driver} ->
// Summary/Infeasibility Reporter -> Output Assembler.
//
// It never panics for a structural input problem and never returns a Go
// error for validator failures or solver infeasibility — those are
// represented inside Output (spec §7). A non-nil error return means an
// internal invariant was violated (e.g. the solver backend itself failed);
// the HTTP/CLI collaborator translates that into a generic 5xx.
func Solve(input Input, catalog *Catalog, timeLimitSeconds float64, logSink *[]string) (Output, error) {
	log := func(line string) {
		if logSink != nil {
			*logSink = append(*logSink, line)
		}
	}

	salvaged := rawPeopleOrder(input.People)

	demand, canonicalShifts, verr := ValidateInput(input, catalog)
	if verr != nil {
		return AssembleValidationError(verr.Code, verr.Message, verr.Details, salvaged, demandDiagFromDetails(verr)), nil
	}

	weights := DefaultWeights()
	if input.Weights != nil {
		weights = *input.Weights
	}

	avail, verr := AnalyzeAvailability(demand, input.People, catalog)
	if verr != nil {
		return AssembleValidationError(verr.Code, verr.Message, verr.Details, salvaged, &demand.Diagnostics), nil
	}

	model, verr := BuildModel(demand, input.People, canonicalShifts, catalog, demand.PreviousMonthNightCarry, input.Rules, weights, input.WishOffs)
	if verr != nil {
		return AssembleValidationError(verr.Code, verr.Message, verr.Details, salvaged, &demand.Diagnostics), nil
	}

	log(fmt.Sprintf("solving: %d days, %d people, %d shifts", demand.Days, len(input.People), len(canonicalShifts)))

	result, err := RunSolver(model, timeLimitSeconds)
	if err != nil {
		return Output{}, fmt.Errorf("internal solver failure: %w", err)
	}

	if !result.Feasible {
		candidates, bounds, conflicts := BuildInfeasibilityReport(demand, input.People, avail, demand.PreviousMonthNightCarry, input.WishOffs)
		return AssembleInfeasible(demand, input.People, avail, candidates, bounds, conflicts, *logSinkOrNil(logSink)), nil
	}

	summary := BuildSummary(result, model, demand, input.People, demand.PreviousMonthNightCarry, input.WishOffs)
	return AssembleFeasible(result, model, demand, input.People, avail, summary, *logSinkOrNil(logSink)), nil
}

func rawPeopleOrder(people []Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.ID
	}
	return out
}

func logSinkOrNil(sink *[]string) *[]string {
	if sink == nil {
		empty := []string{}
		return &empty
	}
	return sink
}

// demandDiagFromDetails recovers the demand diagnostics a ValidationError
// may carry (e.g. total_need_zero attaches it under details["demand"]).
func demandDiagFromDetails(verr *errs.ValidationError) *DemandDiagnostics {
	if verr == nil || verr.Details == nil {
		return nil
	}
	if diag, ok := verr.Details["demand"].(DemandDiagnostics); ok {
		return &diag
	}
	return nil
}
