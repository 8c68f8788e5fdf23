package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/shift-scheduler/internal/scheduler/errs"
)

func TestPeopleOrderPreservesInputOrder(t *testing.T) {
	people := []Person{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	assert.Equal(t, []string{"c", "a", "b"}, peopleOrder(people))
}

func TestAssembleValidationErrorSalvagesPeopleOrder(t *testing.T) {
	out := AssembleValidationError(errs.CodeInvalidDays, "days must be positive", nil, []string{"p1", "p2"}, nil)

	assert := assert.New(t)
	assert.NotNil(out.Error)
	assert.Equal(errs.CodeInvalidDays, out.Error.Code)
	assert.Equal([]string{"p1", "p2"}, out.PeopleOrder)
	assert.Empty(out.Assignments)
	assert.Equal([]MatrixDay{}, out.Matrix)
}

func TestAssembleInfeasibleSplitsBoundsByScope(t *testing.T) {
	demand := &PreparedDemand{Days: 1, DayTypes: []string{"A"}, Diagnostics: DemandDiagnostics{TotalNeed: 3}}
	people := []Person{{ID: "p1"}}
	avail := &Availability{Capacity: [][]int{{1, 1, 1, 1, 1, 1}}}
	bounds := []BoundShortfall{
		{PersonID: "p1", Scope: "weekly", Min: 5, Available: 2, Missing: 3},
		{PersonID: "p1", Scope: "monthly", Min: 20, Available: 10, Missing: 10},
	}
	conflicts := []WishOffConflict{{PersonID: "p1", Scope: "weekly", Missing: 1}}

	out := AssembleInfeasible(demand, people, avail, nil, bounds, conflicts, nil)

	assert := assert.New(t)
	assert.True(out.Infeasible)
	assert.Len(out.Summary.Diagnostics.Weekly, 1)
	assert.Len(out.Summary.Diagnostics.Monthly, 1)
	assert.Equal(1, out.Summary.Diagnostics.WishOffConflictCount)
	assert.Equal([]string{"p1"}, out.PeopleOrder)
}

func TestBuildVarCountsDiagnosticHandlesNilModel(t *testing.T) {
	assert.Equal(t, map[string]int{}, buildVarCountsDiagnostic(nil))
}
