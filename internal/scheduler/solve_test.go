package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSolveTrivialFeasibleAssignsExactlyWhatIsNeeded is the "trivial
// feasible" worked example: one day, one day-slot with need 1, one
// person capable of covering it. That person can work only "DA", which
// reaches none of "18-21"/"21-23"/"0-7", so the Summary Reporter's fixed
// night-slot reference of 2 (spec §4.6) produces an unavoidable
// baseline shortage of 6 (2 per night slot) on top of the satisfied
// day demand — the Model Builder's coverage and objective terms must
// still land on that exact number, not zero and not something else.
func TestSolveTrivialFeasibleAssignsExactlyWhatIsNeeded(t *testing.T) {
	catalog := testCatalog(t)
	in := Input{
		Days:          1,
		WeekdayOfDay1: 0,
		DayTypeByDate: []string{"A"},
		NeedTemplate:  map[string]map[string]int{"A": {"7-9": 1}},
		Shifts:        []Shift{{Code: "DA", Start: 7, End: 15}, {Code: "NA", Start: 21, End: 7}},
		People:        []Person{{ID: "p1", CanWork: map[string]bool{"DA": true}}},
	}

	out, err := Solve(in, catalog, 5, nil)
	require.Nil(t, err)
	require.Nil(t, out.Error)
	assert.False(t, out.Infeasible)

	assert.Equal(t, 6, out.Summary.Totals.Shortage)
	assert.Equal(t, 0, out.Summary.Totals.Overstaff)
	assert.Equal(t, 1, out.Summary.Totals.Assigned)
	assert.Equal(t, []Assignment{{Date: 1, StaffID: "p1", Shift: "DA"}}, out.Assignments)
}

// TestSolveNightSlotUpperBoundTracksNeedPastDayOne guards against the
// "0-7" hard upper bound regressing to a hardcoded constant on any day
// other than day 1 (BuildModel constraint 10). The template demands 3
// covering "NA" shifts per day (which, being a single shift spanning
// both "21-23" and "0-7", also satisfies the "21-23" hard cap at the
// same raw need); with four people available, a "0-7" bound stuck at 2
// would force the solver to leave a second person idle each day. The
// summary still measures against the Summary Reporter's fixed
// night-slot references: "18-21" stays uncoverable by this catalog and
// reports a shortage of 2 per day, while 3 people on "21-23" and on
// "0-7" each exceed the upper reference of 2 by one per day.
func TestSolveNightSlotUpperBoundTracksNeedPastDayOne(t *testing.T) {
	catalog := testCatalog(t)
	people := make([]Person, 4)
	for i := range people {
		people[i] = Person{ID: personID(i), CanWork: map[string]bool{"NA": true}}
	}

	in := Input{
		Days:          2,
		WeekdayOfDay1: 0,
		DayTypeByDate: []string{"A", "A"},
		NeedTemplate:  map[string]map[string]int{"A": {"0-7": 3, "18-24": 3}},
		Shifts:        []Shift{{Code: "DA", Start: 7, End: 15}, {Code: "NA", Start: 21, End: 7}},
		People:        people,
	}

	out, err := Solve(in, catalog, 5, nil)
	require.Nil(t, err)
	require.Nil(t, out.Error)
	assert.False(t, out.Infeasible)

	assert.Equal(t, 4, out.Summary.Totals.Shortage)
	assert.Equal(t, 4, out.Summary.Totals.Overstaff)
	assert.Equal(t, 6, out.Summary.Totals.Assigned)

	day2Covering := 0
	for _, a := range out.Assignments {
		if a.Date == 2 && a.Shift == "NA" {
			day2Covering++
		}
	}
	assert.Equal(t, 3, day2Covering)
}

// TestSolveAppliesPreviousMonthNightCarryOnDayOne is the "night carry"
// worked example: a day-1 "0-7" need of 2 fully absorbed by carry from
// last month reduces the effective need (and hence the hard upper
// bound on "0-7" coverage) to zero, so the only available person is
// never assigned — yet the Summary Reporter still adds the carry count
// back into "actual" for "0-7" (spec §4.6), landing exactly on the
// fixed need of 2 with zero reported shortage for that slot.
func TestSolveAppliesPreviousMonthNightCarryOnDayOne(t *testing.T) {
	catalog := testCatalog(t)
	in := Input{
		Days:          1,
		WeekdayOfDay1: 0,
		DayTypeByDate: []string{"A"},
		NeedTemplate:  map[string]map[string]int{"A": {"0-7": 2, "18-24": 2}},
		Shifts:        []Shift{{Code: "DA", Start: 7, End: 15}, {Code: "NA", Start: 21, End: 7}},
		People:        []Person{{ID: "p1", CanWork: map[string]bool{"NA": true}}},
		PreviousMonthNightCarry: PreviousMonthNightCarry{
			NA: []string{"carried1", "carried2"},
		},
	}

	out, err := Solve(in, catalog, 5, nil)
	require.Nil(t, err)
	require.Nil(t, out.Error)
	assert.False(t, out.Infeasible)

	// "18-21" (uncoverable by this catalog) and "21-23" (blocked because
	// the only shift that could cover it also covers "0-7", whose hard
	// cap the carry has already pinned to zero) each contribute their
	// fixed-reference shortage of 2; "0-7" itself is fully absorbed by
	// the carry and contributes none.
	assert.Equal(t, 4, out.Summary.Totals.Shortage)
	assert.Empty(t, out.Assignments)
}

func personID(i int) string {
	return string(rune('a'+i)) + "-person"
}
