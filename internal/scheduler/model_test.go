package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shift-scheduler/internal/scheduler/errs"
)

func testDemand(days, weekdayOfDay1 int, dayType string, needs map[string]int) *PreparedDemand {
	dayTypes := make([]string, days)
	for i := range dayTypes {
		dayTypes[i] = dayType
	}
	return &PreparedDemand{
		Days:          days,
		WeekdayOfDay1: weekdayOfDay1,
		DayTypes:      dayTypes,
		NeedTemplate:  NeedTemplate{dayType: needs},
	}
}

func TestBuildModelRejectsEmptyRosterOrShifts(t *testing.T) {
	demand := testDemand(1, 0, "A", map[string]int{"7-9": 1})
	shifts := []Shift{{Code: "DA", Start: 7, End: 15}}

	_, verr := BuildModel(demand, nil, shifts, nil, PreviousMonthNightCarry{}, Rules{}, DefaultWeights(), nil)
	require.NotNil(t, verr)
	assert.Equal(t, errs.CodeNoAssignmentVariables, verr.Code)

	_, verr = BuildModel(demand, []Person{{ID: "p1"}}, nil, nil, PreviousMonthNightCarry{}, Rules{}, DefaultWeights(), nil)
	require.NotNil(t, verr)
	assert.Equal(t, errs.CodeNoAssignmentVariables, verr.Code)
}

// TestBuildModelSkipsAssignmentVariablesForBlockedPeople verifies
// constraints 1/2: a person blocked by a fixed weekday off gets a work
// variable (forced to zero downstream) but no x[d,i,k] decision
// variables at all, while an unblocked, capable person gets exactly
// one x variable per feasible shift code.
func TestBuildModelSkipsAssignmentVariablesForBlockedPeople(t *testing.T) {
	demand := testDemand(1, 0, "A", map[string]int{"7-9": 1})
	shifts := []Shift{{Code: "DA", Start: 7, End: 15}, {Code: "NA", Start: 21, End: 7}}
	people := []Person{
		{ID: "p1", CanWork: map[string]bool{"DA": true}},
		{ID: "p2", CanWork: map[string]bool{"DA": true}, FixedOffWeekdays: map[int]bool{0: true}},
	}

	m, verr := BuildModel(demand, people, shifts, nil, PreviousMonthNightCarry{}, Rules{}, DefaultWeights(), nil)
	require.Nil(t, verr)

	_, ok := m.Work[workKey{Day: 1, Person: 0}]
	assert.True(t, ok)
	_, ok = m.Work[workKey{Day: 1, Person: 1}]
	assert.True(t, ok)

	_, ok = m.X[xKey{Day: 1, Person: 0, Shift: 0}]
	assert.True(t, ok, "unblocked capable person should get an x variable")
	_, ok = m.X[xKey{Day: 1, Person: 1, Shift: 0}]
	assert.False(t, ok, "blocked person should get no x variables at all")

	assert.Equal(t, 3, m.VarCounts["bool"]) // 2 work vars + 1 x var
	assert.Equal(t, 15, m.VarCounts["int"]) // 6 s + 6 lack + 3 ex, one day
}

func TestWeekWindowsStartsNewWeekOnSunday(t *testing.T) {
	// day 1 is a Wednesday (weekday index 3); the first Sunday is day 5.
	weeks := weekWindows(3, 14)
	assert.Equal(t, [][2]int{{1, 4}, {5, 11}, {12, 14}}, weeks)
}

func TestWeekWindowsSingleWeekWhenShorterThanAWeek(t *testing.T) {
	weeks := weekWindows(0, 5)
	assert.Equal(t, [][2]int{{1, 5}}, weeks)
}

func TestPersonIndexFindsAndMisses(t *testing.T) {
	people := []Person{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, personIndex(people, "b"))
	assert.Equal(t, -1, personIndex(people, "z"))
}

func TestFeasibleCodesFiltersByCanWork(t *testing.T) {
	shifts := []Shift{{Code: "DA"}, {Code: "NA"}, {Code: "EA"}}
	p := Person{CanWork: map[string]bool{"DA": true, "EA": true}}
	assert.Equal(t, []int{0, 2}, feasibleCodes(p, shifts))
}
