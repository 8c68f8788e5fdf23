package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shift-scheduler/internal/scheduler/errs"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Shift{
		{Code: "DA", Name: "Day A", Start: 7, End: 15},
		{Code: "NA", Name: "Night A", Start: 21, End: 7},
	})
	require.Nil(t, err)
	return c
}

func TestValidateInputRejectsNonPositiveDays(t *testing.T) {
	catalog := testCatalog(t)
	_, _, verr := ValidateInput(Input{Days: 0}, catalog)
	require.NotNil(t, verr)
	assert.Equal(t, errs.CodeInvalidDays, verr.Code)
}

func TestValidateInputRejectsBadWeekday(t *testing.T) {
	catalog := testCatalog(t)
	_, _, verr := ValidateInput(Input{Days: 1, WeekdayOfDay1: 7}, catalog)
	require.NotNil(t, verr)
	assert.Equal(t, errs.CodeInvalidWeekdayOfDay1, verr.Code)
}

func TestValidateInputRejectsUnknownDayType(t *testing.T) {
	catalog := testCatalog(t)
	in := Input{
		Days:          1,
		WeekdayOfDay1: 0,
		DayTypeByDate: []string{"A"},
		NeedTemplate:  map[string]map[string]int{"B": {"7-9": 1}},
		Shifts:        []Shift{{Code: "DA", Start: 7, End: 15}, {Code: "NA", Start: 21, End: 7}},
	}
	_, _, verr := ValidateInput(in, catalog)
	require.NotNil(t, verr)
	assert.Equal(t, errs.CodeUnknownDayType, verr.Code)
}

func TestValidateInputSanitizesNeedTemplateDefaults(t *testing.T) {
	catalog := testCatalog(t)
	in := Input{
		Days:          1,
		WeekdayOfDay1: 0,
		DayTypeByDate: []string{"A"},
		NeedTemplate:  map[string]map[string]int{"A": {"7-9": -3, "9-15": 2}},
		Shifts:        []Shift{{Code: "DA", Start: 7, End: 15}, {Code: "NA", Start: 21, End: 7}},
	}
	prepared, _, verr := ValidateInput(in, catalog)
	require.Nil(t, verr)
	assert.Equal(t, 0, prepared.NeedTemplate["A"]["7-9"])
	assert.Equal(t, 2, prepared.NeedTemplate["A"]["9-15"])
	assert.Equal(t, 0, prepared.NeedTemplate["A"]["18-24"])
}

func TestValidateInputShiftDefinitionMismatch(t *testing.T) {
	catalog := testCatalog(t)
	in := Input{
		Days:          1,
		WeekdayOfDay1: 0,
		DayTypeByDate: []string{"A"},
		NeedTemplate:  map[string]map[string]int{"A": {"7-9": 1}},
		Shifts:        []Shift{{Code: "DA", Start: 8, End: 15}, {Code: "NA", Start: 21, End: 7}},
	}
	_, _, verr := ValidateInput(in, catalog)
	require.NotNil(t, verr)
	assert.Equal(t, errs.CodeShiftDefinitionMismatch, verr.Code)
}

func TestValidateInputUnknownShiftCodeForPerson(t *testing.T) {
	catalog := testCatalog(t)
	in := Input{
		Days:          1,
		WeekdayOfDay1: 0,
		DayTypeByDate: []string{"A"},
		NeedTemplate:  map[string]map[string]int{"A": {"7-9": 1}},
		Shifts:        []Shift{{Code: "DA", Start: 7, End: 15}, {Code: "NA", Start: 21, End: 7}},
		People:        []Person{{ID: "p1", CanWork: map[string]bool{"ZZ": true}}},
	}
	_, _, verr := ValidateInput(in, catalog)
	require.NotNil(t, verr)
	assert.Equal(t, errs.CodeUnknownShiftCode, verr.Code)
}

func TestValidateInputTotalNeedZero(t *testing.T) {
	catalog := testCatalog(t)
	in := Input{
		Days:          1,
		WeekdayOfDay1: 0,
		DayTypeByDate: []string{"A"},
		NeedTemplate:  map[string]map[string]int{"A": {}},
		Shifts:        []Shift{{Code: "DA", Start: 7, End: 15}, {Code: "NA", Start: 21, End: 7}},
	}
	_, _, verr := ValidateInput(in, catalog)
	require.NotNil(t, verr)
	assert.Equal(t, errs.CodeTotalNeedZero, verr.Code)
}

func TestValidateInputIdempotentOnItsOwnOutput(t *testing.T) {
	catalog := testCatalog(t)
	in := Input{
		Days:          2,
		WeekdayOfDay1: 1,
		DayTypeByDate: []string{"A", "A"},
		NeedTemplate:  map[string]map[string]int{"A": {"7-9": 1, "9-15": 1}},
		Shifts:        []Shift{{Code: "DA", Start: 7, End: 15}, {Code: "NA", Start: 21, End: 7}},
	}
	first, shifts1, verr := ValidateInput(in, catalog)
	require.Nil(t, verr)

	in2 := in
	in2.NeedTemplate = first.NeedTemplate
	in2.DayTypeByDate = first.DayTypes
	second, shifts2, verr2 := ValidateInput(in2, catalog)
	require.Nil(t, verr2)

	assert.Equal(t, first.Diagnostics.TotalNeed, second.Diagnostics.TotalNeed)
	assert.Equal(t, first.NeedTemplate, second.NeedTemplate)
	assert.Equal(t, shifts1, shifts2)
}

func TestNormalizeWeekday(t *testing.T) {
	idx, ok := NormalizeWeekday("Sun")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = NormalizeWeekday("月")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = NormalizeWeekday("nope")
	assert.False(t, ok)
}
