package scheduler

import (
	"github.com/noah-isme/shift-scheduler/internal/scheduler/errs"
)

// templateSlots is the fixed key set every day-type entry in NeedTemplate
// must carry after sanitization (spec §4.1 step 3).
var templateSlots = []string{"7-9", "9-15", "16-18", "18-24", "0-7"}

// weekdayNames maps both ASCII and single-character native weekday names to
// the 0=Sun..6=Sat index space Person.FixedOffWeekdays uses (spec §3).
var weekdayNames = map[string]int{
	"Sun": 0, "Mon": 1, "Tue": 2, "Wed": 3, "Thu": 4, "Fri": 5, "Sat": 6,
	"日": 0, "月": 1, "火": 2, "水": 3, "木": 4, "金": 5, "土": 6,
}

// NormalizeWeekday resolves a weekday token (ASCII name, native single
// character, or a numeric "0".."6" string) to its 0..6 index.
func NormalizeWeekday(token string) (int, bool) {
	if idx, ok := weekdayNames[token]; ok {
		return idx, true
	}
	if len(token) == 1 && token[0] >= '0' && token[0] <= '6' {
		return int(token[0] - '0'), true
	}
	return 0, false
}

// ValidateInput performs the eight ordered validation steps of spec §4.1,
// producing a PreparedDemand plus the catalog-reconciled shift list on
// success, or a ValidationError describing the first failure encountered.
// Nothing here panics or returns a bare Go error: every failure path is a
// *errs.ValidationError, the core's "Err" variant (spec §9).
func ValidateInput(in Input, catalog *Catalog) (*PreparedDemand, []Shift, *errs.ValidationError) {
	// Step 1: days / weekdayOfDay1.
	if in.Days <= 0 {
		return nil, nil, errs.New(errs.CodeInvalidDays, "days must be a positive integer", nil)
	}
	if in.WeekdayOfDay1 < 0 || in.WeekdayOfDay1 > 6 {
		return nil, nil, errs.New(errs.CodeInvalidWeekdayOfDay1, "weekdayOfDay1 must be in [0,6]", nil)
	}

	// Step 2: dayTypeByDate, as a sequence or a day->type mapping.
	dayTypes, verr := normalizeDayTypes(in)
	if verr != nil {
		return nil, nil, verr
	}

	// Step 3: sanitize needTemplate.
	sanitized := sanitizeNeedTemplate(in.NeedTemplate)

	// Step 4: every referenced day-type must exist in the sanitized template.
	for _, dt := range dayTypes {
		if _, ok := sanitized[dt]; !ok {
			return nil, nil, errs.New(errs.CodeUnknownDayType, "day type not present in needTemplate", map[string]any{"dayType": dt})
		}
	}

	// Step 5: cross-validate shift definitions against the catalog.
	canonical, unknown, mismatched, missing := catalog.Reconcile(in.Shifts)
	if len(unknown) > 0 || len(mismatched) > 0 || len(missing) > 0 {
		return nil, nil, errs.New(errs.CodeShiftDefinitionMismatch, "shift definitions do not match the catalog", map[string]any{
			"unknown": unknown, "mismatched": mismatched, "missing": missing,
		})
	}

	// Step 6: every person's canWork code must exist in the catalog.
	var offenders []string
	for _, p := range in.People {
		for code := range p.CanWork {
			if _, ok := catalog.Get(code); !ok {
				offenders = append(offenders, code)
			}
		}
	}
	if len(offenders) > 0 {
		return nil, nil, errs.New(errs.CodeUnknownShiftCode, "person references an unknown shift code", map[string]any{"codes": offenders})
	}

	// Step 7: sanitize previousMonthNightCarry to a record of three lists
	// (non-list inputs arrive as nil slices already, which sanitize to
	// empty here rather than being read raw off Input downstream).
	carry := PreviousMonthNightCarry{
		NA: append([]string(nil), in.PreviousMonthNightCarry.NA...),
		NB: append([]string(nil), in.PreviousMonthNightCarry.NB...),
		NC: append([]string(nil), in.PreviousMonthNightCarry.NC...),
	}

	// Step 8: per-day totals and totalNeed.
	perDayTotals := make([]int, in.Days)
	totalNeed := 0
	for d := 0; d < in.Days; d++ {
		dayType := dayTypes[d]
		needs := sanitized[dayType]
		dayTotal := needs["7-9"] + needs["9-15"] + needs["16-18"] + needs["18-24"]
		// "0-7" need is accounted separately against carry at summary time,
		// but it still contributes to the raw totalNeed figure here.
		dayTotal += needs["0-7"]
		perDayTotals[d] = dayTotal
		totalNeed += dayTotal
	}

	sample := dayTypes
	if len(sample) > 7 {
		sample = sample[:7]
	}

	diag := DemandDiagnostics{
		Days:          in.Days,
		WeekdayOfDay1: in.WeekdayOfDay1,
		DayTypeSample: append([]string(nil), sample...),
		PerDayTotals:  perDayTotals,
		TotalNeed:     totalNeed,
	}

	if totalNeed == 0 {
		return nil, nil, errs.New(errs.CodeTotalNeedZero, "total demand across the month is zero", map[string]any{"demand": diag})
	}

	prepared := &PreparedDemand{
		Days:                    in.Days,
		WeekdayOfDay1:           in.WeekdayOfDay1,
		DayTypes:                dayTypes,
		NeedTemplate:            sanitized,
		Diagnostics:             diag,
		PreviousMonthNightCarry: carry,
	}
	return prepared, canonical, nil
}

func normalizeDayTypes(in Input) ([]string, *errs.ValidationError) {
	if in.DayTypeByDate != nil {
		if len(in.DayTypeByDate) != in.Days {
			return nil, errs.New(errs.CodeInvalidDayTypeLength, "dayTypeByDate length must equal days", map[string]any{"got": len(in.DayTypeByDate), "want": in.Days})
		}
		out := make([]string, in.Days)
		for i, v := range in.DayTypeByDate {
			if v == "" {
				return nil, errs.New(errs.CodeInvalidDayTypeValue, "dayTypeByDate entries must be non-empty", map[string]any{"index": i})
			}
			out[i] = v
		}
		return out, nil
	}
	if in.DayTypeByDateMap != nil {
		out := make([]string, in.Days)
		for d := 1; d <= in.Days; d++ {
			v, ok := in.DayTypeByDateMap[d]
			if !ok || v == "" {
				return nil, errs.New(errs.CodeMissingDayType, "dayTypeByDate missing an entry", map[string]any{"day": d})
			}
			out[d-1] = v
		}
		return out, nil
	}
	return nil, errs.New(errs.CodeInvalidDayType, "dayTypeByDate must be a sequence or a day->type mapping", nil)
}

func sanitizeNeedTemplate(raw map[string]map[string]int) NeedTemplate {
	out := make(NeedTemplate, len(raw))
	for dayType, needs := range raw {
		row := make(map[string]int, len(templateSlots))
		for _, slot := range templateSlots {
			v, ok := needs[slot]
			if !ok || v < 0 {
				v = 0
			}
			row[slot] = v
		}
		out[dayType] = row
	}
	return out
}
