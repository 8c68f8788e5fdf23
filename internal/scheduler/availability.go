package scheduler

import (
	"strconv"

	"github.com/noah-isme/shift-scheduler/internal/scheduler/errs"
)

// needKeyForSlot maps a coverage slot to its NeedTemplate key. "18-24"
// populates both "18-21" and "21-23" identically (spec §3, preserved as-is
// per the spec's Design Notes open question).
func needKeyForSlot(slot string) string {
	switch slot {
	case "18-21", "21-23":
		return "18-24"
	default:
		return slot
	}
}

// Availability holds the per-(day,slot) capacity map produced by the
// Availability Analyzer, plus any shortage-at-zero-capacity warnings.
type Availability struct {
	Capacity [][]int // [day-1][slotIndex]
	Warnings []AvailabilityWarning
}

// weekday returns the 0..6 weekday of day d (1-indexed) given the weekday
// of day 1.
func weekday(weekdayOfDay1, d int) int {
	return (weekdayOfDay1 + (d - 1)) % 7
}

// canCoverSlot reports whether person p has some catalog shift they are
// capable of working that covers slot on day d.
func canCoverSlot(p Person, catalog *Catalog, slot string, d, weekdayOfDay1 int) bool {
	if len(p.CanWork) == 0 {
		return false
	}
	if p.FixedOffWeekdays[weekday(weekdayOfDay1, d)] {
		return false
	}
	if p.UnavailableDates[d] {
		return false
	}
	for code := range p.CanWork {
		s, ok := catalog.Get(code)
		if !ok {
			continue
		}
		if shiftCoversSlot(s, slot) {
			return true
		}
	}
	return false
}

// AnalyzeAvailability computes capacity(d,σ) for every day and coverage
// slot (spec §4.3). It aborts with no_availability only when capacity is
// zero for *every* (d,σ) while demand.Diagnostics.TotalNeed > 0.
func AnalyzeAvailability(demand *PreparedDemand, people []Person, catalog *Catalog) (*Availability, *errs.ValidationError) {
	capacity := make([][]int, demand.Days)
	var warnings []AvailabilityWarning
	anyCapacity := false

	for d := 1; d <= demand.Days; d++ {
		row := make([]int, len(Slots))
		needs := demand.NeedTemplate[demand.DayTypes[d-1]]
		for si, slot := range Slots {
			count := 0
			for _, p := range people {
				if canCoverSlot(p, catalog, slot, d, demand.WeekdayOfDay1) {
					count++
				}
			}
			row[si] = count
			if count > 0 {
				anyCapacity = true
			}
			need := needs[needKeyForSlot(slot)]
			if need > 0 && count == 0 {
				warnings = append(warnings, AvailabilityWarning{Date: d, Slot: slot, Need: need, Available: 0})
			}
		}
		capacity[d-1] = row
	}

	avail := &Availability{Capacity: capacity, Warnings: warnings}

	if !anyCapacity && demand.Diagnostics.TotalNeed > 0 {
		return avail, errs.New(errs.CodeNoAvailability, "no person can cover any demanded slot", map[string]any{
			"availability": availabilityDiagnosticMap(avail, demand.Days),
		})
	}

	return avail, nil
}

// availabilityDiagnosticMap renders the capacity map in the
// diagnostics.availability["<day>"]["<slot>"] shape the spec's concrete
// scenario 2 and original_source/tests/test_positive_need_no_availability.py
// require.
func availabilityDiagnosticMap(a *Availability, days int) map[string]map[string]int {
	out := make(map[string]map[string]int, days)
	for d := 1; d <= days; d++ {
		row := make(map[string]int, len(Slots))
		for si, slot := range Slots {
			row[slot] = a.Capacity[d-1][si]
		}
		out[strconv.Itoa(d)] = row
	}
	return out
}
