package scheduler

// BuildSummary computes the feasible-path summary (spec §4.6): per-slot
// shortage/overstaff, totals, honored-off violations, and the
// inconsistent_summary diagnostic flag.
func BuildSummary(result *SolveResult, m *Model, demand *PreparedDemand, people []Person, carry PreviousMonthNightCarry, wishOffs map[string][]int) Summary {
	var shortage []ShortageEntry
	var overstaff []OverstaffEntry
	totals := SummaryTotals{TotalNeed: demand.Diagnostics.TotalNeed}

	for d := 1; d <= demand.Days; d++ {
		needs := demand.NeedTemplate[demand.DayTypes[d-1]]
		for _, slot := range Slots {
			actual := SolutionS(result, m, d, slot)
			if d == 1 && slot == "0-7" {
				actual += int64(carry.Count())
			}

			need := int64(needs[needKeyForSlot(slot)])
			var upper int64
			switch slot {
			case "7-9", "9-15", "16-18":
				upper = need + 1
			case "18-21":
				need = 2
				upper = 3
			case "21-23":
				need = 2
				upper = 2
			case "0-7":
				need = 2
				upper = 2
			}

			if s := need - actual; s > 0 {
				shortage = append(shortage, ShortageEntry{Date: d, Slot: slot, Lack: int(s)})
				totals.Shortage += int(s)
			}
			if o := actual - upper; o > 0 {
				overstaff = append(overstaff, OverstaffEntry{Date: d, Slot: slot, Excess: int(o)})
				totals.Overstaff += int(o)
			}
		}
	}

	assigned := 0
	for d := 1; d <= demand.Days; d++ {
		for i := range people {
			if cpModelWorked(result, m, d, i) {
				assigned++
			}
		}
	}
	totals.Assigned = assigned

	violations := 0
	for i, p := range people {
		wish := map[int]bool{}
		for day := range p.RequestedOffDates {
			wish[day] = true
		}
		for _, day := range wishOffs[p.ID] {
			wish[day] = true
		}
		for d := 1; d <= demand.Days; d++ {
			if wish[d] && cpModelWorked(result, m, d, i) {
				violations++
			}
		}
	}
	totals.WishOffViolations = violations
	totals.RequestedOffViolations = violations
	totals.ViolatedPreferences = violations

	inconsistent := shouldFlagSummaryInconsistency(totals.TotalNeed, totals.Assigned, totals.Shortage)

	return Summary{
		Shortage:  shortage,
		Overstaff: overstaff,
		Totals:    totals,
		Diagnostics: SummaryDiagnostics{
			Demand:              demand.Diagnostics,
			InconsistentSummary: inconsistent,
		},
	}
}

// shouldFlagSummaryInconsistency implements the consistency check of spec
// §4.6: total demand is positive, fewer people are assigned than demanded,
// yet no shortage was reported — a contradiction the solver should never
// produce, grounded on
// original_source/tests/test_summary_consistency.py.
func shouldFlagSummaryInconsistency(totalNeed, assigned, shortage int) bool {
	return totalNeed > 0 && assigned < totalNeed && shortage == 0
}

func cpModelWorked(result *SolveResult, m *Model, d, i int) bool {
	for _, k := range feasibleCodes(m.People[i], m.Shifts) {
		if SolutionX(result, m, d, i, k) {
			return true
		}
	}
	return false
}
