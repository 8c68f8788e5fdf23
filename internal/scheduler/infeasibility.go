package scheduler

// BuildInfeasibilityReport produces the three diagnostic families spec §4.7
// describes when the solver finds no feasible solution: unreachable slot
// candidates, weekly/monthly bound shortfalls (with min>max cross-checks),
// and wish-off conflicts.
func BuildInfeasibilityReport(demand *PreparedDemand, people []Person, avail *Availability, carry PreviousMonthNightCarry, wishOffs map[string][]int) ([]SlotCandidate, []BoundShortfall, []WishOffConflict) {
	candidates := slotCandidates(demand, avail, carry)
	bounds := boundShortfalls(demand, people)
	conflicts := wishOffConflicts(demand, people, wishOffs)
	return candidates, bounds, conflicts
}

func slotCandidates(demand *PreparedDemand, avail *Availability, carry PreviousMonthNightCarry) []SlotCandidate {
	var out []SlotCandidate
	for d := 1; d <= demand.Days; d++ {
		needs := demand.NeedTemplate[demand.DayTypes[d-1]]
		for si, slot := range Slots {
			need := needs[needKeyForSlot(slot)]
			if slot == "0-7" && d == 1 {
				need -= carry.Count()
				if need < 0 {
					need = 0
				}
			}
			maxPossible := avail.Capacity[d-1][si]
			if maxPossible < need {
				out = append(out, SlotCandidate{Date: d, Slot: slot, Need: need, MaxPossible: maxPossible})
			}
		}
	}
	return out
}

// availableDays counts the days in [from,to] not blocked by fixed-off
// weekday or a specific unavailable date for person p.
func availableDays(p Person, weekdayOfDay1, from, to int) int {
	count := 0
	for d := from; d <= to; d++ {
		if p.FixedOffWeekdays[weekday(weekdayOfDay1, d)] {
			continue
		}
		if p.UnavailableDates[d] {
			continue
		}
		count++
	}
	return count
}

func boundShortfalls(demand *PreparedDemand, people []Person) []BoundShortfall {
	var out []BoundShortfall
	weeks := weekWindows(demand.WeekdayOfDay1, demand.Days)

	for _, p := range people {
		if p.WeeklyMin > 0 && p.WeeklyMax > 0 && p.WeeklyMin > p.WeeklyMax {
			out = append(out, BoundShortfall{PersonID: p.ID, Scope: "weekly", Kind: "weekly_min_exceeds_max", Min: p.WeeklyMin, Max: p.WeeklyMax})
		}
		if p.MonthlyMin > 0 && p.MonthlyMax > 0 && p.MonthlyMin > p.MonthlyMax {
			out = append(out, BoundShortfall{PersonID: p.ID, Scope: "monthly", Kind: "monthly_min_exceeds_max", Min: p.MonthlyMin, Max: p.MonthlyMax})
		}

		if p.WeeklyMin > 0 {
			for _, w := range weeks {
				avail := availableDays(p, demand.WeekdayOfDay1, w[0], w[1])
				if p.WeeklyMin > avail {
					out = append(out, BoundShortfall{PersonID: p.ID, Scope: "weekly", Min: p.WeeklyMin, Available: avail, Missing: p.WeeklyMin - avail})
				}
			}
		}
		if p.MonthlyMin > 0 {
			avail := availableDays(p, demand.WeekdayOfDay1, 1, demand.Days)
			if p.MonthlyMin > avail {
				out = append(out, BoundShortfall{PersonID: p.ID, Scope: "monthly", Min: p.MonthlyMin, Available: avail, Missing: p.MonthlyMin - avail})
			}
		}
	}
	return out
}

func wishOffConflicts(demand *PreparedDemand, people []Person, wishOffs map[string][]int) []WishOffConflict {
	var out []WishOffConflict
	weeks := weekWindows(demand.WeekdayOfDay1, demand.Days)

	for _, p := range people {
		wish := map[int]bool{}
		for day := range p.RequestedOffDates {
			wish[day] = true
		}
		for _, d := range wishOffs[p.ID] {
			wish[d] = true
		}
		if len(wish) == 0 {
			continue
		}

		if p.WeeklyMin > 0 {
			for _, w := range weeks {
				avail := availableDaysExcludingWishOff(p, demand.WeekdayOfDay1, w[0], w[1], wish)
				if p.WeeklyMin > avail {
					out = append(out, WishOffConflict{PersonID: p.ID, Scope: "weekly", Missing: p.WeeklyMin - avail})
				}
			}
		}
		if p.MonthlyMin > 0 {
			avail := availableDaysExcludingWishOff(p, demand.WeekdayOfDay1, 1, demand.Days, wish)
			if p.MonthlyMin > avail {
				out = append(out, WishOffConflict{PersonID: p.ID, Scope: "monthly", Missing: p.MonthlyMin - avail})
			}
		}
	}
	return out
}

func availableDaysExcludingWishOff(p Person, weekdayOfDay1, from, to int, wish map[int]bool) int {
	count := 0
	for d := from; d <= to; d++ {
		if p.FixedOffWeekdays[weekday(weekdayOfDay1, d)] {
			continue
		}
		if p.UnavailableDates[d] {
			continue
		}
		if wish[d] {
			continue
		}
		count++
	}
	return count
}
