package scheduler

// peopleOrder lists every person id in input order, once (spec §8 invariant
// "PeopleOrder").
func peopleOrder(people []Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.ID
	}
	return out
}

// buildVarCountsDiagnostic renders Model.VarCounts with deterministic keys.
func buildVarCountsDiagnostic(m *Model) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return map[string]int{
		"bool": m.VarCounts["bool"],
		"int":  m.VarCounts["int"],
	}
}

// AssembleFeasible builds the canonical Output for a feasible/optimal
// solve: assignments, the day-major matrix, and the summary (spec §3
// Output, §4.6).
func AssembleFeasible(result *SolveResult, m *Model, demand *PreparedDemand, people []Person, avail *Availability, summary Summary, logOutput []string) Output {
	order := peopleOrder(people)

	var assignments []Assignment
	matrix := make([]MatrixDay, demand.Days)
	for d := 1; d <= demand.Days; d++ {
		row := MatrixDay{Date: d, Shifts: map[string]string{}}
		for i, p := range people {
			for _, k := range feasibleCodes(p, m.Shifts) {
				if SolutionX(result, m, d, i, k) {
					code := m.Shifts[k].Code
					assignments = append(assignments, Assignment{Date: d, StaffID: p.ID, Shift: code})
					row.Shifts[p.ID] = code
				}
			}
			if _, ok := row.Shifts[p.ID]; !ok {
				row.Shifts[p.ID] = ""
			}
		}
		matrix[d-1] = row
	}

	return Output{
		Assignments: assignments,
		PeopleOrder: order,
		Matrix:      matrix,
		Summary:     summary,
		Diagnostics: &OutputDiagnostics{
			Availability: availabilityDiagnosticMap(avail, demand.Days),
			VarCounts:    buildVarCountsDiagnostic(m),
			Warnings:     avail.Warnings,
			LogOutput:    logOutput,
		},
	}
}

// AssembleInfeasible builds the Output for the infeasible branch: no
// assignments, diagnostics carrying the three infeasibility families
// (spec §4.7), infeasible=true.
func AssembleInfeasible(demand *PreparedDemand, people []Person, avail *Availability, candidates []SlotCandidate, bounds []BoundShortfall, conflicts []WishOffConflict, logOutput []string) Output {
	var weekly, monthly []BoundShortfall
	for _, b := range bounds {
		if b.Scope == "weekly" {
			weekly = append(weekly, b)
		} else {
			monthly = append(monthly, b)
		}
	}

	return Output{
		PeopleOrder: peopleOrder(people),
		Matrix:      []MatrixDay{},
		Infeasible:  true,
		Summary: Summary{
			Shortage:  []ShortageEntry{},
			Overstaff: []OverstaffEntry{},
			Totals:    SummaryTotals{TotalNeed: demand.Diagnostics.TotalNeed},
			Diagnostics: SummaryDiagnostics{
				Demand:               demand.Diagnostics,
				Weekly:               weekly,
				Monthly:              monthly,
				WishOffConflicts:     conflicts,
				WishOffConflictCount: len(conflicts),
			},
		},
		Diagnostics: &OutputDiagnostics{
			Availability:    availabilityDiagnosticMap(avail, demand.Days),
			VarCounts:       map[string]int{},
			UnmetCandidates: candidates,
			Warnings:        avail.Warnings,
			LogOutput:       logOutput,
		},
	}
}

// AssembleValidationError builds the stable error Output (spec §4.1
// "Error envelope", §7 category 1): empty assignments, peopleOrder
// salvaged from input where possible, and an error block.
func AssembleValidationError(code, message string, details map[string]any, salvagedPeople []string, demandDiag *DemandDiagnostics) Output {
	out := Output{
		PeopleOrder: salvagedPeople,
		Matrix:      []MatrixDay{},
		Assignments: []Assignment{},
		Error:       &ErrorBlock{Code: code, Message: message, Details: details},
		Summary: Summary{
			Shortage:  []ShortageEntry{},
			Overstaff: []OverstaffEntry{},
		},
	}
	if demandDiag != nil {
		out.Summary.Diagnostics.Demand = *demandDiag
	}
	return out
}
