package scheduler

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/noah-isme/shift-scheduler/internal/scheduler/errs"
)

type xKey struct {
	Day    int
	Person int
	Shift  int
}

type workKey struct {
	Day    int
	Person int
}

type sKey struct {
	Day  int
	Slot string
}

// Model bundles the CP-SAT builder together with the decision variables the
// Solver Driver and Summary/Infeasibility Reporter need to inspect after
// solving (spec §4.4, §9 "keyed-by-tuple dictionaries implemented as dense
// arrays with index arithmetic" — here as Go maps keyed by small structs,
// the idiomatic equivalent).
type Model struct {
	Builder *cpmodel.CpModelBuilder

	X    map[xKey]cpmodel.BoolVar
	Work map[workKey]cpmodel.BoolVar
	S    map[sKey]cpmodel.IntVar
	Lack map[sKey]cpmodel.IntVar
	Ex   map[sKey]cpmodel.IntVar

	People []Person
	Shifts []Shift
	Days   int

	VarCounts map[string]int
}

// feasibleCodes returns the indices into shifts that person i is capable
// of working, in catalog order.
func feasibleCodes(p Person, shifts []Shift) []int {
	var out []int
	for k, s := range shifts {
		if p.CanWork[s.Code] {
			out = append(out, k)
		}
	}
	return out
}

// BuildModel constructs the CP-SAT model for a prepared demand and roster,
// grounded directly on other_examples' nurses_sat.go.go sample's API usage
// (NewCpModelBuilder, NewBoolVar/NewIntVar, AddExactlyOne/AddAtMostOne,
// AddLessOrEqual, reified equality via OnlyEnforceIf) and on
// original_source/solver/solver.py's constraint set (night rest, consec
// cap, noEarlyAfterDayAB, night-slot bounds, wish-off objective).
func BuildModel(demand *PreparedDemand, people []Person, shifts []Shift, catalog *Catalog, carry PreviousMonthNightCarry, rules Rules, weights Weights, wishOffs map[string][]int) (*Model, *errs.ValidationError) {
	if len(people) == 0 || len(shifts) == 0 {
		return nil, errs.New(errs.CodeNoAssignmentVariables, "no people or no shifts available to build assignment variables", nil)
	}

	b := cpmodel.NewCpModelBuilder()
	m := &Model{
		Builder:   b,
		X:         make(map[xKey]cpmodel.BoolVar),
		Work:      make(map[workKey]cpmodel.BoolVar),
		S:         make(map[sKey]cpmodel.IntVar),
		Lack:      make(map[sKey]cpmodel.IntVar),
		Ex:        make(map[sKey]cpmodel.IntVar),
		People:    people,
		Shifts:    shifts,
		Days:      demand.Days,
		VarCounts: map[string]int{},
	}

	D := demand.Days
	n := len(people)

	// Decision variables x[d,i,k] — only for codes the person can work
	// (constraint 2: capability — realized by never creating the
	// infeasible variable rather than forcing it to zero).
	feasible := make([][]int, n)
	for i, p := range people {
		feasible[i] = feasibleCodes(p, shifts)
	}

	for d := 1; d <= D; d++ {
		wd := weekday(demand.WeekdayOfDay1, d)
		for i, p := range people {
			blocked := p.FixedOffWeekdays[wd] || p.UnavailableDates[d]

			work := b.NewBoolVar().WithName(fmt.Sprintf("work_d%d_i%d", d, i))
			m.Work[workKey{Day: d, Person: i}] = work
			m.VarCounts["bool"]++

			if blocked || len(feasible[i]) == 0 {
				b.AddEquality(work, cpmodel.NewConstant(0))
				continue
			}

			var dayVars []cpmodel.BoolVar
			for _, k := range feasible[i] {
				xv := b.NewBoolVar().WithName(fmt.Sprintf("x_d%d_i%d_k%d", d, i, k))
				m.X[xKey{Day: d, Person: i, Shift: k}] = xv
				dayVars = append(dayVars, xv)
				m.VarCounts["bool"]++
			}

			// Constraint 1: at most one shift per day per person.
			b.AddAtMostOne(dayVars...)

			// work[d,i] == Σ_k x[d,i,k]
			sum := cpmodel.NewLinearExpr()
			for _, xv := range dayVars {
				sum.Add(xv)
			}
			b.AddEquality(work, sum)
		}
	}

	bigN := int64(n)
	// Coverage variables s[d,σ] and the day-slot slack/excess pairs.
	for d := 1; d <= D; d++ {
		dayType := demand.DayTypes[d-1]
		needs := demand.NeedTemplate[dayType]
		for _, slot := range Slots {
			sv := b.NewIntVar(0, bigN).WithName(fmt.Sprintf("s_d%d_%s", d, slot))
			m.S[sKey{Day: d, Slot: slot}] = sv
			m.VarCounts["int"]++

			expr := cpmodel.NewLinearExpr()
			any := false
			for i := range people {
				for _, k := range feasible[i] {
					if shiftCoversSlot(shifts[k], slot) {
						if xv, ok := m.X[xKey{Day: d, Person: i, Shift: k}]; ok {
							expr.Add(xv)
							any = true
						}
					}
				}
			}
			if any {
				b.AddEquality(sv, expr)
			} else {
				b.AddEquality(sv, cpmodel.NewConstant(0))
			}

			need := needs[needKeyForSlot(slot)]
			switch slot {
			case "7-9", "9-15", "16-18":
				lack := b.NewIntVar(0, bigN).WithName(fmt.Sprintf("lack_d%d_%s", d, slot))
				m.Lack[sKey{Day: d, Slot: slot}] = lack
				m.VarCounts["int"]++
				lhs := cpmodel.NewLinearExpr()
				lhs.Add(sv)
				lhs.Add(lack)
				b.AddGreaterOrEqual(lhs, cpmodel.NewConstant(int64(need)))

				ex := b.NewIntVar(0, bigN).WithName(fmt.Sprintf("ex_d%d_%s", d, slot))
				m.Ex[sKey{Day: d, Slot: slot}] = ex
				m.VarCounts["int"]++
				exLower := cpmodel.NewLinearExpr()
				exLower.Add(sv)
				b.AddGreaterOrEqual(ex, addConstantExpr(exLower, -int64(need+1)))
			case "18-21", "21-23":
				lack := b.NewIntVar(0, bigN).WithName(fmt.Sprintf("lack_d%d_%s", d, slot))
				m.Lack[sKey{Day: d, Slot: slot}] = lack
				m.VarCounts["int"]++
				lhs := cpmodel.NewLinearExpr()
				lhs.Add(sv)
				lhs.Add(lack)
				b.AddGreaterOrEqual(lhs, cpmodel.NewConstant(int64(need)))

				// Hard upper bounds (constraint 10).
				if slot == "21-23" {
					b.AddLessOrEqual(sv, cpmodel.NewConstant(int64(need)))
				} else {
					b.AddLessOrEqual(sv, cpmodel.NewConstant(3))
				}
			case "0-7":
				effective := need
				if d == 1 {
					effective = need - carry.Count()
					if effective < 0 {
						effective = 0
					}
				}
				lack := b.NewIntVar(0, bigN).WithName(fmt.Sprintf("lack_d%d_%s", d, slot))
				m.Lack[sKey{Day: d, Slot: slot}] = lack
				m.VarCounts["int"]++
				lhs := cpmodel.NewLinearExpr()
				lhs.Add(sv)
				lhs.Add(lack)
				b.AddGreaterOrEqual(lhs, cpmodel.NewConstant(int64(effective)))

				b.AddLessOrEqual(sv, cpmodel.NewConstant(int64(effective)))
			}
		}
	}

	// Constraint 7: night-rest implication.
	for i, p := range people {
		for code, rest := range rules.NightRest {
			if rest <= 0 {
				continue
			}
			for k, s := range shifts {
				if s.Code != code || !p.CanWork[code] {
					continue
				}
				for d := 1; d <= D; d++ {
					xv, ok := m.X[xKey{Day: d, Person: i, Shift: k}]
					if !ok {
						continue
					}
					for t := 1; t <= rest; t++ {
						dt := d + t
						if dt > D {
							break
						}
						work := m.Work[workKey{Day: dt, Person: i}]
						b.AddEquality(work, cpmodel.NewConstant(0)).OnlyEnforceIf(xv)
					}
				}
			}
		}
	}

	// Constraint 8: consecutive-work cap.
	for i, p := range people {
		L := p.ConsecMax
		if L <= 0 {
			continue
		}
		for start := 1; start+L <= D; start++ {
			expr := cpmodel.NewLinearExpr()
			for t := start; t <= start+L; t++ {
				expr.Add(m.Work[workKey{Day: t, Person: i}])
			}
			b.AddLessOrEqual(expr, cpmodel.NewConstant(int64(L)))
		}
	}

	// Constraint 9: noEarlyAfterDayAB.
	if rules.NoEarlyAfterDayAB {
		idxDA, idxDB, idxEA := -1, -1, -1
		for k, s := range shifts {
			switch s.Code {
			case "DA":
				idxDA = k
			case "DB":
				idxDB = k
			case "EA":
				idxEA = k
			}
		}
		if idxDA >= 0 && idxDB >= 0 && idxEA >= 0 {
			for d := 1; d < D; d++ {
				for i := range people {
					expr := cpmodel.NewLinearExpr()
					any := false
					if xv, ok := m.X[xKey{Day: d, Person: i, Shift: idxDA}]; ok {
						expr.Add(xv)
						any = true
					}
					if xv, ok := m.X[xKey{Day: d, Person: i, Shift: idxDB}]; ok {
						expr.Add(xv)
						any = true
					}
					if xv, ok := m.X[xKey{Day: d + 1, Person: i, Shift: idxEA}]; ok {
						expr.Add(xv)
						any = true
					}
					if any {
						b.AddLessOrEqual(expr, cpmodel.NewConstant(1))
					}
				}
			}
		}
	}

	// Constraints 5/6: weekly and monthly bounds.
	weeks := weekWindows(demand.WeekdayOfDay1, D)
	for i, p := range people {
		for _, w := range weeks {
			addBoundConstraint(b, m, i, w[0], w[1], p.WeeklyMin, p.WeeklyMax)
		}
		addBoundConstraint(b, m, i, 1, D, p.MonthlyMin, p.MonthlyMax)
	}

	// Objective.
	objective := cpmodel.NewLinearExpr()
	if weights.Shortage != 0 {
		for _, lack := range m.Lack {
			objective.AddTerm(lack, int64(weights.Shortage))
		}
	}
	if weights.Overstaff != 0 {
		for _, ex := range m.Ex {
			objective.AddTerm(ex, int64(weights.Overstaff))
		}
	}
	for id, days := range wishOffs {
		i := personIndex(people, id)
		if i < 0 {
			continue
		}
		w := weights.WishOff
		if people[i].RequestedOffWeight != nil {
			w = *people[i].RequestedOffWeight
		}
		if w == 0 {
			continue
		}
		for _, d := range days {
			if d < 1 || d > D {
				continue
			}
			if work, ok := m.Work[workKey{Day: d, Person: i}]; ok {
				objective.AddTerm(work, int64(w))
			}
		}
	}
	b.Minimize(objective)

	return m, nil
}

// addConstantExpr returns a new LinearExpr equal to expr + c, used to
// express `ex >= s - (need+1)` as `ex >= s + (-(need+1))`.
func addConstantExpr(expr *cpmodel.LinearExpr, c int64) *cpmodel.LinearExpr {
	expr.Add(cpmodel.NewConstant(c))
	return expr
}

func personIndex(people []Person, id string) int {
	for i, p := range people {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// addBoundConstraint applies a weekly/monthly min/max window constraint;
// limits <= 0 are ignored (spec §4.4 rule 5/6).
func addBoundConstraint(b *cpmodel.CpModelBuilder, m *Model, person, from, to, min, max int) {
	if min <= 0 && max <= 0 {
		return
	}
	expr := cpmodel.NewLinearExpr()
	for d := from; d <= to; d++ {
		if work, ok := m.Work[workKey{Day: d, Person: person}]; ok {
			expr.Add(work)
		}
	}
	if max > 0 {
		b.AddLessOrEqual(expr, cpmodel.NewConstant(int64(max)))
	}
	if min > 0 {
		b.AddGreaterOrEqual(expr, cpmodel.NewConstant(int64(min)))
	}
}

// weekWindows segments [1,D] the way spec §4.4/§9 requires: a new week
// starts on any day whose weekday index is 0 (Sunday) except day 1 itself;
// the final partial week closes at D.
func weekWindows(weekdayOfDay1, days int) [][2]int {
	var weeks [][2]int
	start := 1
	for d := 2; d <= days; d++ {
		if weekday(weekdayOfDay1, d) == 0 {
			weeks = append(weeks, [2]int{start, d - 1})
			start = d
		}
	}
	weeks = append(weeks, [2]int{start, days})
	return weeks
}
