// Package scheduler implements the monthly staff-shift scheduling core: demand
// preparation, availability analysis, the CP-SAT model, solving, and the
// post-solve summary/infeasibility report. It performs no I/O and imports
// no transport or persistence library — everything here is a pure function
// over typed Go values, constructed once per Solve call and discarded when
// it returns.
package scheduler

// Shift is a named work pattern with an integer start/end hour. Hours are
// in [0,48); if end<=start the shift crosses midnight.
type Shift struct {
	Code  string
	Name  string
	Start int
	End   int
}

// Rules bundles the optional per-call hard-constraint toggles.
type Rules struct {
	NightRest         map[string]int
	NoEarlyAfterDayAB bool
}

// Weights holds the objective coefficients. A zero weight disables its term.
type Weights struct {
	Shortage int
	Overstaff int
	WishOff   int
}

// DefaultWeights mirrors the spec's stated defaults.
func DefaultWeights() Weights {
	return Weights{Shortage: 1000, Overstaff: 5, WishOff: 20}
}

// Person is a roster entry with capability, availability and bound fields.
type Person struct {
	ID                 string
	CanWork             map[string]bool
	FixedOffWeekdays    map[int]bool
	UnavailableDates     map[int]bool
	WeeklyMin            int
	WeeklyMax            int
	MonthlyMin           int
	MonthlyMax           int
	ConsecMax            int
	RequestedOffDates    map[int]bool
	RequestedOffWeight  *int
}

// NeedTemplate maps a day-type label to per-slot integer need. Keys are the
// five template slots: "7-9","9-15","16-18","18-24","0-7".
type NeedTemplate map[string]map[string]int

// PreviousMonthNightCarry lists night-shift codes carried from last month
// whose rest period bleeds into day 1. Only the total count is consumed.
type PreviousMonthNightCarry struct {
	NA []string
	NB []string
	NC []string
}

// Count returns |NA|+|NB|+|NC|.
func (c PreviousMonthNightCarry) Count() int {
	return len(c.NA) + len(c.NB) + len(c.NC)
}

// DemandDiagnostics is attached to PreparedDemand and surfaced under
// summary.diagnostics.demand in the final Output.
type DemandDiagnostics struct {
	Days             int            `json:"days"`
	WeekdayOfDay1    int            `json:"weekdayOfDay1"`
	DayTypeSample    []string       `json:"dayTypeSample"`
	PerDayTotals     []int          `json:"perDayTotals"`
	TotalNeed        int            `json:"totalNeed"`
}

// PreparedDemand is the Input Validator's success output: normalized,
// typed, ready to feed the Availability Analyzer and Model Builder.
type PreparedDemand struct {
	Days                    int
	WeekdayOfDay1           int
	DayTypes                []string
	NeedTemplate            NeedTemplate
	Diagnostics             DemandDiagnostics
	PreviousMonthNightCarry PreviousMonthNightCarry
}

// Assignment is one person working one shift on one day.
type Assignment struct {
	Date    int    `json:"date"`
	StaffID string `json:"staffId"`
	Shift   string `json:"shift"`
}

// ShortageEntry records unmet coverage on a (day,slot).
type ShortageEntry struct {
	Date int    `json:"date"`
	Slot string `json:"slot"`
	Lack int    `json:"lack"`
}

// OverstaffEntry records excess coverage on a (day,slot).
type OverstaffEntry struct {
	Date    int    `json:"date"`
	Slot    string `json:"slot"`
	Excess  int    `json:"excess"`
}

// SummaryTotals aggregates the feasible-path counters.
type SummaryTotals struct {
	Shortage                 int `json:"shortage"`
	Overstaff                int `json:"overstaff"`
	WishOffViolations        int `json:"wishOffViolations"`
	RequestedOffViolations   int `json:"requestedOffViolations"`
	ViolatedPreferences      int `json:"violatedPreferences"`
	Assigned                 int `json:"assigned"`
	TotalNeed                int `json:"totalNeed"`
}

// SummaryDiagnostics carries the optional diagnostic families attached to
// summary for both the feasible and infeasible paths.
type SummaryDiagnostics struct {
	Demand               DemandDiagnostics        `json:"demand"`
	Weekly               []BoundShortfall         `json:"weekly,omitempty"`
	Monthly              []BoundShortfall         `json:"monthly,omitempty"`
	WishOffConflicts     []WishOffConflict        `json:"wishOffConflicts,omitempty"`
	WishOffConflictCount int                      `json:"wishOffConflictCount,omitempty"`
	InconsistentSummary  bool                     `json:"inconsistentSummary,omitempty"`
}

// Summary is the feasible/infeasible-agnostic rollup attached to Output.
type Summary struct {
	Shortage  []ShortageEntry    `json:"shortage"`
	Overstaff []OverstaffEntry   `json:"overstaff"`
	Totals    SummaryTotals      `json:"totals"`
	Diagnostics SummaryDiagnostics `json:"diagnostics"`
}

// SlotCandidate records a (day,slot) whose need provably exceeds the
// availability analyzer's maxPossible bound.
type SlotCandidate struct {
	Date        int    `json:"date"`
	Slot        string `json:"slot"`
	Need        int    `json:"need"`
	MaxPossible int    `json:"maxPossible"`
}

// BoundShortfall records a person whose weekly/monthly min exceeds the
// number of days actually available to them (optionally excluding wish-off
// days), or a min/max cross-inconsistency.
type BoundShortfall struct {
	PersonID string `json:"personId"`
	Scope    string `json:"scope"`
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Available int   `json:"available"`
	Missing  int    `json:"missing,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// WishOffConflict records a person whose wish-off days, if honored, would
// violate their weekly/monthly minimum.
type WishOffConflict struct {
	PersonID string `json:"personId"`
	Scope    string `json:"scope"`
	Missing  int    `json:"missing"`
}

// AvailabilityWarning flags a (day,slot) with positive need but zero
// availability, recorded without aborting the whole solve.
type AvailabilityWarning struct {
	Date      int    `json:"date"`
	Slot      string `json:"slot"`
	Need      int    `json:"need"`
	Available int    `json:"available"`
}

// OutputDiagnostics is the top-level diagnostics block (distinct from
// summary.diagnostics, which is the demand/weekly/monthly family).
type OutputDiagnostics struct {
	Availability         map[string]map[string]int `json:"availability"`
	VarCounts            map[string]int            `json:"var_counts"`
	Flags                []string                  `json:"flags,omitempty"`
	Warnings             []AvailabilityWarning     `json:"warnings,omitempty"`
	AvailabilityWarnings []AvailabilityWarning     `json:"availabilityWarnings,omitempty"`
	UnmetCandidates      []SlotCandidate           `json:"unmetCandidates,omitempty"`
	LogOutput            []string                  `json:"logOutput,omitempty"`
}

// ErrorBlock is the machine/human readable failure envelope.
type ErrorBlock struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// MatrixDay is one row of the day-major assignment matrix.
type MatrixDay struct {
	Date   int               `json:"date"`
	Shifts map[string]string `json:"shifts"`
}

// Output is the stable, canonical result of a Solve call.
type Output struct {
	Assignments []Assignment        `json:"assignments"`
	PeopleOrder []string            `json:"peopleOrder"`
	Matrix      []MatrixDay         `json:"matrix"`
	Summary     Summary             `json:"summary"`
	Diagnostics *OutputDiagnostics  `json:"diagnostics,omitempty"`
	Infeasible  bool                `json:"infeasible,omitempty"`
	Error       *ErrorBlock         `json:"error,omitempty"`
}

// Input is the raw Solve request, already decoded from JSON/map form by the
// caller into typed fields; ValidateInput is the only place that trusts it.
type Input struct {
	Days                    int
	WeekdayOfDay1           int
	DayTypeByDate           []string
	DayTypeByDateMap        map[int]string
	NeedTemplate            map[string]map[string]int
	People                  []Person
	Shifts                  []Shift
	StrictNight             bool
	PreviousMonthNightCarry PreviousMonthNightCarry
	Rules                   Rules
	Weights                 *Weights
	WishOffs                map[string][]int
}
