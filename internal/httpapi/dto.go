package httpapi

import (
	"github.com/noah-isme/shift-scheduler/internal/scheduler"
)

// ShiftDTO is the wire shape of a shift definition.
type ShiftDTO struct {
	Code  string `json:"code" binding:"required"`
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// PersonDTO is the wire shape of one roster entry.
type PersonDTO struct {
	ID                 string          `json:"id" binding:"required"`
	CanWork            []string        `json:"canWork"`
	FixedOffWeekdays   []int           `json:"fixedOffWeekdays"`
	UnavailableDates   []int           `json:"unavailableDates"`
	WeeklyMin          int             `json:"weeklyMin"`
	WeeklyMax          int             `json:"weeklyMax"`
	MonthlyMin         int             `json:"monthlyMin"`
	MonthlyMax         int             `json:"monthlyMax"`
	ConsecMax          int             `json:"consecMax"`
	RequestedOffDates  []int           `json:"requestedOffDates"`
	RequestedOffWeight *int            `json:"requestedOffWeight"`
}

// RulesDTO is the wire shape of the optional hard-constraint toggles.
type RulesDTO struct {
	NightRest         map[string]int `json:"nightRest"`
	NoEarlyAfterDayAB bool           `json:"noEarlyAfterDayAB"`
}

// WeightsDTO is the wire shape of the objective coefficients.
type WeightsDTO struct {
	Shortage  int `json:"shortage"`
	Overstaff int `json:"overstaff"`
	WishOff   int `json:"wishOff"`
}

// NightCarryDTO is the wire shape of the previous month's night-shift carry.
type NightCarryDTO struct {
	NA []string `json:"NA"`
	NB []string `json:"NB"`
	NC []string `json:"NC"`
}

// SolveRequest is the JSON body accepted by POST /solve (spec §6).
// ValidateInput remains the semantic choke point; this DTO only performs
// the JSON<->typed-value boundary crossing the scheduler package itself
// stays free of.
type SolveRequest struct {
	Days             int                    `json:"days" binding:"required"`
	WeekdayOfDay1    int                    `json:"weekdayOfDay1"`
	DayTypeByDate    []string               `json:"dayTypeByDate"`
	NeedTemplate     map[string]map[string]int `json:"needTemplate" binding:"required"`
	People           []PersonDTO            `json:"people"`
	Shifts           []ShiftDTO             `json:"shifts" binding:"required"`
	StrictNight      bool                   `json:"strictNight"`
	PreviousMonthNightCarry NightCarryDTO   `json:"previousMonthNightCarry"`
	Rules            RulesDTO               `json:"rules"`
	Weights          *WeightsDTO            `json:"weights"`
	WishOffs         map[string][]int       `json:"wishOffs"`
}

func toIntSet(vals []int) map[int]bool {
	if len(vals) == 0 {
		return nil
	}
	out := make(map[int]bool, len(vals))
	for _, v := range vals {
		out[v] = true
	}
	return out
}

func toBoolSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	out := make(map[string]bool, len(vals))
	for _, v := range vals {
		out[v] = true
	}
	return out
}

// ToInput converts the wire request into the scheduler package's typed
// Input value.
func (r SolveRequest) ToInput() scheduler.Input {
	shifts := make([]scheduler.Shift, len(r.Shifts))
	for i, s := range r.Shifts {
		shifts[i] = scheduler.Shift{Code: s.Code, Name: s.Name, Start: s.Start, End: s.End}
	}

	people := make([]scheduler.Person, len(r.People))
	for i, p := range r.People {
		people[i] = scheduler.Person{
			ID:                 p.ID,
			CanWork:            toBoolSet(p.CanWork),
			FixedOffWeekdays:   toIntSet(p.FixedOffWeekdays),
			UnavailableDates:   toIntSet(p.UnavailableDates),
			WeeklyMin:          p.WeeklyMin,
			WeeklyMax:          p.WeeklyMax,
			MonthlyMin:         p.MonthlyMin,
			MonthlyMax:         p.MonthlyMax,
			ConsecMax:          p.ConsecMax,
			RequestedOffDates:  toIntSet(p.RequestedOffDates),
			RequestedOffWeight: p.RequestedOffWeight,
		}
	}

	var weights *scheduler.Weights
	if r.Weights != nil {
		weights = &scheduler.Weights{Shortage: r.Weights.Shortage, Overstaff: r.Weights.Overstaff, WishOff: r.Weights.WishOff}
	}

	return scheduler.Input{
		Days:          r.Days,
		WeekdayOfDay1: r.WeekdayOfDay1,
		DayTypeByDate: r.DayTypeByDate,
		NeedTemplate:  r.NeedTemplate,
		People:        people,
		Shifts:        shifts,
		StrictNight:   r.StrictNight,
		PreviousMonthNightCarry: scheduler.PreviousMonthNightCarry{
			NA: r.PreviousMonthNightCarry.NA,
			NB: r.PreviousMonthNightCarry.NB,
			NC: r.PreviousMonthNightCarry.NC,
		},
		Rules:    scheduler.Rules{NightRest: r.Rules.NightRest, NoEarlyAfterDayAB: r.Rules.NoEarlyAfterDayAB},
		Weights:  weights,
		WishOffs: r.WishOffs,
	}
}
