package booking

import (
	"time"
)

const hhmmLayout = "15:04"

const (
	minShift = time.Hour
	maxShift = 16 * time.Hour
)

// ===============================
// Day Schedule
// ===============================

// DaySchedule describes a single weekday of a barber's weekly template.
// Start/End are "HH:MM" strings in the shop's timezone, same format the
// working_hours rows use.
type DaySchedule struct {
	Weekday time.Weekday
	Working bool
	Start   string
	End     string
}

func (d DaySchedule) validate() error {
	if !d.Working {
		return nil
	}
	start, err := time.Parse(hhmmLayout, d.Start)
	if err != nil {
		return newValidationError("invalid_working_hours",
			"%s: start time %q is not a valid HH:MM time", d.Weekday, d.Start)
	}
	end, err := time.Parse(hhmmLayout, d.End)
	if err != nil {
		return newValidationError("invalid_working_hours",
			"%s: end time %q is not a valid HH:MM time", d.Weekday, d.End)
	}
	shift := end.Sub(start)
	if shift <= 0 {
		return newValidationError("invalid_working_hours",
			"%s: end time must be after start time", d.Weekday)
	}
	if shift < minShift || shift > maxShift {
		return newValidationError("invalid_working_hours",
			"%s: shift must be between 1 and 16 hours", d.Weekday)
	}
	return nil
}

// ShiftHours returns the shift length in hours, 0 for a day off.
func (d DaySchedule) ShiftHours() float64 {
	if !d.Working {
		return 0
	}
	start, err := time.Parse(hhmmLayout, d.Start)
	if err != nil {
		return 0
	}
	end, err := time.Parse(hhmmLayout, d.End)
	if err != nil {
		return 0
	}
	return end.Sub(start).Hours()
}

// ===============================
// Week Schedule
// ===============================

// WeekSchedule is a barber's complete weekly working-hours template,
// one entry per weekday. It is a value: replaced wholesale, never mutated.
type WeekSchedule struct {
	days [7]DaySchedule
}

// NewWeekSchedule validates each day and requires every weekday to appear
// exactly once with at least one working day overall.
func NewWeekSchedule(days []DaySchedule) (WeekSchedule, error) {
	var ws WeekSchedule
	seen := [7]bool{}
	for _, d := range days {
		if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
			return WeekSchedule{}, newValidationError("invalid_weekday",
				"weekday %d is out of range", d.Weekday)
		}
		if seen[d.Weekday] {
			return WeekSchedule{}, newValidationError("duplicate_weekday",
				"%s appears more than once", d.Weekday)
		}
		if err := d.validate(); err != nil {
			return WeekSchedule{}, err
		}
		seen[d.Weekday] = true
		ws.days[d.Weekday] = d
	}
	for wd, ok := range seen {
		if !ok {
			return WeekSchedule{}, newValidationError("missing_weekday",
				"schedule has no entry for %s", time.Weekday(wd))
		}
	}
	if ws.TotalWorkingDays() == 0 {
		return WeekSchedule{}, newValidationError("no_working_days",
			"schedule must have at least one working day")
	}
	return ws, nil
}

// DefaultWeekSchedule is the template applied when a barber registers
// without choosing hours: Monday to Saturday 09:00-18:00, Sunday off.
func DefaultWeekSchedule() WeekSchedule {
	var ws WeekSchedule
	ws.days[time.Sunday] = DaySchedule{Weekday: time.Sunday}
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		ws.days[wd] = DaySchedule{
			Weekday: wd,
			Working: true,
			Start:   "09:00",
			End:     "18:00",
		}
	}
	return ws
}

func (ws WeekSchedule) Day(wd time.Weekday) DaySchedule {
	return ws.days[wd]
}

func (ws WeekSchedule) Days() []DaySchedule {
	out := make([]DaySchedule, 0, 7)
	for _, d := range ws.days {
		out = append(out, d)
	}
	return out
}

// WorkingHoursFor returns the HH:MM bounds for a working day,
// or ok=false when the barber is off that day.
func (ws WeekSchedule) WorkingHoursFor(wd time.Weekday) (start, end string, ok bool) {
	d := ws.days[wd]
	if !d.Working {
		return "", "", false
	}
	return d.Start, d.End, true
}

// CoversSlot reports whether the slot falls entirely inside the working
// hours of its own day. Slots never span midnight.
func (ws WeekSchedule) CoversSlot(slot TimeSlot) bool {
	startHM, endHM, ok := ws.WorkingHoursFor(slot.Start().Weekday())
	if !ok {
		return false
	}
	dayStart := anchorHHMM(slot.Start(), startHM)
	dayEnd := anchorHHMM(slot.Start(), endHM)
	return !slot.Start().Before(dayStart) && !slot.End().After(dayEnd)
}

func (ws WeekSchedule) TotalWorkingDays() int {
	n := 0
	for _, d := range ws.days {
		if d.Working {
			n++
		}
	}
	return n
}

func (ws WeekSchedule) TotalWeeklyHours() float64 {
	var total float64
	for _, d := range ws.days {
		total += d.ShiftHours()
	}
	return total
}
