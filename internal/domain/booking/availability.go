package booking

import (
	"sort"
	"time"
)

// DefaultSlotIntervalMinutes is the stepping between candidate slot
// starts when the caller does not choose one.
const DefaultSlotIntervalMinutes = 30

// AvailableSlot is a free candidate returned by the engine, tagged with
// the provider it belongs to so multi-provider results can be merged.
type AvailableSlot struct {
	ProviderID uint
	Slot       TimeSlot
}

// ComputeAvailableSlots generates the bookable slots for one provider
// on one calendar day. Pure computation:
//
//  1. If the provider is off on date's weekday, the result is empty.
//  2. Candidates step from opening time by intervalMinutes, each
//     spanning exactly serviceDuration, and must end at or before
//     closing time.
//  3. Candidates overlapping any active booking are dropped. Callers
//     pass bookings already filtered to active statuses; inactive ones
//     are skipped here as well.
//  4. Candidates whose start has already passed are dropped, which
//     covers "today" queries mid-day.
//
// Generation order is ascending, but the result is sorted anyway so
// merged multi-provider lists stay in a stable chronological order.
func ComputeAvailableSlots(
	date time.Time,
	serviceDuration time.Duration,
	schedule WeekSchedule,
	activeBookings []*Booking,
	intervalMinutes int,
	now time.Time,
) []TimeSlot {

	if serviceDuration <= 0 {
		return nil
	}
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultSlotIntervalMinutes
	}

	startHM, endHM, ok := schedule.WorkingHoursFor(date.Weekday())
	if !ok {
		return nil
	}

	dayStart := anchorHHMM(date, startHM)
	dayEnd := anchorHHMM(date, endHM)
	step := time.Duration(intervalMinutes) * time.Minute

	var slots []TimeSlot
	for cur := dayStart; !cur.Add(serviceDuration).After(dayEnd); cur = cur.Add(step) {
		if !cur.After(now) {
			continue
		}

		candidate, err := NewTimeSlot(cur, cur.Add(serviceDuration), now)
		if err != nil {
			continue
		}

		if hasActiveConflict(candidate, activeBookings) {
			continue
		}

		slots = append(slots, candidate)
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start().Before(slots[j].Start())
	})
	return slots
}

func hasActiveConflict(candidate TimeSlot, bookings []*Booking) bool {
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		if candidate.Overlaps(b.Slot()) {
			return true
		}
	}
	return false
}

// anchorHHMM resolves a "HH:MM" working-hours string to an absolute
// timestamp on the given day, in the day's location.
func anchorHHMM(date time.Time, hm string) time.Time {
	t, _ := time.Parse(hhmmLayout, hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}
