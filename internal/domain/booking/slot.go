package booking

import "time"

// ===============================
// Time Slot
// ===============================

// TimeSlot is an immutable [start, end) interval. Touching endpoints
// do not overlap.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

// NewTimeSlot builds a slot for a new or rescheduled booking.
// The slot must start in the future relative to now.
func NewTimeSlot(start, end, now time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, errSlotEndBeforeStart
	}
	if start.Before(now) {
		return TimeSlot{}, errSlotInPast
	}
	return TimeSlot{start: start, end: end}, nil
}

// TimeSlotFromStorage rebuilds a slot from a persisted booking.
// Historical slots are allowed to be in the past.
func TimeSlotFromStorage(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, errSlotEndBeforeStart
	}
	return TimeSlot{start: start, end: end}, nil
}

func (s TimeSlot) Start() time.Time { return s.start }
func (s TimeSlot) End() time.Time   { return s.end }

func (s TimeSlot) IsZero() bool {
	return s.start.IsZero() && s.end.IsZero()
}

// Overlaps reports whether the two half-open intervals intersect.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.start.Before(other.end) && s.end.After(other.start)
}

// Includes reports whether t falls strictly inside the slot.
// Both endpoints are excluded.
func (s TimeSlot) Includes(t time.Time) bool {
	return t.After(s.start) && t.Before(s.end)
}

func (s TimeSlot) DurationMinutes() int {
	return int(s.end.Sub(s.start) / time.Minute)
}

func (s TimeSlot) IsPast(now time.Time) bool {
	return s.end.Before(now) || s.end.Equal(now)
}

func (s TimeSlot) IsFuture(now time.Time) bool {
	return s.start.After(now)
}

// HasStarted reports whether the slot's start time has passed.
func (s TimeSlot) HasStarted(now time.Time) bool {
	return !s.start.After(now)
}

func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.start.Equal(other.start) && s.end.Equal(other.end)
}
