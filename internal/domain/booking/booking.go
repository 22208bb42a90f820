package booking

import (
	"strings"
	"time"
)

const MaxNotesLength = 500

// ===============================
// Booking aggregate
// ===============================

// Booking is the appointment aggregate: one provider, one customer, one
// service, one time slot, and a guarded lifecycle. All mutation goes
// through the transition methods; fields stay private so no caller can
// skip the state machine.
type Booking struct {
	id uint

	providerID uint
	customerID uint
	serviceID  uint

	slot   TimeSlot
	status Status

	notes              string
	paymentJSON        string
	cancellationReason string

	version int64

	createdAt   time.Time
	updatedAt   time.Time
	cancelledAt *time.Time
	completedAt *time.Time

	events []Event
}

// New creates a pending booking around an already validated slot and
// records the BookingCreated event.
func New(providerID, customerID, serviceID uint, slot TimeSlot, notes string, now time.Time) (*Booking, error) {
	if slot.IsZero() {
		return nil, newValidationError("slot_required", "booking requires a time slot")
	}
	if err := validateNotes(notes); err != nil {
		return nil, err
	}

	b := &Booking{
		providerID: providerID,
		customerID: customerID,
		serviceID:  serviceID,
		slot:       slot,
		status:     StatusPending,
		notes:      strings.TrimSpace(notes),
		createdAt:  now,
		updatedAt:  now,
	}
	b.record(BookingCreated{
		eventBase:  newEventBase(b.id, now),
		ProviderID: providerID,
		CustomerID: customerID,
		ServiceID:  serviceID,
		StartTime:  slot.Start(),
		EndTime:    slot.End(),
	})
	return b, nil
}

// RestoreParams carries the persisted state of a booking row.
type RestoreParams struct {
	ID                 uint
	ProviderID         uint
	CustomerID         uint
	ServiceID          uint
	Slot               TimeSlot
	Status             Status
	Notes              string
	PaymentJSON        string
	CancellationReason string
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CancelledAt        *time.Time
	CompletedAt        *time.Time
}

// Restore rebuilds the aggregate from storage without re-running the
// creation-time checks and without emitting events.
func Restore(p RestoreParams) (*Booking, error) {
	if !p.Status.IsValid() {
		return nil, newValidationError("invalid_status", "unknown booking status %q", p.Status)
	}
	return &Booking{
		id:                 p.ID,
		providerID:         p.ProviderID,
		customerID:         p.CustomerID,
		serviceID:          p.ServiceID,
		slot:               p.Slot,
		status:             p.Status,
		notes:              p.Notes,
		paymentJSON:        p.PaymentJSON,
		cancellationReason: p.CancellationReason,
		version:            p.Version,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
		cancelledAt:        p.CancelledAt,
		completedAt:        p.CompletedAt,
	}, nil
}

// --------------------------------------------------
// Accessors
// --------------------------------------------------

func (b *Booking) ID() uint                   { return b.id }
func (b *Booking) ProviderID() uint           { return b.providerID }
func (b *Booking) CustomerID() uint           { return b.customerID }
func (b *Booking) ServiceID() uint            { return b.serviceID }
func (b *Booking) Slot() TimeSlot             { return b.slot }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) Notes() string              { return b.notes }
func (b *Booking) PaymentJSON() string        { return b.paymentJSON }
func (b *Booking) CancellationReason() string { return b.cancellationReason }
func (b *Booking) Version() int64             { return b.version }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
func (b *Booking) CancelledAt() *time.Time    { return b.cancelledAt }
func (b *Booking) CompletedAt() *time.Time    { return b.completedAt }

// SetID is called by the persistence layer after the insert assigns one.
// The pending BookingCreated event is recorded before the insert, so its
// booking id is backfilled here.
func (b *Booking) SetID(id uint) {
	b.id = id
	for i, ev := range b.events {
		if created, ok := ev.(BookingCreated); ok && created.BookingID == 0 {
			created.BookingID = id
			b.events[i] = created
		}
	}
}

func (b *Booking) IsActive() bool { return b.status.IsActive() }

// --------------------------------------------------
// Transitions
// --------------------------------------------------

// Confirm moves a pending booking to confirmed. The slot must not have
// already passed.
func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return newStateError("cannot_confirm",
			"cannot confirm booking: status is %q, only pending bookings can be confirmed", b.status)
	}
	if b.slot.IsPast(now) {
		return newStateError("slot_passed",
			"cannot confirm booking: its time slot has already passed")
	}
	b.status = StatusConfirmed
	b.touch(now)
	b.record(BookingConfirmed{eventBase: newEventBase(b.id, now)})
	return nil
}

// Start marks a confirmed booking as in progress.
func (b *Booking) Start(now time.Time) error {
	if b.status != StatusConfirmed {
		return newStateError("cannot_start",
			"cannot start booking: status is %q, only confirmed bookings can be started", b.status)
	}
	b.status = StatusInProgress
	b.touch(now)
	b.record(BookingStarted{eventBase: newEventBase(b.id, now)})
	return nil
}

// Complete finishes an in-progress booking. Completion notes, when
// given, replace the booking notes.
func (b *Booking) Complete(notes string, now time.Time) error {
	if b.status != StatusInProgress {
		return newStateError("cannot_complete",
			"cannot complete booking: status is %q, only in-progress bookings can be completed", b.status)
	}
	if err := validateNotes(notes); err != nil {
		return err
	}
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		b.notes = trimmed
	}
	b.status = StatusCompleted
	b.completedAt = timePtr(now)
	b.touch(now)
	b.record(BookingCompleted{eventBase: newEventBase(b.id, now)})
	return nil
}

// Cancel cancels a pending or confirmed booking whose slot has not
// passed. The reason must not be blank; stricter length rules live in
// the orchestration layer.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.status != StatusPending && b.status != StatusConfirmed {
		return newStateError("cannot_cancel",
			"cannot cancel booking: status is %q, only pending or confirmed bookings can be cancelled", b.status)
	}
	if b.slot.IsPast(now) {
		return newStateError("slot_passed",
			"cannot cancel booking: its time slot has already passed")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return newValidationError("reason_required", "cancellation reason is required")
	}
	b.status = StatusCancelled
	b.cancellationReason = reason
	b.cancelledAt = timePtr(now)
	b.touch(now)
	b.record(BookingCancelled{eventBase: newEventBase(b.id, now), Reason: reason})
	return nil
}

// Reschedule supersedes the slot of a pending or confirmed booking.
// The status is kept; the old slot is left untouched on failure.
func (b *Booking) Reschedule(newSlot TimeSlot, now time.Time) error {
	if b.status != StatusPending && b.status != StatusConfirmed {
		return newStateError("cannot_reschedule",
			"cannot reschedule booking: status is %q, only pending or confirmed bookings can be rescheduled", b.status)
	}
	if newSlot.IsZero() {
		return newValidationError("slot_required", "reschedule requires a new time slot")
	}
	old := b.slot
	b.slot = newSlot
	b.touch(now)
	b.record(BookingRescheduled{
		eventBase:    newEventBase(b.id, now),
		OldStartTime: old.Start(),
		OldEndTime:   old.End(),
		NewStartTime: newSlot.Start(),
		NewEndTime:   newSlot.End(),
	})
	return nil
}

// MarkNoShow flags a confirmed booking whose slot has fully elapsed.
func (b *Booking) MarkNoShow(now time.Time) error {
	if b.status != StatusConfirmed {
		return newStateError("cannot_mark_no_show",
			"cannot mark no-show: status is %q, only confirmed bookings can be marked", b.status)
	}
	if !b.slot.IsPast(now) {
		return newStateError("slot_not_passed",
			"cannot mark no-show: the time slot has not ended yet")
	}
	b.status = StatusNoShow
	b.touch(now)
	b.record(BookingNoShow{eventBase: newEventBase(b.id, now)})
	return nil
}

// --------------------------------------------------
// Predicates
// --------------------------------------------------

func (b *Booking) CanBeCancelled(now time.Time) bool {
	return (b.status == StatusPending || b.status == StatusConfirmed) && !b.slot.IsPast(now)
}

func (b *Booking) CanBeRescheduled(now time.Time) bool {
	return (b.status == StatusPending || b.status == StatusConfirmed) && !b.slot.IsPast(now)
}

// OverlapsWith is the double-booking guard: true only when both
// bookings belong to the same provider, both still block their slots,
// and the slots intersect.
func (b *Booking) OverlapsWith(other *Booking) bool {
	if other == nil || b.providerID != other.providerID {
		return false
	}
	if !b.status.IsActive() || !other.status.IsActive() {
		return false
	}
	return b.slot.Overlaps(other.slot)
}

// --------------------------------------------------
// Events
// --------------------------------------------------

// PullEvents drains the recorded events. The orchestration layer calls
// it after a successful save and hands the batch to the publisher.
func (b *Booking) PullEvents() []Event {
	evs := b.events
	b.events = nil
	return evs
}

func (b *Booking) record(ev Event) {
	b.events = append(b.events, ev)
}

func (b *Booking) touch(now time.Time) {
	b.updatedAt = now
}

func validateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return newValidationError("notes_too_long",
			"notes must be at most %d characters", MaxNotesLength)
	}
	return nil
}

func timePtr(t time.Time) *time.Time { return &t }
