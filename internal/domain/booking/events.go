package booking

import (
	"time"

	"github.com/google/uuid"
)

// ===============================
// Domain Events
// ===============================

// Event is appended by the aggregate on every successful transition,
// exactly one per transition, none on failure. The aggregate does not
// know who consumes them; the orchestration layer drains and dispatches
// after a successful save.
type Event interface {
	Name() string
	Booking() uint
}

type eventBase struct {
	EventID    string    `json:"event_id"`
	BookingID  uint      `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newEventBase(bookingID uint, at time.Time) eventBase {
	return eventBase{
		EventID:    uuid.NewString(),
		BookingID:  bookingID,
		OccurredAt: at,
	}
}

func (e eventBase) Booking() uint { return e.BookingID }

type BookingCreated struct {
	eventBase
	ProviderID uint      `json:"provider_id"`
	CustomerID uint      `json:"customer_id"`
	ServiceID  uint      `json:"service_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

func (BookingCreated) Name() string { return "booking.created" }

type BookingConfirmed struct {
	eventBase
}

func (BookingConfirmed) Name() string { return "booking.confirmed" }

type BookingStarted struct {
	eventBase
}

func (BookingStarted) Name() string { return "booking.started" }

type BookingCompleted struct {
	eventBase
}

func (BookingCompleted) Name() string { return "booking.completed" }

type BookingCancelled struct {
	eventBase
	Reason string `json:"reason"`
}

func (BookingCancelled) Name() string { return "booking.cancelled" }

type BookingRescheduled struct {
	eventBase
	OldStartTime time.Time `json:"old_start_time"`
	OldEndTime   time.Time `json:"old_end_time"`
	NewStartTime time.Time `json:"new_start_time"`
	NewEndTime   time.Time `json:"new_end_time"`
}

func (BookingRescheduled) Name() string { return "booking.rescheduled" }

type BookingNoShow struct {
	eventBase
}

func (BookingNoShow) Name() string { return "booking.no_show" }
