package audit

import "log"

// Booking audit actions.
const (
	ActionBookingCreated     = "booking_created"
	ActionBookingConfirmed   = "booking_confirmed"
	ActionBookingStarted     = "booking_started"
	ActionBookingCompleted   = "booking_completed"
	ActionBookingCancelled   = "booking_cancelled"
	ActionBookingRescheduled = "booking_rescheduled"
	ActionBookingNoShow      = "booking_no_show"
)

type Event struct {
	BarbershopID uint
	BarberID     *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Dispatcher writes audit entries off the request path through a
// buffered channel. A full queue drops the entry; auditing never fails
// an API call.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.BarbershopID,
			ev.BarberID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch enqueues an entry. A nil dispatcher discards it.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event")
	}
}
