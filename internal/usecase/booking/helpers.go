package booking

import (
	"context"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
)

// assertNoConflict re-fetches the provider's active bookings overlapping
// the slot and rejects when any remains. excludeID skips the booking
// being rescheduled.
func assertNoConflict(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	slot domain.TimeSlot,
	excludeID uint,
) error {
	conflicts, err := repo.FindConflicting(ctx, barberID, slot)
	if err != nil {
		return err
	}
	for _, c := range conflicts {
		if excludeID != 0 && c.ID() == excludeID {
			continue
		}
		if !c.IsActive() {
			continue
		}
		return domain.NewConflictError("time_conflict",
			"the barber already has a booking from %s to %s",
			c.Slot().Start().Format("15:04"),
			c.Slot().End().Format("15:04"),
		)
	}
	return nil
}

// loadOwnedBooking fetches a booking and checks it belongs to the
// barber acting on it.
func loadOwnedBooking(
	ctx context.Context,
	repo domain.Repository,
	bookingID uint,
	barberID uint,
) (*domain.Booking, error) {
	b, err := repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, domain.NewNotFoundError("booking_not_found", "booking %d not found", bookingID)
	}
	if b.ProviderID() != barberID {
		return nil, domain.NewNotFoundError("booking_not_found", "booking %d not found", bookingID)
	}
	return b, nil
}

// dispatchEvents drains the aggregate's events into the publisher.
// Called only after a successful save.
func dispatchEvents(pub domain.EventPublisher, b *domain.Booking) {
	if pub == nil {
		return
	}
	for _, ev := range b.PullEvents() {
		pub.Publish(ev)
	}
}
