package booking

import (
	"context"
	"strings"

	"github.com/barberlink/booking-api/internal/audit"
	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/timezone"
)

// MinCancellationReasonLength is the orchestration-level floor. The
// aggregate only requires a non-blank reason; the stricter rule lives
// here so staff tooling can relax it without touching the domain.
const MinCancellationReasonLength = 3

type CancelBooking struct {
	bookings  domain.Repository
	shops     domain.ShopRepository
	publisher domain.EventPublisher
	audit     *audit.Dispatcher
}

func NewCancelBooking(
	bookings domain.Repository,
	shops domain.ShopRepository,
	publisher domain.EventPublisher,
	auditor *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		bookings:  bookings,
		shops:     shops,
		publisher: publisher,
		audit:     auditor,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	bookingID uint,
	reason string,
) (*domain.Booking, error) {

	reason = strings.TrimSpace(reason)
	if len(reason) < MinCancellationReasonLength {
		return nil, domain.NewValidationError("reason_too_short",
			"cancellation reason must be at least %d characters", MinCancellationReasonLength)
	}

	shop, err := uc.shops.FindByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	b, err := loadOwnedBooking(ctx, uc.bookings, bookingID, barberID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	if err := b.Cancel(reason, now); err != nil {
		return nil, err
	}

	if err := uc.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	dispatchEvents(uc.publisher, b)

	id := b.ID()
	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		BarberID:     &barberID,
		Action:       audit.ActionBookingCancelled,
		Entity:       "booking",
		EntityID:     &id,
		Metadata:     map[string]string{"reason": reason},
	})

	return b, nil
}
