package booking

import (
	"context"

	"github.com/barberlink/booking-api/internal/audit"
	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/timezone"
)

type ConfirmBooking struct {
	bookings  domain.Repository
	shops     domain.ShopRepository
	publisher domain.EventPublisher
	audit     *audit.Dispatcher
}

func NewConfirmBooking(
	bookings domain.Repository,
	shops domain.ShopRepository,
	publisher domain.EventPublisher,
	auditor *audit.Dispatcher,
) *ConfirmBooking {
	return &ConfirmBooking{
		bookings:  bookings,
		shops:     shops,
		publisher: publisher,
		audit:     auditor,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	bookingID uint,
) (*domain.Booking, error) {

	shop, err := uc.shops.FindByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	b, err := loadOwnedBooking(ctx, uc.bookings, bookingID, barberID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	if err := b.Confirm(now); err != nil {
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
		Action:       audit.ActionBookingConfirmed,
		Entity:       "booking",
		EntityID:     &id,
	})

	return b, nil
}
