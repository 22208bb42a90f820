package booking

import (
	"context"
	"time"

	"github.com/barberlink/booking-api/internal/audit"
	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/timezone"
)

type RescheduleBookingInput struct {
	BarbershopID uint
	BarberID     uint
	BookingID    uint

	Date string // "2006-01-02"
	Time string // "15:04"
}

type RescheduleBooking struct {
	bookings  domain.Repository
	providers domain.ProviderRepository
	services  domain.ServiceRepository
	shops     domain.ShopRepository
	publisher domain.EventPublisher
	audit     *audit.Dispatcher
}

func NewRescheduleBooking(
	bookings domain.Repository,
	providers domain.ProviderRepository,
	services domain.ServiceRepository,
	shops domain.ShopRepository,
	publisher domain.EventPublisher,
	auditor *audit.Dispatcher,
) *RescheduleBooking {
	return &RescheduleBooking{
		bookings:  bookings,
		providers: providers,
		services:  services,
		shops:     shops,
		publisher: publisher,
		audit:     auditor,
	}
}

func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleBookingInput,
) (*domain.Booking, error) {

	shop, err := uc.shops.FindByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	b, err := loadOwnedBooking(ctx, uc.bookings, in.BookingID, in.BarberID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.services.FindByID(ctx, in.BarbershopID, b.ServiceID())
	if err != nil {
		return nil, domain.NewNotFoundError("service_not_found", "service %d not found", b.ServiceID())
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, domain.NewValidationError("invalid_date_or_time", "invalid date or time")
	}

	now := timezone.NowIn(shop.Timezone)
	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	newSlot, err := domain.NewTimeSlot(start, end, now)
	if err != nil {
		return nil, err
	}

	schedule, err := uc.providers.WeekScheduleFor(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !schedule.CoversSlot(newSlot) {
		return nil, domain.NewValidationError("outside_working_hours",
			"the requested time is outside the barber's working hours")
	}

	// The booking's own row must not veto its new slot.
	if err := assertNoConflict(ctx, uc.bookings, in.BarberID, newSlot, b.ID()); err != nil {
		return nil, err
	}

	if err := b.Reschedule(newSlot, now); err != nil {
		return nil, err
	}

	if err := uc.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	dispatchEvents(uc.publisher, b)

	id := b.ID()
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		BarberID:     &in.BarberID,
		Action:       audit.ActionBookingRescheduled,
		Entity:       "booking",
		EntityID:     &id,
	})

	return b, nil
}
