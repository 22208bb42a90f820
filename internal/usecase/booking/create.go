package booking

import (
	"context"
	"time"

	"github.com/barberlink/booking-api/internal/audit"
	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarbershopID uint
	BarberID     uint

	// Either an existing customer id, or the walk-in fields below.
	CustomerID    uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceID uint

	Date  string // "2006-01-02" in the shop's timezone
	Time  string // "15:04"
	Notes string

	// SkipAdvanceCheck lets shop staff book inside the public
	// minimum-advance window.
	SkipAdvanceCheck bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	bookings  domain.Repository
	providers domain.ProviderRepository
	services  domain.ServiceRepository
	shops     domain.ShopRepository
	customers domain.CustomerRepository
	publisher domain.EventPublisher
	audit     *audit.Dispatcher
}

func NewCreateBooking(
	bookings domain.Repository,
	providers domain.ProviderRepository,
	services domain.ServiceRepository,
	shops domain.ShopRepository,
	customers domain.CustomerRepository,
	publisher domain.EventPublisher,
	auditor *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		bookings:  bookings,
		providers: providers,
		services:  services,
		shops:     shops,
		customers: customers,
		publisher: publisher,
		audit:     auditor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*domain.Booking, error) {

	shop, err := uc.shops.FindByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	barber, err := uc.providers.FindByID(ctx, in.BarberID)
	if err != nil || barber.BarbershopID != shop.ID {
		return nil, domain.NewNotFoundError("barber_not_found", "barber %d not found", in.BarberID)
	}
	if !barber.Active {
		return nil, domain.NewValidationError("barber_inactive", "barber %d is not accepting bookings", in.BarberID)
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

	if !in.SkipAdvanceCheck {
		minAdvance := shop.MinAdvanceMinutes
		if minAdvance <= 0 {
			minAdvance = 120
		}
		if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
			return nil, domain.NewValidationError("too_soon",
				"bookings require at least %d minutes of advance", minAdvance)
		}
	}

	svc, err := uc.services.FindByID(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, domain.NewNotFoundError("service_not_found", "service %d not found", in.ServiceID)
	}
	if !svc.Active {
		return nil, domain.NewValidationError("service_inactive", "service %q is not offered anymore", svc.Name)
	}
	if !svc.HasValidDuration() {
		return nil, domain.NewValidationError("invalid_duration",
			"service duration must be between 1 and 480 minutes")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	slot, err := domain.NewTimeSlot(start, end, now)
	if err != nil {
		return nil, err
	}

	schedule, err := uc.providers.WeekScheduleFor(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !schedule.CoversSlot(slot) {
		return nil, domain.NewValidationError("outside_working_hours",
			"the requested time is outside the barber's working hours")
	}

	customer, err := uc.resolveCustomer(ctx, in)
	if err != nil {
		return nil, err
	}

	// Cross-aggregate guard: re-fetch conflicts right before commit so
	// concurrent writes from other requests are seen.
	if err := assertNoConflict(ctx, uc.bookings, in.BarberID, slot, 0); err != nil {
		return nil, err
	}

	b, err := domain.New(in.BarberID, customer.ID, svc.ID, slot, in.Notes, now)
	if err != nil {
		return nil, err
	}

	if err := uc.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	dispatchEvents(uc.publisher, b)

	id := b.ID()
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		BarberID:     &in.BarberID,
		Action:       audit.ActionBookingCreated,
		Entity:       "booking",
		EntityID:     &id,
	})

	return b, nil
}

func (uc *CreateBooking) resolveCustomer(ctx context.Context, in CreateBookingInput) (customer *customerRef, err error) {
	if in.CustomerID != 0 {
		c, err := uc.customers.FindByID(ctx, in.BarbershopID, in.CustomerID)
		if err != nil {
			return nil, domain.NewNotFoundError("customer_not_found", "customer %d not found", in.CustomerID)
		}
		return &customerRef{ID: c.ID}, nil
	}
	if in.CustomerName == "" || in.CustomerPhone == "" {
		return nil, domain.NewValidationError("customer_required",
			"customer name and phone are required")
	}
	c, err := uc.customers.GetOrCreate(ctx, in.BarbershopID, in.CustomerName, in.CustomerPhone, in.CustomerEmail)
	if err != nil {
		return nil, err
	}
	return &customerRef{ID: c.ID}, nil
}

type customerRef struct {
	ID uint
}
