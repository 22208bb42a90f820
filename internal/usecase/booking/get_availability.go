package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/models"
	"github.com/barberlink/booking-api/internal/timezone"
)

type GetAvailabilityInput struct {
	BarbershopID uint
	BarberID     uint // 0 = any qualified barber
	ServiceID    uint

	Date string // "2006-01-02" in the shop's timezone

	IntervalMinutes int // 0 = default stepping
}

type GetAvailability struct {
	bookings  domain.Repository
	providers domain.ProviderRepository
	services  domain.ServiceRepository
	shops     domain.ShopRepository
}

func NewGetAvailability(
	bookings domain.Repository,
	providers domain.ProviderRepository,
	services domain.ServiceRepository,
	shops domain.ShopRepository,
) *GetAvailability {
	return &GetAvailability{
		bookings:  bookings,
		providers: providers,
		services:  services,
		shops:     shops,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]domain.AvailableSlot, error) {

	shop, err := uc.shops.FindByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, domain.NewValidationError("invalid_date", "invalid date")
	}

	now := timezone.NowIn(shop.Timezone)

	// Dates strictly before today are rejected here; "today" goes
	// through and the engine filters already-passed starts.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if date.Before(today) {
		return nil, domain.NewValidationError("date_in_past", "cannot query availability for a past date")
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

	barbers, err := uc.qualifiedBarbers(ctx, in, svc)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(svc.DurationMin) * time.Minute
	dayStart := date
	dayEnd := date.Add(24 * time.Hour)

	var result []domain.AvailableSlot
	for _, barber := range barbers {
		schedule, err := uc.providers.WeekScheduleFor(ctx, barber.ID)
		if err != nil {
			return nil, err
		}

		active, err := uc.bookings.FindActiveByProviderAndRange(ctx, barber.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		for _, slot := range domain.ComputeAvailableSlots(date, duration, schedule, active, in.IntervalMinutes, now) {
			result = append(result, domain.AvailableSlot{ProviderID: barber.ID, Slot: slot})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		si, sj := result[i].Slot.Start(), result[j].Slot.Start()
		if si.Equal(sj) {
			return result[i].ProviderID < result[j].ProviderID
		}
		return si.Before(sj)
	})

	return result, nil
}

// qualifiedBarbers resolves which providers the query runs against: the
// requested one, or every active barber of the shop holding all of the
// service's required skills. Zero matches is an empty result, not an
// error.
func (uc *GetAvailability) qualifiedBarbers(
	ctx context.Context,
	in GetAvailabilityInput,
	svc *models.Service,
) ([]models.Barber, error) {

	if in.BarberID != 0 {
		barber, err := uc.providers.FindByID(ctx, in.BarberID)
		if err != nil || barber.BarbershopID != in.BarbershopID {
			return nil, domain.NewNotFoundError("barber_not_found", "barber %d not found", in.BarberID)
		}
		if !barber.Active || !barber.HasSkills(svc.RequiredSkillList()) {
			return nil, nil
		}
		return []models.Barber{*barber}, nil
	}

	return uc.providers.FindActiveForService(ctx, in.BarbershopID, svc)
}
