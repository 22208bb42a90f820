package booking

import (
	"context"
	"time"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/timezone"
)

type ListBookingsByMonth struct {
	bookings domain.Repository
	shops    domain.ShopRepository
}

func NewListBookingsByMonth(
	bookings domain.Repository,
	shops domain.ShopRepository,
) *ListBookingsByMonth {
	return &ListBookingsByMonth{bookings: bookings, shops: shops}
}

// Execute lists the barber's bookings across one calendar month, for
// the dashboard calendar view.
func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	year int,
	month time.Month,
) ([]*domain.Booking, error) {

	if month < time.January || month > time.December {
		return nil, domain.NewValidationError("invalid_month", "month must be between 1 and 12")
	}

	shop, err := uc.shops.FindByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.bookings.FindByProviderAndRange(ctx, barberID, start, end)
}
