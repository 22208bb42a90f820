package booking

import (
	"context"
	"time"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/timezone"
)

type ListBookingsByDate struct {
	bookings domain.Repository
	shops    domain.ShopRepository
}

func NewListBookingsByDate(
	bookings domain.Repository,
	shops domain.ShopRepository,
) *ListBookingsByDate {
	return &ListBookingsByDate{bookings: bookings, shops: shops}
}

// Execute lists every booking of the barber on one calendar day,
// regardless of status, ordered by start time.
func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	dateStr string,
) ([]*domain.Booking, error) {

	shop, err := uc.shops.FindByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, domain.NewValidationError("invalid_date", "invalid date")
	}

	return uc.bookings.FindByProviderAndRange(ctx, barberID, date, date.Add(24*time.Hour))
}
