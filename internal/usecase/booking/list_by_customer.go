package booking

import (
	"context"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
)

type ListBookingsByCustomer struct {
	bookings  domain.Repository
	customers domain.CustomerRepository
}

func NewListBookingsByCustomer(
	bookings domain.Repository,
	customers domain.CustomerRepository,
) *ListBookingsByCustomer {
	return &ListBookingsByCustomer{bookings: bookings, customers: customers}
}

func (uc *ListBookingsByCustomer) Execute(
	ctx context.Context,
	barbershopID uint,
	customerID uint,
) ([]*domain.Booking, error) {

	if _, err := uc.customers.FindByID(ctx, barbershopID, customerID); err != nil {
		return nil, domain.NewNotFoundError("customer_not_found", "customer %d not found", customerID)
	}

	return uc.bookings.FindByCustomer(ctx, customerID)
}
