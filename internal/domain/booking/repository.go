package booking

import (
	"context"
	"time"

	"github.com/barberlink/booking-api/internal/models"
)

// ===============================
// Ports
// ===============================

// Repository is the persistence port for booking aggregates.
type Repository interface {
	FindByID(
		ctx context.Context,
		id uint,
	) (*Booking, error)

	// Create inserts a new booking at version 0 and assigns its id.
	Create(
		ctx context.Context,
		b *Booking,
	) error

	// Save updates an existing booking with compare-and-swap semantics
	// on the version column. A stale version yields ErrVersionConflict.
	Save(
		ctx context.Context,
		b *Booking,
	) error

	// FindConflicting returns active bookings of the provider whose
	// slots overlap the given one.
	FindConflicting(
		ctx context.Context,
		providerID uint,
		slot TimeSlot,
	) ([]*Booking, error)

	// FindActiveByProviderAndRange returns the provider's active
	// bookings starting within [start, end), ordered by start time.
	FindActiveByProviderAndRange(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]*Booking, error)

	// FindByProviderAndRange returns all of the provider's bookings in
	// the window regardless of status, for calendar listings.
	FindByProviderAndRange(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]*Booking, error)

	FindByCustomer(
		ctx context.Context,
		customerID uint,
	) ([]*Booking, error)
}

// ProviderRepository resolves barbers and their weekly schedules.
type ProviderRepository interface {
	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// FindActiveForService returns the shop's active barbers holding
	// every skill the service requires.
	FindActiveForService(
		ctx context.Context,
		barbershopID uint,
		svc *models.Service,
	) ([]models.Barber, error)

	WeekScheduleFor(
		ctx context.Context,
		barberID uint,
	) (WeekSchedule, error)

	ReplaceWeekSchedule(
		ctx context.Context,
		barberID uint,
		ws WeekSchedule,
	) error
}

// ServiceRepository resolves the services a shop offers.
type ServiceRepository interface {
	FindByID(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)
}

// ShopRepository resolves barbershops, the unit of timezone and
// booking-policy configuration.
type ShopRepository interface {
	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	FindBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)
}

// CustomerRepository resolves walk-in customers by phone.
type CustomerRepository interface {
	FindByID(
		ctx context.Context,
		barbershopID uint,
		customerID uint,
	) (*models.Customer, error)

	GetOrCreate(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)
}

// EventPublisher receives drained domain events after a successful
// save. Implementations must never fail the calling request.
type EventPublisher interface {
	Publish(ev Event)
}
