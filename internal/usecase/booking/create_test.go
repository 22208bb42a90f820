package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
)

func newCreateUC(f *fixture) *CreateBooking {
	return NewCreateBooking(f.bookings, f.providers, f.services, f.shops, f.customers, f.publisher, nil)
}

func validCreateInput() CreateBookingInput {
	return CreateBookingInput{
		BarbershopID: testShopID,
		BarberID:     testBarberID,
		CustomerID:   testCustomerID,
		ServiceID:    testServiceID,
		Date:         "2030-06-03",
		Time:         "10:00",
		Notes:        "window seat",
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free slot", func(t *testing.T) {
		f := newFixture()
		b, err := newCreateUC(f).Execute(ctx, validCreateInput())
		require.NoError(t, err)

		assert.Equal(t, domain.StatusPending, b.Status())
		assert.Equal(t, testBarberID, b.ProviderID())
		assert.Equal(t, testCustomerID, b.CustomerID())
		assert.Equal(t, "window seat", b.Notes())
		assert.Equal(t, 30, b.Slot().DurationMinutes())
		assert.NotZero(t, b.ID())

		stored, err := f.bookings.FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, b.ID(), stored.ID())

		assert.Equal(t, []string{"booking.created"}, f.publisher.names())
		assert.Equal(t, b.ID(), f.publisher.events[0].Booking())
	})

	t.Run("resolves a walk-in customer by phone", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.CustomerID = 0
		in.CustomerName = "Rita"
		in.CustomerPhone = "+5511888880000"

		b, err := newCreateUC(f).Execute(ctx, in)
		require.NoError(t, err)
		assert.NotZero(t, b.CustomerID())
		assert.NotEqual(t, testCustomerID, b.CustomerID())
	})

	t.Run("walk-in needs name and phone", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.CustomerID = 0
		in.CustomerName = "Rita"

		_, err := newCreateUC(f).Execute(ctx, in)
		require.Error(t, err)
		assert.Equal(t, "customer_required", domain.CodeOf(err))
	})

	t.Run("rejects an overlapping active booking", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(t, 5, domain.StatusConfirmed, 10, 0, 30)

		_, err := newCreateUC(f).Execute(ctx, validCreateInput())
		require.Error(t, err)
		assert.Equal(t, "time_conflict", domain.CodeOf(err))
		assert.True(t, domain.IsKind(err, domain.KindDoubleBooking))
		assert.Empty(t, f.publisher.events)
	})

	t.Run("a cancelled booking frees its slot", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(t, 5, domain.StatusCancelled, 10, 0, 30)

		_, err := newCreateUC(f).Execute(ctx, validCreateInput())
		assert.NoError(t, err)
	})

	t.Run("touching bookings do not conflict", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(t, 5, domain.StatusConfirmed, 9, 30, 30)
		f.seedBooking(t, 6, domain.StatusConfirmed, 10, 30, 30)

		_, err := newCreateUC(f).Execute(ctx, validCreateInput())
		assert.NoError(t, err)
	})

	t.Run("rejects a slot outside working hours", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.Time = "18:30"

		_, err := newCreateUC(f).Execute(ctx, in)
		require.Error(t, err)
		assert.Equal(t, "outside_working_hours", domain.CodeOf(err))
	})

	t.Run("rejects a day off", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.Date = "2030-06-02" // Sunday

		_, err := newCreateUC(f).Execute(ctx, in)
		require.Error(t, err)
		assert.Equal(t, "outside_working_hours", domain.CodeOf(err))
	})

	t.Run("rejects an inactive barber", func(t *testing.T) {
		f := newFixture()
		f.providers.barbers[testBarberID].Active = false

		_, err := newCreateUC(f).Execute(ctx, validCreateInput())
		require.Error(t, err)
		assert.Equal(t, "barber_inactive", domain.CodeOf(err))
	})

	t.Run("rejects a barber from another shop", func(t *testing.T) {
		f := newFixture()
		f.providers.barbers[testBarberID].BarbershopID = 99

		_, err := newCreateUC(f).Execute(ctx, validCreateInput())
		require.Error(t, err)
		assert.Equal(t, "barber_not_found", domain.CodeOf(err))
	})

	t.Run("rejects an inactive service", func(t *testing.T) {
		f := newFixture()
		f.services.services[testServiceID].Active = false

		_, err := newCreateUC(f).Execute(ctx, validCreateInput())
		require.Error(t, err)
		assert.Equal(t, "service_inactive", domain.CodeOf(err))
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.Date = "03/06/2030"

		_, err := newCreateUC(f).Execute(ctx, in)
		require.Error(t, err)
		assert.Equal(t, "invalid_date_or_time", domain.CodeOf(err))
	})

	t.Run("enforces the minimum advance window", func(t *testing.T) {
		f := newFixture()
		soon := time.Now().UTC().Add(30 * time.Minute)
		in := validCreateInput()
		in.Date = soon.Format("2006-01-02")
		in.Time = soon.Format("15:04")

		_, err := newCreateUC(f).Execute(ctx, in)
		require.Error(t, err)
		assert.Equal(t, "too_soon", domain.CodeOf(err))
	})

	t.Run("unknown customer id", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.CustomerID = 404

		_, err := newCreateUC(f).Execute(ctx, in)
		require.Error(t, err)
		assert.Equal(t, "customer_not_found", domain.CodeOf(err))
	})
}
