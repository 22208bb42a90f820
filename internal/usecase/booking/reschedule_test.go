package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
)

func newRescheduleUC(f *fixture) *RescheduleBooking {
	return NewRescheduleBooking(f.bookings, f.providers, f.services, f.shops, f.publisher, nil)
}

func TestRescheduleBooking(t *testing.T) {
	ctx := context.Background()

	input := func() RescheduleBookingInput {
		return RescheduleBookingInput{
			BarbershopID: testShopID,
			BarberID:     testBarberID,
			BookingID:    5,
			Date:         "2030-06-03",
			Time:         "14:00",
		}
	}

	t.Run("moves a confirmed booking", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(t, 5, domain.StatusConfirmed, 10, 0, 30)

		b, err := newRescheduleUC(f).Execute(ctx, input())
		require.NoError(t, err)

		assert.Equal(t, domain.StatusConfirmed, b.Status(), "status survives the move")
		assert.Equal(t, "14:00", b.Slot().Start().Format("15:04"))
		assert.Equal(t, 30, b.Slot().DurationMinutes(), "duration comes from the service")
		assert.Equal(t, []string{"booking.rescheduled"}, f.publisher.names())
	})

	t.Run("its own row does not veto the new slot", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(t, 5, domain.StatusConfirmed, 10, 0, 30)

		in := input()
		in.Time = "10:15" // overlaps only itself
		_, err := newRescheduleUC(f).Execute(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("another active booking blocks the move", func(t *testing.T) {
		f := newFixture()
		moving := f.seedBooking(t, 5, domain.StatusConfirmed, 10, 0, 30)
		f.seedBooking(t, 6, domain.StatusPending, 14, 0, 30)

		_, err := newRescheduleUC(f).Execute(ctx, input())
		require.Error(t, err)
		assert.Equal(t, "time_conflict", domain.CodeOf(err))
		assert.Equal(t, "10:00", moving.Slot().Start().Format("15:04"), "slot unchanged on failure")
	})

	t.Run("new slot must sit inside working hours", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(t, 5, domain.StatusConfirmed, 10, 0, 30)

		in := input()
		in.Time = "17:45"
		_, err := newRescheduleUC(f).Execute(ctx, in)
		require.Error(t, err)
		assert.Equal(t, "outside_working_hours", domain.CodeOf(err))
	})

	t.Run("completed bookings stay put", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(t, 5, domain.StatusCompleted, 10, 0, 30)

		_, err := newRescheduleUC(f).Execute(ctx, input())
		require.Error(t, err)
		assert.Equal(t, "cannot_reschedule", domain.CodeOf(err))
	})
}
