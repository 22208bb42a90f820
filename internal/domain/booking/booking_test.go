package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingBooking(t *testing.T) *Booking {
	t.Helper()
	slot := mustSlot(t, 10, 0, 30)
	b, err := New(1, 2, 3, slot, "first visit", testNow)
	require.NoError(t, err)
	b.SetID(42)
	return b
}

func pullNames(b *Booking) []string {
	var names []string
	for _, ev := range b.PullEvents() {
		names = append(names, ev.Name())
	}
	return names
}

func TestNewBooking(t *testing.T) {
	t.Run("starts pending with created event", func(t *testing.T) {
		slot := mustSlot(t, 10, 0, 30)
		b, err := New(1, 2, 3, slot, "  first visit  ", testNow)
		require.NoError(t, err)

		assert.Equal(t, StatusPending, b.Status())
		assert.Equal(t, uint(1), b.ProviderID())
		assert.Equal(t, uint(2), b.CustomerID())
		assert.Equal(t, uint(3), b.ServiceID())
		assert.Equal(t, "first visit", b.Notes())
		assert.True(t, b.IsActive())

		evs := b.PullEvents()
		require.Len(t, evs, 1)
		created, ok := evs[0].(BookingCreated)
		require.True(t, ok)
		assert.Equal(t, slot.Start(), created.StartTime)
		assert.Equal(t, slot.End(), created.EndTime)
	})

	t.Run("requires a slot", func(t *testing.T) {
		_, err := New(1, 2, 3, TimeSlot{}, "", testNow)
		require.Error(t, err)
		assert.Equal(t, "slot_required", CodeOf(err))
	})

	t.Run("rejects oversized notes", func(t *testing.T) {
		_, err := New(1, 2, 3, mustSlot(t, 10, 0, 30), strings.Repeat("x", MaxNotesLength+1), testNow)
		require.Error(t, err)
		assert.Equal(t, "notes_too_long", CodeOf(err))
	})
}

func TestBookingSetID(t *testing.T) {
	b, err := New(1, 2, 3, mustSlot(t, 10, 0, 30), "", testNow)
	require.NoError(t, err)

	b.SetID(77)
	assert.Equal(t, uint(77), b.ID())

	evs := b.PullEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, uint(77), evs[0].Booking(), "created event gets the id backfilled")
}

func TestBookingConfirm(t *testing.T) {
	t.Run("pending to confirmed", func(t *testing.T) {
		b := newPendingBooking(t)
		b.PullEvents()

		require.NoError(t, b.Confirm(testNow))
		assert.Equal(t, StatusConfirmed, b.Status())
		assert.Equal(t, []string{"booking.confirmed"}, pullNames(b))
	})

	t.Run("double confirm fails", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm(testNow))
		b.PullEvents()

		err := b.Confirm(testNow)
		require.Error(t, err)
		assert.Equal(t, "cannot_confirm", CodeOf(err))
		assert.True(t, IsKind(err, KindStateConflict))
		assert.Empty(t, b.PullEvents(), "failed transition records no event")
	})

	t.Run("cannot confirm a passed slot", func(t *testing.T) {
		b := newPendingBooking(t)
		late := b.Slot().End().Add(time.Minute)

		err := b.Confirm(late)
		require.Error(t, err)
		assert.Equal(t, "slot_passed", CodeOf(err))
		assert.Equal(t, StatusPending, b.Status())
	})
}

func TestBookingStart(t *testing.T) {
	b := newPendingBooking(t)

	err := b.Start(testNow)
	require.Error(t, err, "pending cannot start")
	assert.Equal(t, "cannot_start", CodeOf(err))

	require.NoError(t, b.Confirm(testNow))
	require.NoError(t, b.Start(testNow))
	assert.Equal(t, StatusInProgress, b.Status())
}

func TestBookingComplete(t *testing.T) {
	t.Run("in progress to completed", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm(testNow))
		require.NoError(t, b.Start(testNow))
		b.PullEvents()

		done := testNow.Add(3 * time.Hour)
		require.NoError(t, b.Complete("trimmed the beard too", done))

		assert.Equal(t, StatusCompleted, b.Status())
		assert.Equal(t, "trimmed the beard too", b.Notes())
		require.NotNil(t, b.CompletedAt())
		assert.Equal(t, done, *b.CompletedAt())
		assert.Equal(t, []string{"booking.completed"}, pullNames(b))
		assert.True(t, b.Status().IsTerminal())
		assert.True(t, b.IsActive(), "completed still blocks its slot")
	})

	t.Run("blank completion notes keep the old ones", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm(testNow))
		require.NoError(t, b.Start(testNow))

		require.NoError(t, b.Complete("   ", testNow))
		assert.Equal(t, "first visit", b.Notes())
	})

	t.Run("only in-progress completes", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm(testNow))

		err := b.Complete("", testNow)
		require.Error(t, err)
		assert.Equal(t, "cannot_complete", CodeOf(err))
	})
}

func TestBookingCancel(t *testing.T) {
	t.Run("pending cancels with reason", func(t *testing.T) {
		b := newPendingBooking(t)
		b.PullEvents()

		require.NoError(t, b.Cancel("  customer asked  ", testNow))
		assert.Equal(t, StatusCancelled, b.Status())
		assert.Equal(t, "customer asked", b.CancellationReason())
		assert.NotNil(t, b.CancelledAt())
		assert.False(t, b.IsActive())

		evs := b.PullEvents()
		require.Len(t, evs, 1)
		cancelled, ok := evs[0].(BookingCancelled)
		require.True(t, ok)
		assert.Equal(t, "customer asked", cancelled.Reason)
	})

	t.Run("confirmed cancels too", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm(testNow))
		assert.NoError(t, b.Cancel("rain", testNow))
	})

	t.Run("blank reason rejected", func(t *testing.T) {
		b := newPendingBooking(t)
		err := b.Cancel("   ", testNow)
		require.Error(t, err)
		assert.Equal(t, "reason_required", CodeOf(err))
		assert.Equal(t, StatusPending, b.Status())
	})

	t.Run("cannot cancel after the slot passed", func(t *testing.T) {
		b := newPendingBooking(t)
		err := b.Cancel("too late", b.Slot().End())
		require.Error(t, err)
		assert.Equal(t, "slot_passed", CodeOf(err))
	})

	t.Run("terminal states cannot cancel", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm(testNow))
		require.NoError(t, b.Start(testNow))
		require.NoError(t, b.Complete("", testNow))

		err := b.Cancel("changed my mind", testNow)
		require.Error(t, err)
		assert.Equal(t, "cannot_cancel", CodeOf(err))
	})
}

func TestBookingReschedule(t *testing.T) {
	t.Run("moves the slot and keeps the status", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm(testNow))
		b.PullEvents()

		oldSlot := b.Slot()
		newSlot := mustSlot(t, 15, 0, 30)
		require.NoError(t, b.Reschedule(newSlot, testNow))

		assert.Equal(t, StatusConfirmed, b.Status())
		assert.True(t, b.Slot().Equal(newSlot))

		evs := b.PullEvents()
		require.Len(t, evs, 1)
		moved, ok := evs[0].(BookingRescheduled)
		require.True(t, ok)
		assert.Equal(t, oldSlot.Start(), moved.OldStartTime)
		assert.Equal(t, newSlot.Start(), moved.NewStartTime)
	})

	t.Run("failure leaves the slot untouched", func(t *testing.T) {
		b := newPendingBooking(t)
		oldSlot := b.Slot()

		err := b.Reschedule(TimeSlot{}, testNow)
		require.Error(t, err)
		assert.Equal(t, "slot_required", CodeOf(err))
		assert.True(t, b.Slot().Equal(oldSlot))
	})

	t.Run("in-progress cannot move", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm(testNow))
		require.NoError(t, b.Start(testNow))

		err := b.Reschedule(mustSlot(t, 15, 0, 30), testNow)
		require.Error(t, err)
		assert.Equal(t, "cannot_reschedule", CodeOf(err))
	})
}

func TestBookingMarkNoShow(t *testing.T) {
	t.Run("confirmed with elapsed slot", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm(testNow))
		b.PullEvents()

		after := b.Slot().End().Add(time.Minute)
		require.NoError(t, b.MarkNoShow(after))
		assert.Equal(t, StatusNoShow, b.Status())
		assert.False(t, b.IsActive())
		assert.Equal(t, []string{"booking.no_show"}, pullNames(b))
	})

	t.Run("slot must have ended", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm(testNow))

		err := b.MarkNoShow(b.Slot().Start())
		require.Error(t, err)
		assert.Equal(t, "slot_not_passed", CodeOf(err))
	})

	t.Run("pending cannot be a no-show", func(t *testing.T) {
		b := newPendingBooking(t)
		err := b.MarkNoShow(b.Slot().End().Add(time.Minute))
		require.Error(t, err)
		assert.Equal(t, "cannot_mark_no_show", CodeOf(err))
	})
}

func TestBookingPredicates(t *testing.T) {
	b := newPendingBooking(t)

	assert.True(t, b.CanBeCancelled(testNow))
	assert.True(t, b.CanBeRescheduled(testNow))
	assert.False(t, b.CanBeCancelled(b.Slot().End()))

	require.NoError(t, b.Confirm(testNow))
	require.NoError(t, b.Start(testNow))
	assert.False(t, b.CanBeCancelled(testNow))
	assert.False(t, b.CanBeRescheduled(testNow))
}

func TestBookingOverlapsWith(t *testing.T) {
	mk := func(provider uint, startHour int) *Booking {
		b, err := New(provider, 2, 3, mustSlot(t, startHour, 0, 60), "", testNow)
		require.NoError(t, err)
		return b
	}

	a := mk(1, 10)

	t.Run("same provider overlapping", func(t *testing.T) {
		other, err := New(1, 5, 3, mustSlot(t, 10, 30, 60), "", testNow)
		require.NoError(t, err)
		assert.True(t, a.OverlapsWith(other))
	})

	t.Run("different provider", func(t *testing.T) {
		assert.False(t, a.OverlapsWith(mk(2, 10)))
	})

	t.Run("disjoint slots", func(t *testing.T) {
		assert.False(t, a.OverlapsWith(mk(1, 14)))
	})

	t.Run("cancelled does not block", func(t *testing.T) {
		other := mk(1, 10)
		require.NoError(t, other.Cancel("freed up", testNow))
		assert.False(t, a.OverlapsWith(other))
	})

	t.Run("nil other", func(t *testing.T) {
		assert.False(t, a.OverlapsWith(nil))
	})
}

func TestBookingEventsDrainOnce(t *testing.T) {
	b := newPendingBooking(t)
	require.NoError(t, b.Confirm(testNow))

	first := b.PullEvents()
	assert.Len(t, first, 2)
	assert.Empty(t, b.PullEvents())
}

func TestRestore(t *testing.T) {
	slot := mustSlot(t, 10, 0, 30)

	t.Run("rebuilds without events", func(t *testing.T) {
		b, err := Restore(RestoreParams{
			ID:         7,
			ProviderID: 1,
			CustomerID: 2,
			ServiceID:  3,
			Slot:       slot,
			Status:     StatusConfirmed,
			Version:    4,
		})
		require.NoError(t, err)
		assert.Equal(t, uint(7), b.ID())
		assert.Equal(t, StatusConfirmed, b.Status())
		assert.Equal(t, int64(4), b.Version())
		assert.Empty(t, b.PullEvents())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := Restore(RestoreParams{Slot: slot, Status: Status("limbo")})
		require.Error(t, err)
		assert.Equal(t, "invalid_status", CodeOf(err))
	})
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())

	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusNoShow.IsActive())

	parsed, err := ParseStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, parsed)

	_, err = ParseStatus("limbo")
	assert.Error(t, err)
}
