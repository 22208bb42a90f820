package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

func mustSlot(t *testing.T, startHour, startMin, durationMin int) TimeSlot {
	t.Helper()
	start := time.Date(2026, time.March, 2, startHour, startMin, 0, 0, time.UTC)
	slot, err := TimeSlotFromStorage(start, start.Add(time.Duration(durationMin)*time.Minute))
	require.NoError(t, err)
	return slot
}

func TestNewTimeSlot(t *testing.T) {
	start := testNow.Add(2 * time.Hour)

	t.Run("valid future slot", func(t *testing.T) {
		slot, err := NewTimeSlot(start, start.Add(30*time.Minute), testNow)
		require.NoError(t, err)
		assert.Equal(t, start, slot.Start())
		assert.Equal(t, 30, slot.DurationMinutes())
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewTimeSlot(start, start.Add(-time.Minute), testNow)
		require.Error(t, err)
		assert.Equal(t, "slot_invalid", CodeOf(err))
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := NewTimeSlot(start, start, testNow)
		require.Error(t, err)
		assert.Equal(t, "slot_invalid", CodeOf(err))
	})

	t.Run("start in the past", func(t *testing.T) {
		past := testNow.Add(-time.Hour)
		_, err := NewTimeSlot(past, past.Add(30*time.Minute), testNow)
		require.Error(t, err)
		assert.Equal(t, "slot_in_past", CodeOf(err))
		assert.True(t, IsKind(err, KindValidation))
	})

	t.Run("start exactly at now is allowed", func(t *testing.T) {
		_, err := NewTimeSlot(testNow, testNow.Add(30*time.Minute), testNow)
		assert.NoError(t, err)
	})
}

func TestTimeSlotFromStorage(t *testing.T) {
	past := testNow.Add(-48 * time.Hour)

	slot, err := TimeSlotFromStorage(past, past.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, slot.IsPast(testNow))

	_, err = TimeSlotFromStorage(past, past)
	assert.Error(t, err)
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := mustSlot(t, 10, 0, 60) // 10:00-11:00

	tests := []struct {
		name  string
		other TimeSlot
		want  bool
	}{
		{"identical", mustSlot(t, 10, 0, 60), true},
		{"contained", mustSlot(t, 10, 15, 30), true},
		{"containing", mustSlot(t, 9, 0, 240), true},
		{"partial front", mustSlot(t, 9, 30, 60), true},
		{"partial back", mustSlot(t, 10, 30, 60), true},
		{"touching before", mustSlot(t, 9, 0, 60), false},
		{"touching after", mustSlot(t, 11, 0, 60), false},
		{"disjoint before", mustSlot(t, 7, 0, 60), false},
		{"disjoint after", mustSlot(t, 13, 0, 60), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestTimeSlotIncludes(t *testing.T) {
	slot := mustSlot(t, 10, 0, 60)

	assert.True(t, slot.Includes(slot.Start().Add(time.Minute)))
	assert.False(t, slot.Includes(slot.Start()), "start endpoint is excluded")
	assert.False(t, slot.Includes(slot.End()), "end endpoint is excluded")
	assert.False(t, slot.Includes(slot.Start().Add(-time.Minute)))
}

func TestTimeSlotPastAndFuture(t *testing.T) {
	now := time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC)

	ended := mustSlot(t, 9, 0, 60)
	running := mustSlot(t, 10, 30, 60)
	upcoming := mustSlot(t, 14, 0, 60)
	endingNow := mustSlot(t, 10, 0, 60)

	assert.True(t, ended.IsPast(now))
	assert.True(t, endingNow.IsPast(now), "slot ending exactly at now has passed")
	assert.False(t, running.IsPast(now))
	assert.False(t, upcoming.IsPast(now))

	assert.True(t, upcoming.IsFuture(now))
	assert.False(t, running.IsFuture(now))

	assert.True(t, running.HasStarted(now))
	assert.False(t, upcoming.HasStarted(now))
}

func TestTimeSlotEqualAndZero(t *testing.T) {
	a := mustSlot(t, 10, 0, 30)
	b := mustSlot(t, 10, 0, 30)
	c := mustSlot(t, 10, 0, 45)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	var zero TimeSlot
	assert.True(t, zero.IsZero())
	assert.False(t, a.IsZero())
}
