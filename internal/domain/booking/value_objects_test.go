//go:build unit

package booking_test

import (
	"testing"
	"time"

	"bookit-api/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(t *testing.T, startHour, endHour int) booking.TimeSlot {
	t.Helper()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	s, err := booking.NewTimeSlot(day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour))
	require.NoError(t, err)
	return s
}

func slotAt(t *testing.T, start, end string) booking.TimeSlot {
	t.Helper()
	st, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	en, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	s, err := booking.NewTimeSlot(st, en)
	require.NoError(t, err)
	return s
}

func TestNewTimeSlot(t *testing.T) {
	base := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	t.Run("valid slot", func(t *testing.T) {
		s, err := booking.NewTimeSlot(base, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, base, s.Start())
		assert.Equal(t, base.Add(time.Hour), s.End())
		assert.Equal(t, time.Hour, s.Duration())
	})

	t.Run("end equal to start is invalid", func(t *testing.T) {
		_, err := booking.NewTimeSlot(base, base)
		require.ErrorIs(t, err, booking.ErrInvalidTimeSlot)
	})

	t.Run("end before start is invalid", func(t *testing.T) {
		_, err := booking.NewTimeSlot(base, base.Add(-time.Hour))
		require.ErrorIs(t, err, booking.ErrInvalidTimeSlot)
	})

	t.Run("slot from start derives end from duration", func(t *testing.T) {
		s, err := booking.SlotFromStart(base, 90*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, base.Add(90*time.Minute), s.End())
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	testCases := []struct {
		name     string
		a        booking.TimeSlot
		b        booking.TimeSlot
		overlaps bool
	}{
		{
			name:     "partial overlap conflicts",
			a:        slotAt(t, "2026-09-01T14:00:00Z", "2026-09-01T15:00:00Z"),
			b:        slotAt(t, "2026-09-01T14:30:00Z", "2026-09-01T15:30:00Z"),
			overlaps: true,
		},
		{
			name:     "adjacent slots do not conflict",
			a:        slotAt(t, "2026-09-01T14:00:00Z", "2026-09-01T15:00:00Z"),
			b:        slotAt(t, "2026-09-01T15:00:00Z", "2026-09-01T16:00:00Z"),
			overlaps: false,
		},
		{
			name:     "adjacent on the other side does not conflict",
			a:        slotAt(t, "2026-09-01T15:00:00Z", "2026-09-01T16:00:00Z"),
			b:        slotAt(t, "2026-09-01T14:00:00Z", "2026-09-01T15:00:00Z"),
			overlaps: false,
		},
		{
			name:     "identical slots conflict",
			a:        slot(t, 14, 15),
			b:        slot(t, 14, 15),
			overlaps: true,
		},
		{
			name:     "containment conflicts",
			a:        slot(t, 13, 17),
			b:        slot(t, 14, 15),
			overlaps: true,
		},
		{
			name:     "contained slot conflicts",
			a:        slot(t, 14, 15),
			b:        slot(t, 13, 17),
			overlaps: true,
		},
		{
			name:     "disjoint slots do not conflict",
			a:        slot(t, 9, 10),
			b:        slot(t, 14, 15),
			overlaps: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			// Overlap is symmetric
			assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a))
		})
	}
}
