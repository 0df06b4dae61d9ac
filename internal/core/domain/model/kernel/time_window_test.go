package kernel_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, pickup, dropoff time.Time) kernel.TimeWindow {
	t.Helper()
	w, err := kernel.NewTimeWindow(pickup, dropoff)
	require.NoError(t, err)
	return w
}

func TestNewTimeWindow(t *testing.T) {
	pickup := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("should accept a valid window", func(t *testing.T) {
		w := mustWindow(t, pickup, pickup.Add(time.Hour))

		require.NoError(t, w.Validate())
		assert.Equal(t, pickup, w.Pickup())
		assert.Equal(t, pickup.Add(time.Hour), w.Dropoff())
		assert.Equal(t, "2025-01-15", w.Day())
	})

	t.Run("should accept exactly 15 minutes", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(pickup, pickup.Add(15*time.Minute))
		require.NoError(t, err)
	})

	t.Run("should accept exactly 4 hours", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(pickup, pickup.Add(4*time.Hour))
		require.NoError(t, err)
	})

	t.Run("should reject a 10 minute window", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(pickup, pickup.Add(10*time.Minute))
		require.ErrorIs(t, err, kernel.ErrWindowTooShort)
	})

	t.Run("should reject a dropoff before pickup", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(pickup, pickup.Add(-time.Hour))
		require.ErrorIs(t, err, kernel.ErrWindowTooShort)
	})

	t.Run("should reject a window longer than 4 hours", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(pickup, pickup.Add(4*time.Hour+time.Minute))
		require.ErrorIs(t, err, kernel.ErrWindowTooLong)
	})

	t.Run("should reject a window crossing midnight", func(t *testing.T) {
		latePickup := time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC)
		_, err := kernel.NewTimeWindow(latePickup, latePickup.Add(2*time.Hour))
		require.ErrorIs(t, err, kernel.ErrWindowCrossesDayBoundary)
	})

	t.Run("duration checks win over the day boundary check", func(t *testing.T) {
		latePickup := time.Date(2025, 1, 15, 23, 55, 0, 0, time.UTC)
		_, err := kernel.NewTimeWindow(latePickup, latePickup.Add(10*time.Minute))
		require.ErrorIs(t, err, kernel.ErrWindowTooShort)
	})
}

func TestTimeWindow_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var w kernel.TimeWindow
		require.ErrorIs(t, w.Validate(), kernel.ErrTimeWindowIsNotConstructed)
	})
}

func TestTimeWindow_IsEqual(t *testing.T) {
	pickup := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("same instants are equal", func(t *testing.T) {
		a := mustWindow(t, pickup, pickup.Add(time.Hour))
		b := mustWindow(t, pickup, pickup.Add(time.Hour))
		assert.True(t, a.IsEqual(b))
	})

	t.Run("different instants are not equal", func(t *testing.T) {
		a := mustWindow(t, pickup, pickup.Add(time.Hour))
		b := mustWindow(t, pickup, pickup.Add(2*time.Hour))
		assert.False(t, a.IsEqual(b))
	})
}

func TestDayKey(t *testing.T) {
	t.Run("uses the timestamp's own location", func(t *testing.T) {
		loc := time.FixedZone("UTC+5", 5*3600)
		ts := time.Date(2025, 1, 15, 23, 30, 0, 0, loc)
		assert.Equal(t, "2025-01-15", kernel.DayKey(ts))
	})
}
