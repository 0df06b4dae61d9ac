package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkingDriver(t *testing.T, name string, shiftStart time.Time, shiftHours int) *driver.Driver {
	t.Helper()

	d, err := driver.NewDriver(kernel.NewUUID(), name)
	require.NoError(t, err)
	require.NoError(t, d.AttachVehicle(newVehicle(t, 3, 100)))

	shift, err := driver.NewShift(kernel.NewUUID(), shiftStart, shiftStart.Add(time.Duration(shiftHours)*time.Hour))
	require.NoError(t, err)
	require.NoError(t, d.AddShift(shift))

	return d
}

func TestShiftIndex_EligibleAt(t *testing.T) {
	shiftStart := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	t.Run("returns only drivers on shift with a vehicle", func(t *testing.T) {
		onShift := newWorkingDriver(t, "Working", shiftStart, 8)
		offShift := newWorkingDriver(t, "Resting", shiftStart.AddDate(0, 0, 1), 8)

		noVehicle, err := driver.NewDriver(kernel.NewUUID(), "Walking")
		require.NoError(t, err)
		shift, err := driver.NewShift(kernel.NewUUID(), shiftStart, shiftStart.Add(8*time.Hour))
		require.NoError(t, err)
		require.NoError(t, noVehicle.AddShift(shift))

		index, err := services.NewShiftIndex([]*driver.Driver{offShift, noVehicle, onShift})
		require.NoError(t, err)

		eligible := index.EligibleAt(shiftStart.Add(2 * time.Hour))
		require.Len(t, eligible, 1)
		assert.True(t, eligible[0].IsEqual(onShift))
	})

	t.Run("orders candidates by driver id regardless of input order", func(t *testing.T) {
		d1 := newWorkingDriver(t, "A", shiftStart, 8)
		d2 := newWorkingDriver(t, "B", shiftStart, 8)
		d3 := newWorkingDriver(t, "C", shiftStart, 8)

		forward, err := services.NewShiftIndex([]*driver.Driver{d1, d2, d3})
		require.NoError(t, err)
		backward, err := services.NewShiftIndex([]*driver.Driver{d3, d2, d1})
		require.NoError(t, err)

		at := shiftStart.Add(time.Hour)
		first := forward.EligibleAt(at)
		second := backward.EligibleAt(at)
		require.Len(t, first, 3)
		require.Len(t, second, 3)
		for i := range first {
			assert.True(t, first[i].IsEqual(second[i]))
			if i > 0 {
				assert.Less(t, first[i-1].ID().String(), first[i].ID().String())
			}
		}
	})

	t.Run("nobody is eligible outside shift hours", func(t *testing.T) {
		d := newWorkingDriver(t, "Working", shiftStart, 8)

		index, err := services.NewShiftIndex([]*driver.Driver{d})
		require.NoError(t, err)

		assert.Empty(t, index.EligibleAt(shiftStart.Add(8*time.Hour)))
		assert.Empty(t, index.EligibleAt(shiftStart.Add(-time.Minute)))
	})

	t.Run("rejects unconstructed drivers", func(t *testing.T) {
		var d driver.Driver
		_, err := services.NewShiftIndex([]*driver.Driver{&d})
		require.ErrorIs(t, err, driver.ErrDriverIsNotConstructed)
	})
}
