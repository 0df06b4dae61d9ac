package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/merchant"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var (
	testShiftStart = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	testPickup     = testShiftStart.Add(2 * time.Hour)
)

func testMerchant(t *testing.T, id kernel.UUID) *merchant.Merchant {
	t.Helper()
	m, err := merchant.NewMerchant(id, "Corner Bakery", "orders@cornerbakery.test")
	require.NoError(t, err)
	return m
}

func testWorkingDriver(t *testing.T, maxOrders int, maxWeight float64) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "Sam Porter")
	require.NoError(t, err)

	v, err := driver.NewVehicle(kernel.NewUUID(), maxOrders, maxWeight)
	require.NoError(t, err)
	require.NoError(t, d.AttachVehicle(v))

	shift, err := driver.NewShift(kernel.NewUUID(), testShiftStart, testShiftStart.Add(8*time.Hour))
	require.NoError(t, err)
	require.NoError(t, d.AddShift(shift))

	return d
}

func testWindow(t *testing.T) kernel.TimeWindow {
	t.Helper()
	w, err := kernel.NewTimeWindow(testPickup, testPickup.Add(time.Hour))
	require.NoError(t, err)
	return w
}

func testPendingOrder(t *testing.T, merchantID kernel.UUID, weight float64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), merchantID, testWindow(t), weight, "boxes")
	require.NoError(t, err)
	return o
}

func testAssignedOrder(t *testing.T, merchantID kernel.UUID, d *driver.Driver, weight float64) *order.Order {
	t.Helper()
	o := testPendingOrder(t, merchantID, weight)
	require.NoError(t, o.Assign(d.ID(), d.Vehicle().ID()))
	return o
}
