package services

import (
	"errors"
	"sync"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrCapacityExceeded is returned when a reservation would push a driver's
// bookings for a day over the vehicle's order count or weight limit.
var ErrCapacityExceeded = errors.New("driver capacity exceeded for this day")

type ledgerKey struct {
	driverID kernel.UUID
	day      string
}

// Usage is the booked load of one driver on one day.
type Usage struct {
	Orders int
	Weight float64
}

// LedgerEntry is one driver/day usage row, used for snapshots and restoring
// the ledger from persistence.
type LedgerEntry struct {
	DriverID kernel.UUID
	Day      string
	Orders   int
	Weight   float64
}

// CapacityLedger tracks booked order counts and total weight per driver per
// calendar day. It is the single authority answering "can this driver take
// one more order today"; all reservations and releases go through it.
//
// Reservations are atomic: TryReserve checks both limits and books under one
// lock, so concurrent matching over the same driver can never overshoot the
// vehicle's capacity. The ledger holds no durable state itself; lifecycle
// handlers persist usage snapshots and the composition root rebuilds the
// ledger from them at startup.
type CapacityLedger struct {
	mu      sync.Mutex
	entries map[ledgerKey]Usage
}

// NewCapacityLedger creates an empty ledger.
func NewCapacityLedger() *CapacityLedger {
	return &CapacityLedger{
		entries: make(map[ledgerKey]Usage),
	}
}

// TryReserve books one order of the given weight against the driver's day,
// checking the vehicle's limits. Returns ErrCapacityExceeded when either
// limit would be crossed, or when the driver has no vehicle; the ledger is
// left unchanged in that case.
func (l *CapacityLedger) TryReserve(driverID kernel.UUID, day string, weight float64, vehicle *driver.Vehicle) error {
	if vehicle == nil {
		return ErrCapacityExceeded
	}
	if err := vehicle.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := ledgerKey{driverID: driverID, day: day}
	usage := l.entries[key]

	if usage.Orders+1 > vehicle.MaxOrders() || usage.Weight+weight > vehicle.MaxWeight() {
		return ErrCapacityExceeded
	}

	usage.Orders++
	usage.Weight += weight
	l.entries[key] = usage
	return nil
}

// Release returns one order of the given weight to the driver's day. Both
// counters clamp at zero, so releasing more than was reserved is safe and
// idempotent; a fully drained entry is removed.
func (l *CapacityLedger) Release(driverID kernel.UUID, day string, weight float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := ledgerKey{driverID: driverID, day: day}
	usage, ok := l.entries[key]
	if !ok {
		return
	}

	usage.Orders--
	if usage.Orders < 0 {
		usage.Orders = 0
	}
	usage.Weight -= weight
	if usage.Weight < 0 {
		usage.Weight = 0
	}

	if usage.Orders == 0 && usage.Weight == 0 {
		delete(l.entries, key)
		return
	}
	l.entries[key] = usage
}

// Rebook re-adds one order of the given weight without capacity checks.
// Used only by compensation paths that must undo a Release after a failed
// commit; the reservation was within limits before the release, so the
// unchecked re-add cannot overshoot what was ever granted.
func (l *CapacityLedger) Rebook(driverID kernel.UUID, day string, weight float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := ledgerKey{driverID: driverID, day: day}
	usage := l.entries[key]
	usage.Orders++
	usage.Weight += weight
	l.entries[key] = usage
}

// Peek returns the current usage of a driver's day without modifying it.
func (l *CapacityLedger) Peek(driverID kernel.UUID, day string) Usage {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.entries[ledgerKey{driverID: driverID, day: day}]
}

// Snapshot returns a copy of every non-empty driver/day entry.
func (l *CapacityLedger) Snapshot() []LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LedgerEntry, 0, len(l.entries))
	for key, usage := range l.entries {
		out = append(out, LedgerEntry{
			DriverID: key.driverID,
			Day:      key.day,
			Orders:   usage.Orders,
			Weight:   usage.Weight,
		})
	}
	return out
}

// RestoreEntry sets a driver/day usage directly, bypassing capacity checks.
// Used on startup to rebuild the ledger from persisted snapshots.
func (l *CapacityLedger) RestoreEntry(driverID kernel.UUID, day string, orders int, weight float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if orders <= 0 && weight <= 0 {
		return
	}
	l.entries[ledgerKey{driverID: driverID, day: day}] = Usage{Orders: orders, Weight: weight}
}
