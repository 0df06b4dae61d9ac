package services

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// ErrNoDriverAvailable is returned when no driver can take the order: nobody
// is on shift at pickup time, or everyone on shift is at capacity.
var ErrNoDriverAvailable = errors.New("no driver available for this order")

// OrderMatcher is the domain service that books a pending order onto a
// driver. Candidates are the drivers on shift at the order's pickup time,
// walked in id order; the first one with free capacity wins.
//
// The matcher reserves ledger capacity before mutating the order, so a
// failed assignment never leaks a reservation. Callers that later fail to
// persist the assignment must release the reservation themselves.
type OrderMatcher struct {
	ledger *CapacityLedger
}

// NewOrderMatcher creates an OrderMatcher booking against the given ledger.
func NewOrderMatcher(ledger *CapacityLedger) OrderMatcher {
	return OrderMatcher{ledger: ledger}
}

// Match finds the first driver that can take the order, reserves capacity
// and assigns the order to it. There is no separate availability peek
// before reserving: TryReserve folds the capacity comparison into the
// reservation, so a candidate is either booked or skipped in one atomic
// step. Returns ErrNoDriverAvailable when no candidate has room.
func (m OrderMatcher) Match(o *order.Order, drivers []*driver.Driver) (*driver.Driver, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.ValidateAssign(); err != nil {
		return nil, err
	}

	index, err := NewShiftIndex(drivers)
	if err != nil {
		return nil, err
	}

	day := o.Window().Day()
	for _, d := range index.EligibleAt(o.Window().Pickup()) {
		err := m.ledger.TryReserve(d.ID(), day, o.Weight(), d.Vehicle())
		if errors.Is(err, ErrCapacityExceeded) {
			// Someone else may have filled this driver up; try the next one.
			continue
		}
		if err != nil {
			return nil, err
		}

		if err := o.Assign(d.ID(), d.Vehicle().ID()); err != nil {
			m.ledger.Release(d.ID(), day, o.Weight())
			return nil, err
		}
		return d, nil
	}

	return nil, ErrNoDriverAvailable
}
