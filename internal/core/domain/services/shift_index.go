package services

import (
	"sort"
	"time"

	"dispatch/internal/core/domain/model/driver"
)

// ShiftIndex answers "which drivers are working at this moment" over a fixed
// set of drivers. The index keeps its drivers sorted by id so candidate
// enumeration is deterministic regardless of input order.
type ShiftIndex struct {
	drivers []*driver.Driver
}

// NewShiftIndex builds an index over the given drivers. Each driver must be
// properly constructed.
func NewShiftIndex(drivers []*driver.Driver) (ShiftIndex, error) {
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return ShiftIndex{}, err
		}
	}

	sorted := make([]*driver.Driver, len(drivers))
	copy(sorted, drivers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID().String() < sorted[j].ID().String()
	})

	return ShiftIndex{drivers: sorted}, nil
}

// EligibleAt returns the drivers that have a vehicle and a shift covering the
// given moment, in id order.
func (i ShiftIndex) EligibleAt(ts time.Time) []*driver.Driver {
	var out []*driver.Driver
	for _, d := range i.drivers {
		if d.Vehicle() == nil {
			continue
		}
		if !d.IsOnShiftAt(ts) {
			continue
		}
		out = append(out, d)
	}
	return out
}
