package driver

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrVehicleAlreadyAttached is returned when attaching a vehicle to a driver
	// that already has one. A driver owns at most one vehicle.
	ErrVehicleAlreadyAttached = errors.New("driver already has a vehicle")
	// ErrShiftAlreadyExistsForDay is returned when registering a second shift on
	// the same calendar day. A driver has at most one shift per day.
	ErrShiftAlreadyExistsForDay = errors.New("driver already has a shift on this day")
)

// Driver is the aggregate root for a delivery driver. It owns the driver's
// vehicle (zero or one) and shift schedule (at most one shift per calendar
// day).
//
// A driver is eligible for an order only when it has a vehicle and a shift
// covering the order's pickup time; actual capacity accounting lives in the
// capacity ledger, keyed by driver and day against the vehicle's limits.
type Driver struct {
	id      kernel.UUID
	name    string
	vehicle *Vehicle
	shifts  []*Shift
	guard   guard.ConstructorGuard
}

// NewDriver creates a new Driver without a vehicle or shifts. The name is
// required; uniqueness across drivers is enforced by the persistence layer.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage
// together with its vehicle and shifts. The shift collection must hold at
// most one shift per calendar day.
func RestoreDriver(id kernel.UUID, name string, vehicle *Vehicle, shifts []*Shift) (*Driver, error) {
	d, err := NewDriver(id, name)
	if err != nil {
		return nil, err
	}

	if vehicle != nil {
		if err := d.AttachVehicle(vehicle); err != nil {
			return nil, err
		}
	}

	for _, shift := range shifts {
		if err := d.AddShift(shift); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Validate ensures the Driver instance was properly constructed.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's name.
func (d *Driver) Name() string {
	return d.name
}

// Vehicle returns the driver's vehicle, or nil when none is attached.
func (d *Driver) Vehicle() *Vehicle {
	return d.vehicle
}

// Shifts returns the driver's shift schedule. The returned slice is a copy.
func (d *Driver) Shifts() []*Shift {
	out := make([]*Shift, len(d.shifts))
	copy(out, d.shifts)
	return out
}

// AttachVehicle gives the driver its vehicle. A driver owns at most one
// vehicle; a second attach returns ErrVehicleAlreadyAttached.
func (d *Driver) AttachVehicle(vehicle *Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	if d.vehicle != nil {
		return ErrVehicleAlreadyAttached
	}

	d.vehicle = vehicle
	return nil
}

// AddShift registers a working shift. At most one shift may exist per
// calendar day; a duplicate day returns ErrShiftAlreadyExistsForDay.
func (d *Driver) AddShift(shift *Shift) error {
	if err := shift.Validate(); err != nil {
		return err
	}
	if d.ShiftOn(shift.Day()) != nil {
		return ErrShiftAlreadyExistsForDay
	}

	d.shifts = append(d.shifts, shift)
	return nil
}

// ShiftOn returns the driver's shift on the given calendar day, or nil when
// the driver is off that day.
func (d *Driver) ShiftOn(day string) *Shift {
	for _, shift := range d.shifts {
		if shift.Day() == day {
			return shift
		}
	}
	return nil
}

// IsOnShiftAt reports whether the driver has a shift covering the given
// moment.
func (d *Driver) IsOnShiftAt(ts time.Time) bool {
	shift := d.ShiftOn(kernel.DayKey(ts))
	return shift != nil && shift.Covers(ts)
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}
