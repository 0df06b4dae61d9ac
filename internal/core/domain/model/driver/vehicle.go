package driver

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrMaxOrdersIsRequired is returned when a vehicle's order capacity is not positive.
	ErrMaxOrdersIsRequired = errs.NewValueIsRequiredError("maxOrders")
	// ErrMaxWeightIsRequired is returned when a vehicle's weight capacity is not positive.
	ErrMaxWeightIsRequired = errs.NewValueIsRequiredError("maxWeight")
	// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

// Vehicle is the capacity-bearing entity owned by a driver. Its limits bound
// how many orders and how much weight the driver can be booked for on any
// single day.
type Vehicle struct {
	id        kernel.UUID
	maxOrders int
	maxWeight float64
	guard     guard.ConstructorGuard
}

// NewVehicle creates a new Vehicle. Both capacity limits must be positive.
func NewVehicle(id kernel.UUID, maxOrders int, maxWeight float64) (*Vehicle, error) {
	v := &Vehicle{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setMaxOrders(maxOrders),
		v.setMaxWeight(maxWeight),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle reconstructs a Vehicle from persistent storage.
func RestoreVehicle(id kernel.UUID, maxOrders int, maxWeight float64) (*Vehicle, error) {
	return NewVehicle(id, maxOrders, maxWeight)
}

// Validate ensures the Vehicle instance was properly constructed.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// MaxOrders returns the maximum number of orders the vehicle can carry per day.
func (v *Vehicle) MaxOrders() int {
	return v.maxOrders
}

// MaxWeight returns the maximum total weight the vehicle can carry per day.
func (v *Vehicle) MaxWeight() float64 {
	return v.maxWeight
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setMaxOrders(maxOrders int) error {
	if maxOrders <= 0 {
		return ErrMaxOrdersIsRequired
	}
	v.maxOrders = maxOrders
	return nil
}

func (v *Vehicle) setMaxWeight(maxWeight float64) error {
	if maxWeight <= 0 {
		return ErrMaxWeightIsRequired
	}
	v.maxWeight = maxWeight
	return nil
}
