package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAttachVehicleCommandIsNotConstructed = errors.New(
		"AttachVehicleCommand must be created via NewAttachVehicleCommand constructor",
	)
	ErrMaxOrdersIsInvalid = errors.New("maxOrders must be greater than 0")
	ErrMaxWeightIsInvalid = errors.New("maxWeight must be greater than 0")
)

// AttachVehicleCommand represents a request to give a driver its vehicle.
// The vehicle carries the driver's per-day capacity limits.
type AttachVehicleCommand struct { //nolint:recvcheck //using for validation
	vehicleID kernel.UUID
	driverID  kernel.UUID
	maxOrders int
	maxWeight float64

	guard guard.ConstructorGuard
}

// NewAttachVehicleCommand creates a command to attach a vehicle to a driver.
// Both capacity limits must be positive.
func NewAttachVehicleCommand(
	vehicleID kernel.UUID,
	driverID kernel.UUID,
	maxOrders int,
	maxWeight float64,
) (AttachVehicleCommand, error) {
	cmd := AttachVehicleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVehicleID(vehicleID),
		cmd.setDriverID(driverID),
		cmd.setMaxOrders(maxOrders),
		cmd.setMaxWeight(maxWeight),
	); err != nil {
		return AttachVehicleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAttachVehicleCommandIsNotConstructed)
}

// VehicleID returns the identifier for the new vehicle.
func (c AttachVehicleCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// DriverID returns the identifier of the driver receiving the vehicle.
func (c AttachVehicleCommand) DriverID() kernel.UUID {
	return c.driverID
}

// MaxOrders returns the vehicle's per-day order count limit.
func (c AttachVehicleCommand) MaxOrders() int {
	return c.maxOrders
}

// MaxWeight returns the vehicle's per-day total weight limit.
func (c AttachVehicleCommand) MaxWeight() float64 {
	return c.maxWeight
}

func (c *AttachVehicleCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *AttachVehicleCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *AttachVehicleCommand) setMaxOrders(maxOrders int) error {
	if maxOrders <= 0 {
		return ErrMaxOrdersIsInvalid
	}
	c.maxOrders = maxOrders
	return nil
}

func (c *AttachVehicleCommand) setMaxWeight(maxWeight float64) error {
	if maxWeight <= 0 {
		return ErrMaxWeightIsInvalid
	}
	c.maxWeight = maxWeight
	return nil
}
