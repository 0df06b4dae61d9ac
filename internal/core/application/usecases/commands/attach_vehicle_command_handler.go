package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// AttachVehicleCommandHandler handles attaching a vehicle to a driver.
type AttachVehicleCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewAttachVehicleCommandHandler creates a handler for vehicle attachment.
func NewAttachVehicleCommandHandler(uowFactory DriverUoWFactory) AttachVehicleCommandHandler {
	return AttachVehicleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle attaches a vehicle to an existing driver. Fails when the driver
// does not exist or already has a vehicle.
func (h AttachVehicleCommandHandler) Handle(ctx context.Context, cmd AttachVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	aggregate, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	vehicle, err := driver.NewVehicle(cmd.VehicleID(), cmd.MaxOrders(), cmd.MaxWeight())
	if err != nil {
		return err
	}

	if err = aggregate.AttachVehicle(vehicle); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
