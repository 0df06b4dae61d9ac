package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// AddShiftCommandHandler handles registering a driver's working shift.
type AddShiftCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewAddShiftCommandHandler creates a handler for shift registration.
func NewAddShiftCommandHandler(uowFactory DriverUoWFactory) AddShiftCommandHandler {
	return AddShiftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle registers a shift for an existing driver. Fails when the driver
// does not exist, the interval is invalid, or a shift already exists on
// that day.
func (h AddShiftCommandHandler) Handle(ctx context.Context, cmd AddShiftCommand) error {
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

	shift, err := driver.NewShift(cmd.ShiftID(), cmd.Start(), cmd.End())
	if err != nil {
		return err
	}

	if err = aggregate.AddShift(shift); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
