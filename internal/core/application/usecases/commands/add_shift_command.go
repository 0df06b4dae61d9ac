package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAddShiftCommandIsNotConstructed = errors.New(
	"AddShiftCommand must be created via NewAddShiftCommand constructor",
)

// AddShiftCommand represents a request to register a working shift for a
// driver. Shift interval rules (non-empty, single calendar day, one shift
// per day) are enforced by the driver aggregate.
type AddShiftCommand struct { //nolint:recvcheck //using for validation
	shiftID  kernel.UUID
	driverID kernel.UUID
	start    time.Time
	end      time.Time

	guard guard.ConstructorGuard
}

// NewAddShiftCommand creates a command to register a shift.
func NewAddShiftCommand(shiftID, driverID kernel.UUID, start, end time.Time) (AddShiftCommand, error) {
	cmd := AddShiftCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShiftID(shiftID),
		cmd.setDriverID(driverID),
		cmd.setInterval(start, end),
	); err != nil {
		return AddShiftCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddShiftCommand) Validate() error {
	return c.guard.Validate(ErrAddShiftCommandIsNotConstructed)
}

// ShiftID returns the identifier for the new shift.
func (c AddShiftCommand) ShiftID() kernel.UUID {
	return c.shiftID
}

// DriverID returns the identifier of the driver working the shift.
func (c AddShiftCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Start returns the moment the shift begins.
func (c AddShiftCommand) Start() time.Time {
	return c.start
}

// End returns the moment the shift ends.
func (c AddShiftCommand) End() time.Time {
	return c.end
}

func (c *AddShiftCommand) setShiftID(shiftID kernel.UUID) error {
	if err := shiftID.Validate(); err != nil {
		return err
	}
	c.shiftID = shiftID
	return nil
}

func (c *AddShiftCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *AddShiftCommand) setInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errs.NewValueIsRequiredError("shift interval")
	}
	c.start = start
	c.end = end
	return nil
}
