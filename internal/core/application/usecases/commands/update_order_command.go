package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a request to change an order's window,
// weight or description. Nil fields keep their current values; the merged
// window is validated against the temporal rules by the handler.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	merchantID  kernel.UUID
	pickup      *time.Time
	dropoff     *time.Time
	weight      *float64
	description *string

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to update an order. All change
// fields are optional; a nil field leaves the order's value untouched.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	merchantID kernel.UUID,
	pickup *time.Time,
	dropoff *time.Time,
	weight *float64,
	description *string,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		pickup:      pickup,
		dropoff:     dropoff,
		weight:      weight,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMerchantID(merchantID),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MerchantID returns the identifier of the merchant requesting the update.
func (c UpdateOrderCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

// Pickup returns the new pickup time, or nil to keep the current one.
func (c UpdateOrderCommand) Pickup() *time.Time {
	return c.pickup
}

// Dropoff returns the new dropoff time, or nil to keep the current one.
func (c UpdateOrderCommand) Dropoff() *time.Time {
	return c.dropoff
}

// Weight returns the new weight, or nil to keep the current one.
func (c UpdateOrderCommand) Weight() *float64 {
	return c.weight
}

// Description returns the new description, or nil to keep the current one.
func (c UpdateOrderCommand) Description() *string {
	return c.description
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}
	c.merchantID = merchantID
	return nil
}
