package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrWeightIsInvalid = errors.New("weight must be greater than 0")
)

// CreateOrderCommand represents a request to place a new delivery order.
// The pickup/dropoff window is validated on construction, so a constructed
// command always carries a valid window.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	merchantID  kernel.UUID
	window      kernel.TimeWindow
	weight      float64
	description string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order. The window must
// satisfy the temporal rules (at least 15 minutes, at most 4 hours, single
// calendar day) and weight must be positive.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	merchantID kernel.UUID,
	pickup time.Time,
	dropoff time.Time,
	weight float64,
	description string,
) (CreateOrderCommand, error) {
	window, err := kernel.NewTimeWindow(pickup, dropoff)
	if err != nil {
		return CreateOrderCommand{}, err
	}

	cmd := CreateOrderCommand{
		window:      window,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMerchantID(merchantID),
		cmd.setWeight(weight),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MerchantID returns the identifier of the merchant placing the order.
func (c CreateOrderCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

// Window returns the validated pickup/dropoff window.
func (c CreateOrderCommand) Window() kernel.TimeWindow {
	return c.window
}

// Weight returns the order's weight.
func (c CreateOrderCommand) Weight() float64 {
	return c.weight
}

// Description returns the free-form order description.
func (c CreateOrderCommand) Description() string {
	return c.description
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}
	c.merchantID = merchantID
	return nil
}

func (c *CreateOrderCommand) setWeight(weight float64) error {
	if weight <= 0 {
		return ErrWeightIsInvalid
	}
	c.weight = weight
	return nil
}
