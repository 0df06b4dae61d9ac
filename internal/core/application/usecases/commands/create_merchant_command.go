package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateMerchantCommandIsNotConstructed = errors.New(
		"CreateMerchantCommand must be created via NewCreateMerchantCommand constructor",
	)
	ErrMerchantNameIsRequired  = errors.New("merchant name is required")
	ErrMerchantEmailIsRequired = errors.New("merchant email is required")
)

// CreateMerchantCommand represents a request to register a new merchant.
type CreateMerchantCommand struct { //nolint:recvcheck //using for validation
	merchantID kernel.UUID
	name       string
	email      string

	guard guard.ConstructorGuard
}

// NewCreateMerchantCommand creates a command to register a merchant.
// Name and email are required.
func NewCreateMerchantCommand(merchantID kernel.UUID, name, email string) (CreateMerchantCommand, error) {
	cmd := CreateMerchantCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMerchantID(merchantID),
		cmd.setName(name),
		cmd.setEmail(email),
	); err != nil {
		return CreateMerchantCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateMerchantCommand) Validate() error {
	return c.guard.Validate(ErrCreateMerchantCommandIsNotConstructed)
}

// MerchantID returns the identifier for the new merchant.
func (c CreateMerchantCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

// Name returns the merchant's business name.
func (c CreateMerchantCommand) Name() string {
	return c.name
}

// Email returns the merchant's contact email.
func (c CreateMerchantCommand) Email() string {
	return c.email
}

func (c *CreateMerchantCommand) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}
	c.merchantID = merchantID
	return nil
}

func (c *CreateMerchantCommand) setName(name string) error {
	if name == "" {
		return ErrMerchantNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateMerchantCommand) setEmail(email string) error {
	if email == "" {
		return ErrMerchantEmailIsRequired
	}
	c.email = email
	return nil
}
