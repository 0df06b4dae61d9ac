package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAssignPendingOrdersCommandIsNotConstructed = errors.New(
	"AssignPendingOrdersCommand must be created via NewAssignPendingOrdersCommand constructor",
)

// AssignPendingOrdersCommand triggers a matching pass over every pending
// order. Orders left pending because nobody had room at placement time get
// another chance whenever capacity frees up or new shifts are registered.
type AssignPendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignPendingOrdersCommand creates a new command to retry pending
// orders. This is a parameterless command driven by the assignment job.
func NewAssignPendingOrdersCommand() AssignPendingOrdersCommand {
	return AssignPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AssignPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignPendingOrdersCommandIsNotConstructed)
}
