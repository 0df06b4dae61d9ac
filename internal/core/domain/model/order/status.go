package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrOrderIsTerminal is returned on any attempt to transition an order out of
// a terminal status. Completed and Cancelled orders are immutable.
var ErrOrderIsTerminal = errors.New("order is in a terminal status and cannot be modified")

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions so orders follow the business workflow.
//
// State transitions:
//
//	Pending ──┬──> Assigned ──┬──> Completed
//	    ^     │       │       │
//	    │     └───────┘       │
//	    │  (reassignment)     │
//	    └─────────────────────┤ (failed rebooking: Assigned -> Pending)
//	                          │
//	Pending/Assigned ─────────┴──> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the order exists but no driver could be
	// (or has yet been) booked for it.
	Pending

	// Assigned indicates a driver and vehicle are booked for the order and
	// capacity is reserved on the ledger.
	Assigned

	// Completed indicates the order was delivered. Terminal; the day's
	// capacity stays consumed for historical accounting.
	Completed

	// Cancelled indicates the order was withdrawn and its reservation, if
	// any, released. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Assigned:  "Assigned",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Used when reconstructing orders from persistence or external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. Safe to call on any
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateAssign checks if the status allows assignment without performing
// the transition. Pending orders can be assigned; Assigned orders can be
// reassigned. Terminal orders return ErrOrderIsTerminal.
func (s Status) ValidateAssign() error {
	if s.IsTerminal() {
		return ErrOrderIsTerminal
	}
	if s != Pending && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver binding: Assigned and Completed orders must carry a driver, Pending
// and Cancelled orders must not.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s != Assigned && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !hasDriver && (s == Assigned || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}

// Assign transitions the status to Assigned. Valid from Pending (initial
// booking) and Assigned (reassignment).
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}
	return Assigned, nil
}

// Unassign transitions the status back to Pending, used when an order loses
// its booking (failed rebooking during an update). Valid from Pending and
// Assigned.
func (s Status) Unassign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}
	return Pending, nil
}

// Complete transitions the status to Completed. Valid only from Assigned.
func (s Status) Complete() (Status, error) {
	if s.IsTerminal() {
		return 0, ErrOrderIsTerminal
	}
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return Completed, nil
}

// Cancel transitions the status to Cancelled. Valid from Pending and
// Assigned; terminal orders return ErrOrderIsTerminal.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, ErrOrderIsTerminal
	}
	if s != Pending && s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}
