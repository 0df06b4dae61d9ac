package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderNotAssignedToDriver is returned when a driver tries to complete
	// an order that is assigned to somebody else.
	ErrOrderNotAssignedToDriver = errors.New("order is not assigned to this driver")
)

// Order is the aggregate root for a merchant's delivery request. It owns the
// status state machine and the driver/vehicle binding.
//
// Invariants:
//   - weight is positive
//   - the pickup/dropoff window is valid (enforced by kernel.TimeWindow)
//   - Assigned and Completed orders carry both a driver and a vehicle id;
//     Pending and Cancelled orders carry neither
//   - terminal statuses (Completed, Cancelled) permit no further mutation
//
// The struct uses private fields; all mutation goes through validated
// methods. Capacity ledger bookkeeping belongs to the caller: assigning,
// unassigning or cancelling an order only records the binding, the matching
// service and lifecycle handlers perform the corresponding reserve/release.
type Order struct {
	id          kernel.UUID
	merchantID  kernel.UUID
	driverID    *kernel.UUID
	vehicleID   *kernel.UUID
	window      kernel.TimeWindow
	weight      float64
	description string
	status      Status
	guard       guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status. The window must come from
// kernel.NewTimeWindow, so temporal rules are already enforced; weight must
// be positive.
func NewOrder(
	id kernel.UUID,
	merchantID kernel.UUID,
	window kernel.TimeWindow,
	weight float64,
	description string,
) (*Order, error) {
	o := &Order{
		status:      Pending,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setMerchantID(merchantID),
		o.setWindow(window),
		o.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, preserving its
// status and driver/vehicle binding. The binding must be consistent with the
// status: both ids present for Assigned/Completed, both absent otherwise.
func RestoreOrder(
	id kernel.UUID,
	merchantID kernel.UUID,
	driverID *kernel.UUID,
	vehicleID *kernel.UUID,
	window kernel.TimeWindow,
	weight float64,
	description string,
	status Status,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	hasDriver := driverID != nil
	hasVehicle := vehicleID != nil
	if hasDriver != hasVehicle {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order binding is invalid",
			fmt.Errorf("driver and vehicle must be set together"),
		)
	}
	if err := status.ValidateCanHaveDriver(hasDriver); err != nil {
		return nil, err
	}

	o := &Order{
		status:      status,
		driverID:    driverID,
		vehicleID:   vehicleID,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setMerchantID(merchantID),
		o.setWindow(window),
		o.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// MerchantID returns the identifier of the merchant that placed the order.
func (o *Order) MerchantID() kernel.UUID {
	return o.merchantID
}

// Driver returns the assigned driver's id, or nil when unassigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Vehicle returns the assigned vehicle's id, or nil when unassigned.
func (o *Order) Vehicle() *kernel.UUID {
	return o.vehicleID
}

// Window returns the pickup/dropoff time window.
func (o *Order) Window() kernel.TimeWindow {
	return o.window
}

// Weight returns the order's weight.
func (o *Order) Weight() float64 {
	return o.weight
}

// Description returns the free-form order description.
func (o *Order) Description() string {
	return o.description
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// BelongsTo reports whether the given merchant placed this order. Lifecycle
// handlers use it to reject updates and cancellations from anyone else.
func (o *Order) BelongsTo(merchantID kernel.UUID) bool {
	return o.merchantID.IsEqual(merchantID)
}

// ValidateAssign checks whether the order can currently be (re)assigned,
// without side effects.
func (o *Order) ValidateAssign() error {
	return o.status.ValidateAssign()
}

// Assign books the order onto a driver and that driver's vehicle and moves
// the status to Assigned. Valid from Pending and Assigned (reassignment).
// The caller must have reserved ledger capacity first.
func (o *Order) Assign(driverID, vehicleID kernel.UUID) error {
	if err := errors.Join(driverID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	o.vehicleID = &vehicleID
	return nil
}

// Unassign clears the driver/vehicle binding and moves the order back to
// Pending. Used when an update releases the old booking and no new driver
// can be found. The caller releases the ledger reservation.
func (o *Order) Unassign() error {
	newStatus, err := o.status.Unassign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = nil
	o.vehicleID = nil
	return nil
}

// Complete marks the order delivered. Only the assigned driver may complete
// it; terminal orders return ErrOrderIsTerminal. The day's reserved capacity
// is deliberately not released: it counts as used for that day.
func (o *Order) Complete(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	if o.driverID == nil || !o.driverID.IsEqual(driverID) {
		return ErrOrderNotAssignedToDriver
	}

	o.status = newStatus
	return nil
}

// Cancel withdraws the order, clearing any driver/vehicle binding. Valid
// from Pending and Assigned; terminal orders return ErrOrderIsTerminal.
// The caller releases the ledger reservation for a previously Assigned order.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = nil
	o.vehicleID = nil
	return nil
}

// Reschedule replaces the order's window, weight and description. Rejected
// for terminal orders. The binding is left untouched: the lifecycle handler
// decides whether the change requires releasing the old reservation and
// rematching.
func (o *Order) Reschedule(window kernel.TimeWindow, weight float64, description string) error {
	if o.status.IsTerminal() {
		return ErrOrderIsTerminal
	}

	if err := errors.Join(
		o.setWindow(window),
		o.setWeight(weight),
	); err != nil {
		return err
	}

	o.description = description
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}
	o.merchantID = merchantID
	return nil
}

func (o *Order) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	o.window = window
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid", fmt.Errorf("%v is not greater than 0", weight))
	}
	o.weight = weight
	return nil
}
