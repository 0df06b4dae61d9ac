package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// ErrMerchantNotOwner is returned when a merchant tries to update or cancel
// an order placed by somebody else.
var ErrMerchantNotOwner = errors.New("order belongs to a different merchant")

// UpdateOrderCommandHandler handles order updates. A window or weight change
// releases the order's current booking first and then rebooks from scratch
// against the merged window, so the freed capacity is available during the
// rematch; the same driver can win again when it still fits best. An order
// nobody can take falls back to Pending. A description-only update keeps
// the existing booking untouched.
type UpdateOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	ledger     *services.CapacityLedger
	locks      *OrderLockManager
}

// NewUpdateOrderCommandHandler creates a handler for order updates.
func NewUpdateOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	ledger *services.CapacityLedger,
	locks *OrderLockManager,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		locks:      locks,
	}
}

// Handle updates an order. Only the owning merchant may update; terminal
// orders are rejected. Returns the same temporal validation errors as order
// placement when the merged window is invalid.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.OrderID())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !aggregate.BelongsTo(cmd.MerchantID()) {
		return ErrMerchantNotOwner
	}
	if aggregate.Status().IsTerminal() {
		return order.ErrOrderIsTerminal
	}

	window, weight, description, err := mergeOrderChanges(aggregate, cmd)
	if err != nil {
		return err
	}

	// A description-only edit keeps the current booking; only a changed
	// window or weight invalidates it.
	if window.IsEqual(aggregate.Window()) && weight == aggregate.Weight() {
		if err = aggregate.Reschedule(window, weight, description); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	// Capture the current booking before any mutation so it can be released
	// and, on failure, restored.
	var (
		oldDriverID kernel.UUID
		oldDay      = aggregate.Window().Day()
		oldWeight   = aggregate.Weight()
		released    bool
	)
	if aggregate.Driver() != nil {
		oldDriverID = *aggregate.Driver()
	}

	if err = aggregate.Reschedule(window, weight, description); err != nil {
		return err
	}

	if aggregate.Status() == order.Assigned {
		h.ledger.Release(oldDriverID, oldDay, oldWeight)
		released = true
		if err = aggregate.Unassign(); err != nil {
			h.ledger.Rebook(oldDriverID, oldDay, oldWeight)
			return err
		}
	}

	rebook := func() {
		if released {
			h.ledger.Rebook(oldDriverID, oldDay, oldWeight)
		}
	}

	newDay := aggregate.Window().Day()
	drivers, err := uow.DriverRepository().GetAllWithShiftOn(ctx, newDay)
	if err != nil {
		rebook()
		return err
	}

	matched, err := services.NewOrderMatcher(h.ledger).Match(aggregate, drivers)
	if err != nil && !errors.Is(err, services.ErrNoDriverAvailable) {
		rebook()
		return err
	}

	releaseNew := func() {
		if matched != nil {
			h.ledger.Release(matched.ID(), newDay, aggregate.Weight())
		}
	}
	fail := func(cause error) error {
		releaseNew()
		rebook()
		return cause
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return fail(err)
	}

	ledgerRepo := uow.LedgerRepository()
	if released {
		if err = syncLedgerRow(ctx, ledgerRepo, h.ledger, oldDriverID, oldDay); err != nil {
			return fail(err)
		}
	}
	if matched != nil {
		if err = syncLedgerRow(ctx, ledgerRepo, h.ledger, matched.ID(), newDay); err != nil {
			return fail(err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return fail(err)
	}

	return nil
}

// mergeOrderChanges overlays the command's change fields onto the order's
// current values and validates the resulting window.
func mergeOrderChanges(
	aggregate *order.Order,
	cmd UpdateOrderCommand,
) (kernel.TimeWindow, float64, string, error) {
	pickup := aggregate.Window().Pickup()
	if cmd.Pickup() != nil {
		pickup = *cmd.Pickup()
	}
	dropoff := aggregate.Window().Dropoff()
	if cmd.Dropoff() != nil {
		dropoff = *cmd.Dropoff()
	}

	window, err := kernel.NewTimeWindow(pickup, dropoff)
	if err != nil {
		return kernel.TimeWindow{}, 0, "", err
	}

	weight := aggregate.Weight()
	if cmd.Weight() != nil {
		weight = *cmd.Weight()
	}
	description := aggregate.Description()
	if cmd.Description() != nil {
		description = *cmd.Description()
	}

	return window, weight, description, nil
}
