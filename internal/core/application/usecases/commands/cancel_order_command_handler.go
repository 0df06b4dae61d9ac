package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// CancelOrderCommandHandler handles order cancellation. Cancelling an
// assigned order releases its driver's capacity for the day; cancelling a
// pending order releases nothing.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     *services.CapacityLedger
	locks      *OrderLockManager
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	ledger *services.CapacityLedger,
	locks *OrderLockManager,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		locks:      locks,
	}
}

// Handle cancels an order. Only the owning merchant may cancel; terminal
// orders return order.ErrOrderIsTerminal.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	var (
		bookedDriverID kernel.UUID
		bookedDay      = aggregate.Window().Day()
		bookedWeight   = aggregate.Weight()
		released       bool
	)
	if aggregate.Status() == order.Assigned {
		bookedDriverID = *aggregate.Driver()
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if bookedDriverID.Validate() == nil {
		h.ledger.Release(bookedDriverID, bookedDay, bookedWeight)
		released = true
	}

	fail := func(cause error) error {
		if released {
			h.ledger.Rebook(bookedDriverID, bookedDay, bookedWeight)
		}
		return cause
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return fail(err)
	}

	if released {
		if err = syncLedgerRow(ctx, uow.LedgerRepository(), h.ledger, bookedDriverID, bookedDay); err != nil {
			return fail(err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return fail(err)
	}

	return nil
}
