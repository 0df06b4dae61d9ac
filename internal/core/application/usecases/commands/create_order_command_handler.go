package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// CreateOrderCommandHandler handles order placement. A new order is matched
// against the drivers on shift for its pickup day; when someone has room the
// order is stored Assigned with capacity reserved, otherwise it is stored
// Pending and the assignment job retries later.
type CreateOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	ledger     *services.CapacityLedger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	ledger *services.CapacityLedger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
	}
}

// Handle places a new order. The merchant must exist; an order that no
// driver can take is stored Pending without error.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	if _, err := uow.MerchantRepository().Get(ctx, cmd.MerchantID()); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.MerchantID(), cmd.Window(), cmd.Weight(), cmd.Description())
	if err != nil {
		return err
	}

	day := newOrder.Window().Day()
	drivers, err := uow.DriverRepository().GetAllWithShiftOn(ctx, day)
	if err != nil {
		return err
	}

	matched, err := services.NewOrderMatcher(h.ledger).Match(newOrder, drivers)
	if err != nil && !errors.Is(err, services.ErrNoDriverAvailable) {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		if matched != nil {
			h.ledger.Release(matched.ID(), day, newOrder.Weight())
		}
		return err
	}

	if matched != nil {
		if err = syncLedgerRow(ctx, uow.LedgerRepository(), h.ledger, matched.ID(), day); err != nil {
			h.ledger.Release(matched.ID(), day, newOrder.Weight())
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		if matched != nil {
			h.ledger.Release(matched.ID(), day, newOrder.Weight())
		}
		return err
	}

	return nil
}
