package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// AssignPendingOrdersCommandHandler retries matching for orders stored in
// Pending status. Each pending order runs through the same first-fit
// matching as at placement; orders that still find nobody stay Pending.
type AssignPendingOrdersCommandHandler struct {
	uowFactory DispatchUoWFactory
	ledger     *services.CapacityLedger
	locks      *OrderLockManager
}

// NewAssignPendingOrdersCommandHandler creates a handler for the pending
// order retry pass.
func NewAssignPendingOrdersCommandHandler(
	uowFactory DispatchUoWFactory,
	ledger *services.CapacityLedger,
	locks *OrderLockManager,
) AssignPendingOrdersCommandHandler {
	return AssignPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		locks:      locks,
	}
}

type booking struct {
	driverID kernel.UUID
	day      string
	weight   float64
}

// Handle runs one matching pass over all pending orders. Successful matches
// are persisted in a single transaction; on commit failure every new
// reservation is released.
func (h AssignPendingOrdersCommandHandler) Handle(ctx context.Context, cmd AssignPendingOrdersCommand) error {
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

	orderRepo := uow.OrderRepository()
	pending, err := orderRepo.GetAllInPendingStatus(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	driverRepo := uow.DriverRepository()
	matcher := services.NewOrderMatcher(h.ledger)
	driversByDay := make(map[string][]*driver.Driver)

	var bookings []booking
	releaseAll := func() {
		for _, b := range bookings {
			h.ledger.Release(b.driverID, b.day, b.weight)
		}
	}

	for _, stale := range pending {
		unlock := h.locks.Lock(stale.ID())

		// A cancel or complete can commit between the pending scan and this
		// lock; the scanned copy is then stale. Re-read under the lock and
		// only book orders that are still pending.
		aggregate, err := orderRepo.Get(ctx, stale.ID())
		if err != nil {
			unlock()
			releaseAll()
			return err
		}
		if aggregate.Status() != order.Pending {
			unlock()
			continue
		}

		day := aggregate.Window().Day()
		drivers, ok := driversByDay[day]
		if !ok {
			drivers, err = driverRepo.GetAllWithShiftOn(ctx, day)
			if err != nil {
				unlock()
				releaseAll()
				return err
			}
			driversByDay[day] = drivers
		}

		matched, matchErr := matcher.Match(aggregate, drivers)
		if errors.Is(matchErr, services.ErrNoDriverAvailable) {
			unlock()
			continue
		}
		if matchErr != nil {
			unlock()
			releaseAll()
			return matchErr
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			h.ledger.Release(matched.ID(), day, aggregate.Weight())
			unlock()
			releaseAll()
			return err
		}
		bookings = append(bookings, booking{driverID: matched.ID(), day: day, weight: aggregate.Weight()})

		if err = syncLedgerRow(ctx, uow.LedgerRepository(), h.ledger, matched.ID(), day); err != nil {
			unlock()
			releaseAll()
			return err
		}
		unlock()
	}

	if err = uow.Commit(ctx); err != nil {
		releaseAll()
		return err
	}

	return nil
}
