package cmd

import (
	"context"
	"fmt"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"

	"gorm.io/gorm"
)

// CompositionRoot wires the application together. It owns the process-wide
// singletons: the database connection, the in-memory capacity ledger, and
// the per-order lock manager. Handler factory methods hand out fresh
// handlers sharing those singletons.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	ledger     *services.CapacityLedger
	locks      *commands.OrderLockManager
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		ledger:     services.NewCapacityLedger(),
		locks:      commands.NewOrderLockManager(),
	}
}

// RestoreLedger rebuilds the in-memory capacity ledger from the persisted
// usage snapshots. Must run before any traffic is served: reservations made
// against an empty ledger could overbook drivers with existing assignments.
func (c *CompositionRoot) RestoreLedger(ctx context.Context) error {
	uow := c.uowFactory.Create()

	entries, err := uow.LedgerRepository().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load capacity entries: %w", err)
	}

	for _, entry := range entries {
		c.ledger.RestoreEntry(entry.DriverID, entry.Day, entry.Orders, entry.Weight)
	}
	return nil
}

func (c *CompositionRoot) CreateCreateMerchantCommandHandler() commands.CreateMerchantCommandHandler {
	var f commands.MerchantUoWFactory = FuncMerchantUoWFactory(func() commands.MerchantUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateMerchantCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	return commands.NewCreateDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateAttachVehicleCommandHandler() commands.AttachVehicleCommandHandler {
	return commands.NewAttachVehicleCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateAddShiftCommandHandler() commands.AddShiftCommandHandler {
	return commands.NewAddShiftCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.dispatchUoWFactory(), c.ledger)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.dispatchUoWFactory(), c.ledger, c.locks)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.ledger, c.locks)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateAssignPendingOrdersCommandHandler() commands.AssignPendingOrdersCommandHandler {
	return commands.NewAssignPendingOrdersCommandHandler(c.dispatchUoWFactory(), c.ledger, c.locks)
}

func (c *CompositionRoot) CreateGetMerchantOrdersQueryHandler() queries.GetMerchantOrdersQueryHandler {
	return queries.NewGetMerchantOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriversQueryHandler() queries.GetDriversQueryHandler {
	return queries.NewGetDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

type FuncMerchantUoWFactory func() commands.MerchantUoW

func (f FuncMerchantUoWFactory) Create() commands.MerchantUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}
