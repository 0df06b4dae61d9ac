package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_ReleasesAssignedCapacity(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	d := testWorkingDriver(t, 3, 100)
	ledger := services.NewCapacityLedger()

	aggregate := testAssignedOrder(t, merchantID, d, 40)
	require.NoError(t, ledger.TryReserve(d.ID(), "2025-01-15", 40, d.Vehicle()))

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), merchantID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Upsert", mock.Anything, d.ID(), "2025-01-15", 0, 0.0).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, ledger, commands.NewOrderLockManager())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, aggregate.Status())
	assert.Empty(t, ledger.Snapshot())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_PendingOrderReleasesNothing(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	ledger := services.NewCapacityLedger()
	aggregate := testPendingOrder(t, merchantID, 40)

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), merchantID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, ledger, commands.NewOrderLockManager())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, aggregate.Status())
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_RejectsForeignMerchant(t *testing.T) {
	ctx := t.Context()
	aggregate := testPendingOrder(t, kernel.NewUUID(), 40)

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, services.NewCapacityLedger(), commands.NewOrderLockManager())
	require.ErrorIs(t, h.Handle(ctx, cmd), commands.ErrMerchantNotOwner)
	assert.Equal(t, order.Pending, aggregate.Status())
}

func TestCancelOrderCommandHandler_Handle_RejectsTerminalOrder(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	aggregate := testPendingOrder(t, merchantID, 40)
	require.NoError(t, aggregate.Cancel())

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), merchantID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, services.NewCapacityLedger(), commands.NewOrderLockManager())
	require.ErrorIs(t, h.Handle(ctx, cmd), order.ErrOrderIsTerminal)
}
