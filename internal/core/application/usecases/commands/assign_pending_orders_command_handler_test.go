package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignPendingOrdersCommandHandler_Handle_AssignsWhatFits(t *testing.T) {
	ctx := t.Context()
	d := testWorkingDriver(t, 2, 100)
	ledger := services.NewCapacityLedger()

	first := testPendingOrder(t, kernel.NewUUID(), 30)
	second := testPendingOrder(t, kernel.NewUUID(), 30)
	third := testPendingOrder(t, kernel.NewUUID(), 30) // over the 2-order limit

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockDispatchUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetAllInPendingStatus", mock.Anything).
		Return([]*order.Order{first, second, third}, nil).Once()
	orderRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()
	orderRepo.On("Get", mock.Anything, second.ID()).Return(second, nil).Once()
	orderRepo.On("Get", mock.Anything, third.ID()).Return(third, nil).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	driverRepo.On("GetAllWithShiftOn", mock.Anything, "2025-01-15").
		Return([]*driver.Driver{d}, nil).Once()
	orderRepo.On("Update", mock.Anything, first).Return(nil).Once()
	orderRepo.On("Update", mock.Anything, second).Return(nil).Once()
	uow.On("LedgerRepository").Return(ledgerRepo).Twice()
	ledgerRepo.On("Upsert", mock.Anything, d.ID(), "2025-01-15", 1, 30.0).Return(nil).Once()
	ledgerRepo.On("Upsert", mock.Anything, d.ID(), "2025-01-15", 2, 60.0).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignPendingOrdersCommandHandler(factory, ledger, commands.NewOrderLockManager())
	cmd := commands.NewAssignPendingOrdersCommand()
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Assigned, first.Status())
	assert.Equal(t, order.Assigned, second.Status())
	assert.Equal(t, order.Pending, third.Status())
	assert.Equal(t, 2, ledger.Peek(d.ID(), "2025-01-15").Orders)

	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
}

func TestAssignPendingOrdersCommandHandler_Handle_SkipsOrderCancelledAfterScan(t *testing.T) {
	ctx := t.Context()
	ledger := services.NewCapacityLedger()

	// The scan returned a pending copy, but a cancel committed before the
	// retry pass took the order's lock.
	stale := testPendingOrder(t, kernel.NewUUID(), 30)
	cancelled, err := order.RestoreOrder(
		stale.ID(), stale.MerchantID(), nil, nil, testWindow(t), 30, "boxes", order.Cancelled,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockDispatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllInPendingStatus", mock.Anything).Return([]*order.Order{stale}, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", mock.Anything, stale.ID()).Return(cancelled, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignPendingOrdersCommandHandler(factory, ledger, commands.NewOrderLockManager())
	cmd := commands.NewAssignPendingOrdersCommand()
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, cancelled.Status(), "cancel must survive the retry pass")
	assert.Nil(t, cancelled.Driver())
	assert.Empty(t, ledger.Snapshot(), "no capacity may be held for a cancelled order")
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	driverRepo.AssertNotCalled(t, "GetAllWithShiftOn", mock.Anything, mock.Anything)

	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestAssignPendingOrdersCommandHandler_Handle_NothingPending(t *testing.T) {
	ctx := t.Context()
	ledger := services.NewCapacityLedger()

	orderRepo := new(MockOrderRepository)
	uow := new(MockDispatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllInPendingStatus", mock.Anything).Return([]*order.Order{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignPendingOrdersCommandHandler(factory, ledger, commands.NewOrderLockManager())
	cmd := commands.NewAssignPendingOrdersCommand()
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}
