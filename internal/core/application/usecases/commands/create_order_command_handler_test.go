package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_AssignsWhenDriverHasRoom(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), merchantID, testPickup, testPickup.Add(time.Hour), 25, "boxes",
	)
	require.NoError(t, err)

	d := testWorkingDriver(t, 3, 100)
	ledger := services.NewCapacityLedger()

	merchantRepo := new(MockMerchantRepository)
	driverRepo := new(MockDriverRepository)
	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockDispatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MerchantRepository").Return(merchantRepo).Once(),
		merchantRepo.On("Get", mock.Anything, merchantID).Return(testMerchant(t, merchantID), nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetAllWithShiftOn", mock.Anything, "2025-01-15").
			Return([]*driver.Driver{d}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Upsert", mock.Anything, d.ID(), "2025-01-15", 1, 25.0).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, ledger)
	require.NoError(t, h.Handle(ctx, cmd))

	usage := ledger.Peek(d.ID(), "2025-01-15")
	assert.Equal(t, 1, usage.Orders)
	assert.InEpsilon(t, 25.0, usage.Weight, 1e-9)

	uow.AssertExpectations(t)
	merchantRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_StoresPendingWhenNobodyAvailable(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), merchantID, testPickup, testPickup.Add(time.Hour), 25, "",
	)
	require.NoError(t, err)

	ledger := services.NewCapacityLedger()

	merchantRepo := new(MockMerchantRepository)
	driverRepo := new(MockDriverRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockDispatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MerchantRepository").Return(merchantRepo).Once(),
		merchantRepo.On("Get", mock.Anything, merchantID).Return(testMerchant(t, merchantID), nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetAllWithShiftOn", mock.Anything, "2025-01-15").
			Return([]*driver.Driver{}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, ledger)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Empty(t, ledger.Snapshot())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownMerchant(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), merchantID, testPickup, testPickup.Add(time.Hour), 25, "",
	)
	require.NoError(t, err)

	merchantRepo := new(MockMerchantRepository)
	uow := new(MockDispatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MerchantRepository").Return(merchantRepo).Once(),
		merchantRepo.On("Get", mock.Anything, merchantID).
			Return(nil, errs.NewObjectNotFoundError("merchantID", merchantID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, services.NewCapacityLedger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitFailureReleasesReservation(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), merchantID, testPickup, testPickup.Add(time.Hour), 25, "",
	)
	require.NoError(t, err)

	d := testWorkingDriver(t, 3, 100)
	ledger := services.NewCapacityLedger()

	merchantRepo := new(MockMerchantRepository)
	driverRepo := new(MockDriverRepository)
	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockDispatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MerchantRepository").Return(merchantRepo).Once(),
		merchantRepo.On("Get", mock.Anything, merchantID).Return(testMerchant(t, merchantID), nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetAllWithShiftOn", mock.Anything, "2025-01-15").
			Return([]*driver.Driver{d}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Upsert", mock.Anything, d.ID(), "2025-01-15", 1, 25.0).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("connection reset")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, ledger)
	require.Error(t, h.Handle(ctx, cmd))

	assert.Empty(t, ledger.Snapshot(), "failed commit must free the reservation")
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	var cmd commands.CreateOrderCommand
	h := commands.NewCreateOrderCommandHandler(new(MockDispatchUoWFactory), services.NewCapacityLedger())
	require.Error(t, h.Handle(t.Context(), cmd))
}
