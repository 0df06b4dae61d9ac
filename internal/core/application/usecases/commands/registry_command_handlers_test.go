package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateMerchantCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateMerchantCommand(kernel.NewUUID(), "Corner Bakery", "orders@cornerbakery.test")
	require.NoError(t, err)

	merchantRepo := new(MockMerchantRepository)
	uow := new(MockMerchantUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MerchantRepository").Return(merchantRepo).Once(),
		merchantRepo.On("Add", mock.Anything, mock.AnythingOfType("*merchant.Merchant")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMerchantUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateMerchantCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
	merchantRepo.AssertExpectations(t)
}

func TestNewCreateMerchantCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateMerchantCommand(kernel.NewUUID(), "", "a@b.test")
	require.ErrorIs(t, err, commands.ErrMerchantNameIsRequired)

	_, err = commands.NewCreateMerchantCommand(kernel.NewUUID(), "Corner Bakery", "")
	require.ErrorIs(t, err, commands.ErrMerchantEmailIsRequired)
}

func TestCreateDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateDriverCommand(kernel.NewUUID(), "Sam Porter")
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockDriverUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Add", mock.Anything, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDriverCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
}

func TestAttachVehicleCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	d, err := driver.NewDriver(kernel.NewUUID(), "Sam Porter")
	require.NoError(t, err)

	cmd, err := commands.NewAttachVehicleCommand(kernel.NewUUID(), d.ID(), 3, 100)
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockDriverUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		driverRepo.On("Update", mock.Anything, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttachVehicleCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, d.Vehicle())
	assert.Equal(t, 3, d.Vehicle().MaxOrders())
	uow.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
}

func TestAttachVehicleCommandHandler_Handle_SecondVehicleRejected(t *testing.T) {
	ctx := t.Context()
	d := testWorkingDriver(t, 3, 100)

	cmd, err := commands.NewAttachVehicleCommand(kernel.NewUUID(), d.ID(), 5, 200)
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockDriverUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttachVehicleCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), driver.ErrVehicleAlreadyAttached)
}

func TestAddShiftCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	d, err := driver.NewDriver(kernel.NewUUID(), "Sam Porter")
	require.NoError(t, err)

	cmd, err := commands.NewAddShiftCommand(
		kernel.NewUUID(), d.ID(), testShiftStart, testShiftStart.Add(8*time.Hour),
	)
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockDriverUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		driverRepo.On("Update", mock.Anything, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddShiftCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Len(t, d.Shifts(), 1)
	uow.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
}

func TestAddShiftCommandHandler_Handle_DuplicateDayRejected(t *testing.T) {
	ctx := t.Context()
	d := testWorkingDriver(t, 3, 100) // already has a shift on 2025-01-15

	cmd, err := commands.NewAddShiftCommand(
		kernel.NewUUID(), d.ID(), testShiftStart.Add(time.Hour), testShiftStart.Add(6*time.Hour),
	)
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockDriverUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddShiftCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), driver.ErrShiftAlreadyExistsForDay)
}

func TestAddShiftCommandHandler_Handle_InvalidInterval(t *testing.T) {
	ctx := t.Context()
	d, err := driver.NewDriver(kernel.NewUUID(), "Sam Porter")
	require.NoError(t, err)

	cmd, err := commands.NewAddShiftCommand(
		kernel.NewUUID(), d.ID(), testShiftStart, testShiftStart.Add(-time.Hour),
	)
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockDriverUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddShiftCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), driver.ErrShiftEndsBeforeStart)
}
