package commands

import (
	"context"

	"dispatch/internal/core/domain/model/merchant"
)

// CreateMerchantCommandHandler handles merchant registration.
type CreateMerchantCommandHandler struct {
	uowFactory MerchantUoWFactory
}

// NewCreateMerchantCommandHandler creates a handler for merchant registration.
func NewCreateMerchantCommandHandler(uowFactory MerchantUoWFactory) CreateMerchantCommandHandler {
	return CreateMerchantCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle registers a new merchant.
func (h CreateMerchantCommandHandler) Handle(ctx context.Context, cmd CreateMerchantCommand) error {
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

	newMerchant, err := merchant.NewMerchant(cmd.MerchantID(), cmd.Name(), cmd.Email())
	if err != nil {
		return err
	}

	if err = uow.MerchantRepository().Add(ctx, newMerchant); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
