package commands

import (
	"context"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/ports"
)

type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle deletes a Created order. Any other status is an invalid state.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.Status().ValidateDelete(); err != nil {
		return err
	}

	if err = uow.PauseRepository().DeleteByOrder(ctx, o.ID()); err != nil {
		return err
	}
	if err = uow.OrderRepository().Delete(ctx, o.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Emit(ports.EventOrderDeleted, dto.DeletedOrderView{ID: o.ID().String()})
	return nil
}
