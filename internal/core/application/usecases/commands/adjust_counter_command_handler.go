package commands

import (
	"context"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/ports"
)

// AdjustCounterCommandHandler applies counter changes reported by the line or the
// operator. The order derives boxes or good units and refreshes the weighing
// station figures on every change.
type AdjustCounterCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewAdjustCounterCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) AdjustCounterCommandHandler {
	return AdjustCounterCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h *AdjustCounterCommandHandler) Handle(ctx context.Context, cmd AdjustCounterCommand) (dto.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return dto.OrderView{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return dto.OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return dto.OrderView{}, err
	}

	if err = cmd.apply(o); err != nil {
		return dto.OrderView{}, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return dto.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return dto.OrderView{}, err
	}

	view := dto.NewOrderView(o, nil)
	h.notifier.Emit(ports.EventOrderUpdated, view)
	return view, nil
}
