package commands

import (
	"context"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/ports"
)

type SimulateElapsedTimeCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewSimulateElapsedTimeCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) SimulateElapsedTimeCommandHandler {
	return SimulateElapsedTimeCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle shifts the start time of a Started order.
func (h *SimulateElapsedTimeCommandHandler) Handle(ctx context.Context, cmd SimulateElapsedTimeCommand) (dto.OrderView, error) {
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

	if err = o.ShiftStart(cmd.Minutes()); err != nil {
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
