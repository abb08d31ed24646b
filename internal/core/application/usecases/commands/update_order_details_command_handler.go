package commands

import (
	"context"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/metrics"
	"production/internal/core/ports"
)

// UpdateOrderDetailsCommandHandler applies detail edits and recomputes the
// estimated hours with the configured reference rate.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
	rate       metrics.ReferenceRate
	notifier   ports.Notifier
}

func NewUpdateOrderDetailsCommandHandler(
	uowFactory OrderUoWFactory,
	rate metrics.ReferenceRate,
	notifier ports.Notifier,
) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{
		uowFactory: uowFactory,
		rate:       rate,
		notifier:   notifier,
	}
}

func (h *UpdateOrderDetailsCommandHandler) Handle(ctx context.Context, cmd UpdateOrderDetailsCommand) (dto.OrderView, error) {
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

	if err = o.UpdateDetails(cmd.Update(), h.rate); err != nil {
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
