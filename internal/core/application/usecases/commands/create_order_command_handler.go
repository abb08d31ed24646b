package commands

import (
	"context"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/metrics"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
)

// CreateOrderCommandHandler registers new orders in Created status with their
// estimated production hours.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, rate, clock, notifier)
//	view, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // the order code is taken
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	rate       metrics.ReferenceRate
	clock      ports.Clock
	notifier   ports.Notifier
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	rate metrics.ReferenceRate,
	clock ports.Clock,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		rate:       rate,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle creates and persists the order. A duplicate order code is reported by
// the repository as a conflict.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (dto.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return dto.OrderView{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Params(), h.rate, h.clock.Now())
	if err != nil {
		return dto.OrderView{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return dto.OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return dto.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return dto.OrderView{}, err
	}

	view := dto.NewOrderView(o, nil)
	h.notifier.Emit(ports.EventOrderCreated, view)
	return view, nil
}
