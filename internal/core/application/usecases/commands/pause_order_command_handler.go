package commands

import (
	"context"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/pause"
	"production/internal/core/ports"
)

// PauseOrderResult reports the paused order, the opened pause and whether the
// pause will be counted as downtime.
type PauseOrderResult struct {
	Order                dto.OrderView `json:"order"`
	Pause                dto.PauseView `json:"pause"`
	CountsTowardDowntime bool          `json:"countsTowardDowntime"`
}

// PauseOrderCommandHandler opens a pause on a Started order.
type PauseOrderCommandHandler struct {
	uowFactory UoWFactory
	catalog    *pause.Catalog
	clock      ports.Clock
	notifier   ports.Notifier
}

func NewPauseOrderCommandHandler(
	uowFactory UoWFactory,
	catalog *pause.Catalog,
	clock ports.Clock,
	notifier ports.Notifier,
) PauseOrderCommandHandler {
	return PauseOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h *PauseOrderCommandHandler) Handle(ctx context.Context, cmd PauseOrderCommand) (PauseOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PauseOrderResult{}, err
	}

	pauseType, counts, err := h.catalog.Parse(cmd.PauseType())
	if err != nil {
		return PauseOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PauseOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return PauseOrderResult{}, err
	}

	p, err := o.Pause(kernel.NewUUID(), pauseType, counts, cmd.Comment(), h.clock.Now())
	if err != nil {
		return PauseOrderResult{}, err
	}

	if err = uow.PauseRepository().Add(ctx, p); err != nil {
		return PauseOrderResult{}, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return PauseOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PauseOrderResult{}, err
	}

	result := PauseOrderResult{
		Order:                dto.NewOrderView(o, nil),
		Pause:                dto.NewPauseView(p),
		CountsTowardDowntime: p.CountsAsDowntime(),
	}
	h.notifier.Emit(ports.EventOrderUpdated, result.Order)
	return result, nil
}
