package commands

import (
	"context"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pause"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// StartOrderCommandHandler moves an order to Started. Only one order may be Started
// at a time; the check and the status write share one transaction.
//
// Example:
//
//	handler := NewStartOrderCommandHandler(uowFactory, clock, notifier)
//	cmd, _ := NewStartOrderCommand(orderID)
//	view, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // another order is running on the line
//	}
type StartOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	notifier   ports.Notifier
}

func NewStartOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock, notifier ports.Notifier) StartOrderCommandHandler {
	return StartOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle starts or resumes the order. Resuming closes the open pause and adds its
// duration to the paused minutes when it counts as downtime.
func (h *StartOrderCommandHandler) Handle(ctx context.Context, cmd StartOrderCommand) (dto.OrderView, error) {
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

	orderRepo := uow.OrderRepository()
	pauseRepo := uow.PauseRepository()

	if err := ensureLineIsFree(ctx, orderRepo, cmd.OrderID()); err != nil {
		return dto.OrderView{}, err
	}

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return dto.OrderView{}, err
	}

	var openPause *pause.Pause
	if o.Status() == order.Paused {
		openPause, err = pauseRepo.GetOpenByOrder(ctx, o.ID())
		if err != nil {
			return dto.OrderView{}, err
		}
	}

	if err = o.Start(openPause, h.clock.Now()); err != nil {
		return dto.OrderView{}, err
	}

	if openPause != nil {
		if err = pauseRepo.Update(ctx, openPause); err != nil {
			return dto.OrderView{}, err
		}
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return dto.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return dto.OrderView{}, err
	}

	view := dto.NewOrderView(o, nil)
	h.notifier.Emit(ports.EventOrderUpdated, view)
	return view, nil
}

// ensureLineIsFree fails with a conflict when an order other than orderID is Started.
func ensureLineIsFree(ctx context.Context, repo ports.OrderRepository, orderID kernel.UUID) error {
	started, err := repo.GetStarted(ctx)
	if err != nil {
		return err
	}
	if started != nil && !started.ID().IsEqual(orderID) {
		return errs.NewConflictError("order", "order "+started.Code()+" is already started")
	}
	return nil
}
