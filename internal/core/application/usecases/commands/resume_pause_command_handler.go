package commands

import (
	"context"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// ResumePauseCommandHandler closes a pause by its id. The accounting and the
// single Started order rule are the same as for StartOrderCommandHandler.
type ResumePauseCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	notifier   ports.Notifier
}

func NewResumePauseCommandHandler(uowFactory UoWFactory, clock ports.Clock, notifier ports.Notifier) ResumePauseCommandHandler {
	return ResumePauseCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h *ResumePauseCommandHandler) Handle(ctx context.Context, cmd ResumePauseCommand) (dto.OrderView, error) {
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

	p, err := pauseRepo.Get(ctx, cmd.PauseID())
	if err != nil {
		return dto.OrderView{}, err
	}
	if !p.IsOpen() {
		return dto.OrderView{}, errs.NewInvalidStateError("resume pause", "closed")
	}

	if err = ensureLineIsFree(ctx, orderRepo, p.OrderID()); err != nil {
		return dto.OrderView{}, err
	}

	o, err := orderRepo.Get(ctx, p.OrderID())
	if err != nil {
		return dto.OrderView{}, err
	}

	if err = o.Resume(p, h.clock.Now()); err != nil {
		return dto.OrderView{}, err
	}

	if err = pauseRepo.Update(ctx, p); err != nil {
		return dto.OrderView{}, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return dto.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return dto.OrderView{}, err
	}

	view := dto.NewOrderView(o, nil)
	h.notifier.Emit(ports.EventPauseUpdated, dto.NewPauseView(p))
	h.notifier.Emit(ports.EventOrderUpdated, view)
	return view, nil
}
