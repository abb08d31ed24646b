package commands

import (
	"context"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/pause"
	"production/internal/core/ports"
)

// UpdatePauseCommandHandler edits a pause record. Changing the type also changes
// whether the pause counts as downtime, so it is refused once the pause is closed
// and its duration may already be part of the paused minutes.
type UpdatePauseCommandHandler struct {
	uowFactory UoWFactory
	catalog    *pause.Catalog
	notifier   ports.Notifier
}

func NewUpdatePauseCommandHandler(uowFactory UoWFactory, catalog *pause.Catalog, notifier ports.Notifier) UpdatePauseCommandHandler {
	return UpdatePauseCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		notifier:   notifier,
	}
}

func (h *UpdatePauseCommandHandler) Handle(ctx context.Context, cmd UpdatePauseCommand) (dto.PauseView, error) {
	if err := cmd.Validate(); err != nil {
		return dto.PauseView{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return dto.PauseView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pauseRepo := uow.PauseRepository()

	p, err := pauseRepo.Get(ctx, cmd.PauseID())
	if err != nil {
		return dto.PauseView{}, err
	}

	if raw := cmd.PauseType(); raw != nil {
		pauseType, counts, parseErr := h.catalog.Parse(*raw)
		if parseErr != nil {
			return dto.PauseView{}, parseErr
		}
		if err = p.ChangeType(pauseType, counts); err != nil {
			return dto.PauseView{}, err
		}
	}
	if comment := cmd.Comment(); comment != nil {
		p.UpdateComment(*comment)
	}

	if err = pauseRepo.Update(ctx, p); err != nil {
		return dto.PauseView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return dto.PauseView{}, err
	}

	view := dto.NewPauseView(p)
	h.notifier.Emit(ports.EventPauseUpdated, view)
	return view, nil
}
