package commands

import (
	"context"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/cleaning"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
)

// CleaningCommandHandler runs every cleaning order operation. Cleaning orders
// are independent of production orders and share no state with them.
//
// Example:
//
//	handler := NewCleaningCommandHandler(uowFactory, clock, notifier)
//	cmd, _ := NewCleaningCommand(cleaningID)
//	view, err := handler.Start(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidState) {
//	    // the cleaning was already started
//	}
type CleaningCommandHandler struct {
	uowFactory CleaningUoWFactory
	clock      ports.Clock
	notifier   ports.Notifier
}

func NewCleaningCommandHandler(uowFactory CleaningUoWFactory, clock ports.Clock, notifier ports.Notifier) CleaningCommandHandler {
	return CleaningCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h *CleaningCommandHandler) Create(ctx context.Context, cmd CreateCleaningCommand) (dto.CleaningView, error) {
	if err := cmd.Validate(); err != nil {
		return dto.CleaningView{}, err
	}

	c, err := cleaning.NewCleaning(cmd.CleaningID(), cmd.Description(), h.clock.Now())
	if err != nil {
		return dto.CleaningView{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return dto.CleaningView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CleaningRepository().Add(ctx, c); err != nil {
		return dto.CleaningView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return dto.CleaningView{}, err
	}

	view := dto.NewCleaningView(c)
	h.notifier.Emit(ports.EventCleaningCreated, view)
	return view, nil
}

func (h *CleaningCommandHandler) Describe(ctx context.Context, cmd DescribeCleaningCommand) (dto.CleaningView, error) {
	if err := cmd.Validate(); err != nil {
		return dto.CleaningView{}, err
	}
	return h.update(ctx, cmd.CleaningID(), func(c *cleaning.Cleaning) error {
		return c.Describe(cmd.Description())
	})
}

// Start is only allowed from Created.
func (h *CleaningCommandHandler) Start(ctx context.Context, cmd CleaningCommand) (dto.CleaningView, error) {
	if err := cmd.Validate(); err != nil {
		return dto.CleaningView{}, err
	}
	return h.update(ctx, cmd.CleaningID(), func(c *cleaning.Cleaning) error {
		return c.Start(h.clock.Now())
	})
}

// Finish is only allowed from Started and records the duration in whole seconds.
func (h *CleaningCommandHandler) Finish(ctx context.Context, cmd CleaningCommand) (dto.CleaningView, error) {
	if err := cmd.Validate(); err != nil {
		return dto.CleaningView{}, err
	}
	return h.update(ctx, cmd.CleaningID(), func(c *cleaning.Cleaning) error {
		return c.Finish(h.clock.Now())
	})
}

// Delete removes a cleaning order that was never started.
func (h *CleaningCommandHandler) Delete(ctx context.Context, cmd CleaningCommand) error {
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

	repo := uow.CleaningRepository()
	c, err := repo.Get(ctx, cmd.CleaningID())
	if err != nil {
		return err
	}
	if err = c.ValidateDelete(); err != nil {
		return err
	}
	if err = repo.Delete(ctx, c.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Emit(ports.EventCleaningDeleted, dto.DeletedCleaningView{ID: c.ID().String()})
	return nil
}

func (h *CleaningCommandHandler) update(
	ctx context.Context,
	id kernel.UUID,
	apply func(c *cleaning.Cleaning) error,
) (dto.CleaningView, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return dto.CleaningView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CleaningRepository()
	c, err := repo.Get(ctx, id)
	if err != nil {
		return dto.CleaningView{}, err
	}
	if err = apply(c); err != nil {
		return dto.CleaningView{}, err
	}
	if err = repo.Update(ctx, c); err != nil {
		return dto.CleaningView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return dto.CleaningView{}, err
	}

	view := dto.NewCleaningView(c)
	h.notifier.Emit(ports.EventCleaningUpdated, view)
	return view, nil
}
