package commands

import (
	"context"
	"log/slog"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pause"
	"production/internal/core/ports"
)

// FinishOrderCommandHandler finalizes an order: it closes any open pause, lets the
// calculator derive the metrics from the whole pause history and writes the
// sealed order in the same transaction.
//
// Example:
//
//	engine, _ := services.NewMetricsEngine(rate)
//	handler := NewFinishOrderCommandHandler(uowFactory, engine, clock, notifier, logger)
//	cmd, _ := NewFinishOrderCommand(orderID, order.ClosingInputs{GoodUnits: &good})
//	view, err := handler.Handle(ctx, cmd)
type FinishOrderCommandHandler struct {
	uowFactory UoWFactory
	calculator order.Calculator
	clock      ports.Clock
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewFinishOrderCommandHandler(
	uowFactory UoWFactory,
	calculator order.Calculator,
	clock ports.Clock,
	notifier ports.Notifier,
	logger *slog.Logger,
) FinishOrderCommandHandler {
	return FinishOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		clock:      clock,
		notifier:   notifier,
		logger:     logger.With("component", "FinishOrderCommandHandler"),
	}
}

func (h *FinishOrderCommandHandler) Handle(ctx context.Context, cmd FinishOrderCommand) (dto.OrderView, error) {
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

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return dto.OrderView{}, err
	}

	pauses, err := pauseRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return dto.OrderView{}, err
	}
	ledger := pause.NewLedger(pauses)
	open := ledger.Open()

	if err = o.Finish(ledger, cmd.Closing(), h.calculator, h.clock.Now()); err != nil {
		return dto.OrderView{}, err
	}

	if open != nil && !open.IsOpen() {
		if err = pauseRepo.Update(ctx, open); err != nil {
			return dto.OrderView{}, err
		}
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return dto.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return dto.OrderView{}, err
	}

	if snapshot := o.Metrics(); snapshot != nil && snapshot.HasNegativeActiveTime() {
		h.logger.WarnContext(ctx, "counted pauses exceed elapsed time",
			"orderID", o.ID().String(),
			"totalMinutes", snapshot.TotalMinutes,
			"pausedMinutes", snapshot.PausedMinutes,
			"activeMinutes", snapshot.ActiveMinutes,
		)
	}

	view := dto.NewOrderView(o, pauses)
	h.notifier.Emit(ports.EventOrderUpdated, view)
	return view, nil
}
