package queries

import (
	"context"
	"errors"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pause"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrGetLiveMetricsQueryIsNotConstructed = errors.New(
	"GetLiveMetricsQuery must be created via NewGetLiveMetricsQuery constructor",
)

// GetLiveMetricsQuery asks for the provisional metrics of running orders. With an
// order id only that order is computed; otherwise every Started or Paused order is.
type GetLiveMetricsQuery struct {
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetLiveMetricsQuery(orderID *kernel.UUID) (GetLiveMetricsQuery, error) {
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return GetLiveMetricsQuery{}, err
		}
	}
	return GetLiveMetricsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLiveMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetLiveMetricsQueryIsNotConstructed)
}

func (q GetLiveMetricsQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// GetLiveMetricsQueryHandler computes snapshots at the current time without
// storing them. An open pause is counted up to now.
type GetLiveMetricsQueryHandler struct {
	uowFactory ReadUoWFactory
	calculator order.Calculator
	clock      ports.Clock
}

func NewGetLiveMetricsQueryHandler(
	uowFactory ReadUoWFactory,
	calculator order.Calculator,
	clock ports.Clock,
) GetLiveMetricsQueryHandler {
	return GetLiveMetricsQueryHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		clock:      clock,
	}
}

func (h GetLiveMetricsQueryHandler) Handle(ctx context.Context, query GetLiveMetricsQuery) ([]dto.LiveMetricsView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	views := make([]dto.LiveMetricsView, 0)
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		orders, err := h.activeOrders(ctx, uow, query.OrderID())
		if err != nil {
			return err
		}

		for _, o := range orders {
			pauses, listErr := uow.PauseRepository().ListByOrder(ctx, o.ID())
			if listErr != nil {
				return listErr
			}
			snapshot, computeErr := h.calculator.Compute(o, pause.NewLedger(pauses), order.ClosingInputs{}, now)
			if computeErr != nil {
				return computeErr
			}
			views = append(views, dto.LiveMetricsView{
				OrderID:     o.ID().String(),
				Code:        o.Code(),
				Status:      o.Status().String(),
				GeneratedAt: now,
				Snapshot:    snapshot,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (h GetLiveMetricsQueryHandler) activeOrders(ctx context.Context, uow ReadUoW, orderID *kernel.UUID) ([]*order.Order, error) {
	repo := uow.OrderRepository()

	if orderID != nil {
		o, err := repo.Get(ctx, *orderID)
		if err != nil {
			return nil, err
		}
		if !o.Status().IsActive() {
			return nil, errs.NewInvalidStateError("compute live metrics", o.Status().String())
		}
		return []*order.Order{o}, nil
	}

	var orders []*order.Order
	for _, s := range []order.Status{order.Started, order.Paused} {
		batch, err := repo.List(ctx, &s)
		if err != nil {
			return nil, err
		}
		orders = append(orders, batch...)
	}
	return orders, nil
}
