package queries

import (
	"context"
	"errors"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrGetOrderMetricsQueryIsNotConstructed = errors.New(
	"GetOrderMetricsQuery must be created via NewGetOrderMetricsQuery constructor",
)

// GetOrderMetricsQuery returns the sealed OEE figures of a finished order.
type GetOrderMetricsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderMetricsQuery(orderID kernel.UUID) (GetOrderMetricsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderMetricsQuery{}, err
	}
	return GetOrderMetricsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderMetricsQueryIsNotConstructed)
}

func (q GetOrderMetricsQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetOrderMetricsQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetOrderMetricsQueryHandler(uowFactory ReadUoWFactory) GetOrderMetricsQueryHandler {
	return GetOrderMetricsQueryHandler{uowFactory: uowFactory}
}

// Handle fails with an invalid state error while the order is not finished; the
// live preview is served by GetLiveMetricsQueryHandler.
func (h GetOrderMetricsQueryHandler) Handle(ctx context.Context, query GetOrderMetricsQuery) (dto.MetricsView, error) {
	if err := query.Validate(); err != nil {
		return dto.MetricsView{}, err
	}

	var view dto.MetricsView
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		o, err := uow.OrderRepository().Get(ctx, query.OrderID())
		if err != nil {
			return err
		}
		snapshot := o.Metrics()
		if snapshot == nil {
			return errs.NewInvalidStateError("read final metrics", o.Status().String())
		}
		view = dto.MetricsView{
			OrderID:  o.ID().String(),
			Code:     o.Code(),
			Status:   o.Status().String(),
			Snapshot: *snapshot,
		}
		return nil
	})
	return view, err
}
