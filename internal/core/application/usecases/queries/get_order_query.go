package queries

import (
	"context"
	"errors"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its full pause history.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetOrderQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetOrderQueryHandler(uowFactory ReadUoWFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (dto.OrderView, error) {
	if err := query.Validate(); err != nil {
		return dto.OrderView{}, err
	}

	var view dto.OrderView
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		o, err := uow.OrderRepository().Get(ctx, query.OrderID())
		if err != nil {
			return err
		}
		pauses, err := uow.PauseRepository().ListByOrder(ctx, o.ID())
		if err != nil {
			return err
		}
		view = dto.NewOrderView(o, pauses)
		return nil
	})
	return view, err
}
