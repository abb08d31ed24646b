package queries

import (
	"context"
	"errors"
	"strings"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders, newest first, optionally restricted to one status.
type ListOrdersQuery struct {
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery parses the status filter. An empty string lists every order.
func NewListOrdersQuery(status string) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}
	if strings.TrimSpace(status) == "" {
		return q, nil
	}

	s, err := order.ParseStatus(status)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	q.status = &s
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the filter, nil for all orders.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

type ListOrdersQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewListOrdersQueryHandler(uowFactory ReadUoWFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{uowFactory: uowFactory}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]dto.OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]dto.OrderView, 0)
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		orders, err := uow.OrderRepository().List(ctx, query.Status())
		if err != nil {
			return err
		}
		views = dto.NewOrderViews(orders)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
