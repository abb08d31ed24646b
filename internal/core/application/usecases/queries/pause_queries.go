package queries

import (
	"context"
	"errors"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/pause"
	"production/internal/pkg/guard"
)

var (
	ErrListPausesQueryIsNotConstructed = errors.New(
		"ListPausesQuery must be created via NewListPausesQuery constructor",
	)
	ErrGetPauseQueryIsNotConstructed = errors.New(
		"GetPauseQuery must be created via NewGetPauseQuery constructor",
	)
	ErrGetPauseStatisticsQueryIsNotConstructed = errors.New(
		"GetPauseStatisticsQuery must be created via NewGetPauseStatisticsQuery constructor",
	)
)

// ListPausesQuery lists the pauses of one order in start order.
type ListPausesQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListPausesQuery(orderID kernel.UUID) (ListPausesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListPausesQuery{}, err
	}
	return ListPausesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPausesQuery) Validate() error {
	return q.guard.Validate(ErrListPausesQueryIsNotConstructed)
}

func (q ListPausesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetPauseQuery retrieves a single pause record.
type GetPauseQuery struct {
	pauseID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPauseQuery(pauseID kernel.UUID) (GetPauseQuery, error) {
	if err := pauseID.Validate(); err != nil {
		return GetPauseQuery{}, err
	}
	return GetPauseQuery{pauseID: pauseID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPauseQuery) Validate() error {
	return q.guard.Validate(ErrGetPauseQueryIsNotConstructed)
}

func (q GetPauseQuery) PauseID() kernel.UUID {
	return q.pauseID
}

// GetPauseStatisticsQuery summarizes the pauses of one order per type.
type GetPauseStatisticsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPauseStatisticsQuery(orderID kernel.UUID) (GetPauseStatisticsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPauseStatisticsQuery{}, err
	}
	return GetPauseStatisticsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPauseStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetPauseStatisticsQueryIsNotConstructed)
}

func (q GetPauseStatisticsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PauseQueryHandler serves the pause read models.
//
// Example:
//
//	handler := NewPauseQueryHandler(uowFactory, pause.DefaultCatalog())
//	query, _ := NewGetPauseStatisticsQuery(orderID)
//	stats, err := handler.Statistics(ctx, query)
//	for _, s := range stats.ByType {
//	    fmt.Printf("%s: %d min (%d counted)\n", s.Type, s.TotalMinutes, s.CountedMinutes)
//	}
type PauseQueryHandler struct {
	uowFactory ReadUoWFactory
	catalog    *pause.Catalog
}

func NewPauseQueryHandler(uowFactory ReadUoWFactory, catalog *pause.Catalog) PauseQueryHandler {
	return PauseQueryHandler{uowFactory: uowFactory, catalog: catalog}
}

// List returns the pauses of an existing order. An unknown order is not found.
func (h PauseQueryHandler) List(ctx context.Context, query ListPausesQuery) ([]dto.PauseView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var views []dto.PauseView
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		pauses, err := orderPauses(ctx, uow, query.OrderID())
		if err != nil {
			return err
		}
		views = dto.NewPauseViews(pauses)
		return nil
	})
	return views, err
}

func (h PauseQueryHandler) Get(ctx context.Context, query GetPauseQuery) (dto.PauseView, error) {
	if err := query.Validate(); err != nil {
		return dto.PauseView{}, err
	}

	var view dto.PauseView
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		p, err := uow.PauseRepository().Get(ctx, query.PauseID())
		if err != nil {
			return err
		}
		view = dto.NewPauseView(p)
		return nil
	})
	return view, err
}

func (h PauseQueryHandler) Statistics(ctx context.Context, query GetPauseStatisticsQuery) (dto.PauseStatisticsView, error) {
	if err := query.Validate(); err != nil {
		return dto.PauseStatisticsView{}, err
	}

	var view dto.PauseStatisticsView
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		pauses, err := orderPauses(ctx, uow, query.OrderID())
		if err != nil {
			return err
		}
		view = dto.NewPauseStatisticsView(query.OrderID().String(), pause.NewLedger(pauses))
		return nil
	})
	return view, err
}

// Types lists the configured pause catalog.
func (h PauseQueryHandler) Types() []pause.CatalogEntry {
	return h.catalog.Entries()
}

func orderPauses(ctx context.Context, uow ReadUoW, orderID kernel.UUID) ([]*pause.Pause, error) {
	if _, err := uow.OrderRepository().Get(ctx, orderID); err != nil {
		return nil, err
	}
	return uow.PauseRepository().ListByOrder(ctx, orderID)
}
