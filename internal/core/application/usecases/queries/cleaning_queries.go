package queries

import (
	"context"
	"errors"
	"strings"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/cleaning"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrGetCleaningQueryIsNotConstructed = errors.New(
		"GetCleaningQuery must be created via NewGetCleaningQuery constructor",
	)
	ErrListCleaningsQueryIsNotConstructed = errors.New(
		"ListCleaningsQuery must be created via NewListCleaningsQuery constructor",
	)
)

type GetCleaningQuery struct {
	cleaningID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCleaningQuery(cleaningID kernel.UUID) (GetCleaningQuery, error) {
	if err := cleaningID.Validate(); err != nil {
		return GetCleaningQuery{}, err
	}
	return GetCleaningQuery{cleaningID: cleaningID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCleaningQuery) Validate() error {
	return q.guard.Validate(ErrGetCleaningQueryIsNotConstructed)
}

func (q GetCleaningQuery) CleaningID() kernel.UUID {
	return q.cleaningID
}

// ListCleaningsQuery lists cleaning orders, newest first, optionally restricted
// to one status.
type ListCleaningsQuery struct {
	status *cleaning.Status

	guard guard.ConstructorGuard
}

func NewListCleaningsQuery(status string) (ListCleaningsQuery, error) {
	q := ListCleaningsQuery{guard: guard.NewConstructorGuard()}
	if strings.TrimSpace(status) == "" {
		return q, nil
	}

	s, err := cleaning.ParseStatus(status)
	if err != nil {
		return ListCleaningsQuery{}, err
	}
	q.status = &s
	return q, nil
}

func (q ListCleaningsQuery) Validate() error {
	return q.guard.Validate(ErrListCleaningsQueryIsNotConstructed)
}

func (q ListCleaningsQuery) Status() *cleaning.Status {
	return q.status
}

type CleaningQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewCleaningQueryHandler(uowFactory ReadUoWFactory) CleaningQueryHandler {
	return CleaningQueryHandler{uowFactory: uowFactory}
}

func (h CleaningQueryHandler) Get(ctx context.Context, query GetCleaningQuery) (dto.CleaningView, error) {
	if err := query.Validate(); err != nil {
		return dto.CleaningView{}, err
	}

	var view dto.CleaningView
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		c, err := uow.CleaningRepository().Get(ctx, query.CleaningID())
		if err != nil {
			return err
		}
		view = dto.NewCleaningView(c)
		return nil
	})
	return view, err
}

func (h CleaningQueryHandler) List(ctx context.Context, query ListCleaningsQuery) ([]dto.CleaningView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]dto.CleaningView, 0)
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		cleanings, err := uow.CleaningRepository().List(ctx, query.Status())
		if err != nil {
			return err
		}
		views = dto.NewCleaningViews(cleanings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
