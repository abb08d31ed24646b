package memory

import (
	"context"
	"sort"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/pause"
	"production/internal/pkg/errs"
)

type PauseRepository struct {
	uow *UnitOfWork
}

func (r *PauseRepository) Add(_ context.Context, p *pause.Pause) error {
	t, err := r.uow.tables()
	if err != nil {
		return err
	}
	if err = p.Validate(); err != nil {
		return err
	}

	if _, exists := t.pauses[p.ID()]; exists {
		return errs.NewConflictError("pause", "id "+p.ID().String()+" already exists")
	}
	if p.IsOpen() {
		for _, row := range t.pauses {
			if row.OrderID.IsEqual(p.OrderID()) && row.EndedAt == nil {
				return errs.NewConflictError("pause", "order "+p.OrderID().String()+" already has an open pause")
			}
		}
	}

	t.pauses[p.ID()] = rowFromPause(p)
	return nil
}

func (r *PauseRepository) Update(_ context.Context, p *pause.Pause) error {
	t, err := r.uow.tables()
	if err != nil {
		return err
	}
	if err = p.Validate(); err != nil {
		return err
	}

	if _, exists := t.pauses[p.ID()]; !exists {
		return errs.NewObjectNotFoundError("pause", p.ID().String())
	}

	t.pauses[p.ID()] = rowFromPause(p)
	return nil
}

func (r *PauseRepository) Get(_ context.Context, id kernel.UUID) (*pause.Pause, error) {
	t, err := r.uow.tables()
	if err != nil {
		return nil, err
	}

	row, exists := t.pauses[id]
	if !exists {
		return nil, errs.NewObjectNotFoundError("pause", id.String())
	}
	return row.toPause()
}

func (r *PauseRepository) GetOpenByOrder(_ context.Context, orderID kernel.UUID) (*pause.Pause, error) {
	t, err := r.uow.tables()
	if err != nil {
		return nil, err
	}

	for _, row := range t.pauses {
		if row.OrderID.IsEqual(orderID) && row.EndedAt == nil {
			return row.toPause()
		}
	}
	return nil, nil
}

func (r *PauseRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*pause.Pause, error) {
	t, err := r.uow.tables()
	if err != nil {
		return nil, err
	}

	rows := make([]pauseRow, 0)
	for _, row := range t.pauses {
		if row.OrderID.IsEqual(orderID) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].StartedAt.Before(rows[j].StartedAt)
	})

	pauses := make([]*pause.Pause, 0, len(rows))
	for _, row := range rows {
		p, restoreErr := row.toPause()
		if restoreErr != nil {
			return nil, restoreErr
		}
		pauses = append(pauses, p)
	}
	return pauses, nil
}

func (r *PauseRepository) DeleteByOrder(_ context.Context, orderID kernel.UUID) error {
	t, err := r.uow.tables()
	if err != nil {
		return err
	}

	for id, row := range t.pauses {
		if row.OrderID.IsEqual(orderID) {
			delete(t.pauses, id)
		}
	}
	return nil
}

func rowFromPause(p *pause.Pause) pauseRow {
	return pauseRow{
		ID:                   p.ID(),
		OrderID:              p.OrderID(),
		Type:                 p.Type(),
		CountsTowardDowntime: p.CountsTowardDowntime(),
		Comment:              p.Comment(),
		StartedAt:            p.StartedAt(),
		EndedAt:              p.EndedAt(),
		DurationMinutes:      p.DurationMinutes(),
	}
}

func (row pauseRow) toPause() (*pause.Pause, error) {
	return pause.Restore(
		row.ID,
		row.OrderID,
		row.Type,
		row.CountsTowardDowntime,
		row.Comment,
		row.StartedAt,
		row.EndedAt,
		row.DurationMinutes,
	)
}
