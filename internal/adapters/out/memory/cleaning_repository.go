package memory

import (
	"context"
	"sort"

	"production/internal/core/domain/model/cleaning"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

type CleaningRepository struct {
	uow *UnitOfWork
}

func (r *CleaningRepository) Add(_ context.Context, c *cleaning.Cleaning) error {
	t, err := r.uow.tables()
	if err != nil {
		return err
	}
	if err = c.Validate(); err != nil {
		return err
	}

	if _, exists := t.cleanings[c.ID()]; exists {
		return errs.NewConflictError("cleaning", "id "+c.ID().String()+" already exists")
	}
	t.cleanings[c.ID()] = c.State()
	return nil
}

func (r *CleaningRepository) Update(_ context.Context, c *cleaning.Cleaning) error {
	t, err := r.uow.tables()
	if err != nil {
		return err
	}
	if err = c.Validate(); err != nil {
		return err
	}

	if _, exists := t.cleanings[c.ID()]; !exists {
		return errs.NewObjectNotFoundError("cleaning", c.ID().String())
	}
	t.cleanings[c.ID()] = c.State()
	return nil
}

func (r *CleaningRepository) Delete(_ context.Context, id kernel.UUID) error {
	t, err := r.uow.tables()
	if err != nil {
		return err
	}

	if _, exists := t.cleanings[id]; !exists {
		return errs.NewObjectNotFoundError("cleaning", id.String())
	}
	delete(t.cleanings, id)
	return nil
}

func (r *CleaningRepository) Get(_ context.Context, id kernel.UUID) (*cleaning.Cleaning, error) {
	t, err := r.uow.tables()
	if err != nil {
		return nil, err
	}

	state, exists := t.cleanings[id]
	if !exists {
		return nil, errs.NewObjectNotFoundError("cleaning", id.String())
	}
	return cleaning.RestoreCleaning(state)
}

func (r *CleaningRepository) List(_ context.Context, status *cleaning.Status) ([]*cleaning.Cleaning, error) {
	t, err := r.uow.tables()
	if err != nil {
		return nil, err
	}

	states := make([]cleaning.State, 0, len(t.cleanings))
	for _, s := range t.cleanings {
		if status != nil && s.Status != *status {
			continue
		}
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		if !states[i].CreatedAt.Equal(states[j].CreatedAt) {
			return states[i].CreatedAt.After(states[j].CreatedAt)
		}
		return states[i].ID.String() < states[j].ID.String()
	})

	cleanings := make([]*cleaning.Cleaning, 0, len(states))
	for _, s := range states {
		c, restoreErr := cleaning.RestoreCleaning(s)
		if restoreErr != nil {
			return nil, restoreErr
		}
		cleanings = append(cleanings, c)
	}
	return cleanings, nil
}
