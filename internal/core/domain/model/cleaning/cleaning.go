package cleaning

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var ErrCleaningIsNotConstructed = errors.New("Cleaning must be created via NewCleaning or RestoreCleaning")

// Cleaning is one cleaning order.
type Cleaning struct {
	id              kernel.UUID
	description     string
	status          Status
	createdAt       time.Time
	startedAt       *time.Time
	finishedAt      *time.Time
	durationSeconds *int

	isConstructed bool
}

// State is the persisted form of a cleaning order.
type State struct {
	ID              kernel.UUID
	Description     string
	Status          Status
	CreatedAt       time.Time
	StartedAt       *time.Time
	FinishedAt      *time.Time
	DurationSeconds *int
}

func NewCleaning(id kernel.UUID, description string, now time.Time) (*Cleaning, error) {
	c := &Cleaning{
		status:        Created,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(c.setID(id), c.setDescription(description)); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCleaning rebuilds a cleaning order, checking that the timestamps match
// the status.
func RestoreCleaning(s State) (*Cleaning, error) {
	c := &Cleaning{
		createdAt:       s.CreatedAt,
		startedAt:       s.StartedAt,
		finishedAt:      s.FinishedAt,
		durationSeconds: s.DurationSeconds,
		isConstructed:   true,
	}

	if err := errors.Join(
		c.setID(s.ID),
		c.setDescription(s.Description),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	c.status = s.Status

	if (s.Status == Created) != (s.StartedAt == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("cleaning", errors.New("start time must be set once started"))
	}
	if (s.Status == Finished) != (s.FinishedAt != nil && s.DurationSeconds != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("cleaning", errors.New("end time and duration must be set once finished"))
	}
	return c, nil
}

func (c *Cleaning) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCleaningIsNotConstructed
	}
	return nil
}

func (c *Cleaning) ID() kernel.UUID {
	return c.id
}

func (c *Cleaning) Description() string {
	return c.description
}

func (c *Cleaning) Status() Status {
	return c.status
}

func (c *Cleaning) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Cleaning) StartedAt() *time.Time {
	return c.startedAt
}

func (c *Cleaning) FinishedAt() *time.Time {
	return c.finishedAt
}

// DurationSeconds is nil until the cleaning finishes.
func (c *Cleaning) DurationSeconds() *int {
	return c.durationSeconds
}

func (c *Cleaning) State() State {
	return State{
		ID:              c.id,
		Description:     c.description,
		Status:          c.status,
		CreatedAt:       c.createdAt,
		StartedAt:       c.startedAt,
		FinishedAt:      c.finishedAt,
		DurationSeconds: c.durationSeconds,
	}
}

func (c *Cleaning) Start(now time.Time) error {
	newStatus, err := c.status.Start()
	if err != nil {
		return err
	}
	c.startedAt = &now
	c.status = newStatus
	return nil
}

// Finish stores the end time and the whole seconds elapsed since the start.
func (c *Cleaning) Finish(now time.Time) error {
	newStatus, err := c.status.Finish()
	if err != nil {
		return err
	}
	if now.Before(*c.startedAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"cleaning end time",
			fmt.Errorf("%s is before start %s", now.Format(time.RFC3339), c.startedAt.Format(time.RFC3339)),
		)
	}

	duration := int(now.Sub(*c.startedAt) / time.Second)
	c.finishedAt = &now
	c.durationSeconds = &duration
	c.status = newStatus
	return nil
}

// Describe replaces the description. The status never changes through it.
func (c *Cleaning) Describe(description string) error {
	return c.setDescription(description)
}

func (c *Cleaning) ValidateDelete() error {
	return c.status.ValidateDelete()
}

func (c *Cleaning) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cleaning) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("cleaning description")
	}
	c.description = description
	return nil
}
