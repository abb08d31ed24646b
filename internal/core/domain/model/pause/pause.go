package pause

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var ErrPauseIsNotConstructed = errors.New("Pause must be created via Start or Restore")

// Pause is one downtime interval of a production order. It is open while EndedAt is nil.
type Pause struct {
	id                   kernel.UUID
	orderID              kernel.UUID
	pauseType            Type
	countsTowardDowntime bool
	comment              string
	startedAt            time.Time
	endedAt              *time.Time
	durationMinutes      *int

	isConstructed bool
}

// Start opens a new pause at now.
func Start(id, orderID kernel.UUID, pauseType Type, countsTowardDowntime bool, comment string, now time.Time) (*Pause, error) {
	p := &Pause{
		pauseType:            pauseType,
		countsTowardDowntime: countsTowardDowntime,
		comment:              comment,
		isConstructed:        true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setType(pauseType),
		p.setStartedAt(now),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Restore rebuilds a pause from persisted state. endedAt and durationMinutes are
// either both set (closed pause) or both nil (open pause).
func Restore(
	id, orderID kernel.UUID,
	pauseType Type,
	countsTowardDowntime bool,
	comment string,
	startedAt time.Time,
	endedAt *time.Time,
	durationMinutes *int,
) (*Pause, error) {
	p, err := Start(id, orderID, pauseType, countsTowardDowntime, comment, startedAt)
	if err != nil {
		return nil, err
	}

	if (endedAt == nil) != (durationMinutes == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("pause", errors.New("end time and duration must be set together"))
	}
	if durationMinutes != nil && *durationMinutes < 0 {
		return nil, errs.NewValueIsOutOfRangeError("duration", *durationMinutes, 0, "unbounded")
	}

	p.endedAt = endedAt
	p.durationMinutes = durationMinutes
	return p, nil
}

func (p *Pause) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPauseIsNotConstructed
	}
	return nil
}

func (p *Pause) ID() kernel.UUID {
	return p.id
}

func (p *Pause) OrderID() kernel.UUID {
	return p.orderID
}

func (p *Pause) Type() Type {
	return p.pauseType
}

// CountsTowardDowntime returns the flag stored when the pause was started.
func (p *Pause) CountsTowardDowntime() bool {
	return p.countsTowardDowntime
}

// CountsAsDowntime reports whether the pause is added to the counted paused time:
// the stored flag must be set and the type must not be an excluded one.
func (p *Pause) CountsAsDowntime() bool {
	return p.countsTowardDowntime && !p.pauseType.IsExcludedFromDowntime()
}

func (p *Pause) Comment() string {
	return p.comment
}

func (p *Pause) StartedAt() time.Time {
	return p.startedAt
}

// EndedAt is nil while the pause is open.
func (p *Pause) EndedAt() *time.Time {
	return p.endedAt
}

// DurationMinutes is nil while the pause is open.
func (p *Pause) DurationMinutes() *int {
	return p.durationMinutes
}

func (p *Pause) IsOpen() bool {
	return p.endedAt == nil
}

// DurationAt returns the stored duration of a closed pause, or the whole minutes
// elapsed until now for an open one.
func (p *Pause) DurationAt(now time.Time) int {
	if p.durationMinutes != nil {
		return *p.durationMinutes
	}
	return max(0, kernel.WholeMinutes(p.startedAt, now))
}

// End closes the pause at now and returns its duration in whole minutes.
func (p *Pause) End(now time.Time) (int, error) {
	if !p.IsOpen() {
		return 0, errs.NewInvalidStateError("end pause", "closed")
	}
	if now.Before(p.startedAt) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"pause end time",
			fmt.Errorf("%s is before start %s", now.Format(time.RFC3339), p.startedAt.Format(time.RFC3339)),
		)
	}

	duration := kernel.WholeMinutes(p.startedAt, now)
	p.endedAt = &now
	p.durationMinutes = &duration
	return duration, nil
}

// ChangeType switches the category of an open pause and takes the downtime flag of
// the new type.
func (p *Pause) ChangeType(pauseType Type, countsTowardDowntime bool) error {
	if !p.IsOpen() {
		return errs.NewInvalidStateError("change pause type", "closed")
	}
	if err := p.setType(pauseType); err != nil {
		return err
	}
	p.countsTowardDowntime = countsTowardDowntime
	return nil
}

func (p *Pause) UpdateComment(comment string) {
	p.comment = comment
}

func (p *Pause) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Pause) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	p.orderID = orderID
	return nil
}

func (p *Pause) setType(pauseType Type) error {
	if pauseType == "" {
		return errs.NewValueIsRequiredError("pause type")
	}
	p.pauseType = pauseType
	return nil
}

func (p *Pause) setStartedAt(startedAt time.Time) error {
	if startedAt.IsZero() {
		return errs.NewValueIsRequiredError("pause start time")
	}
	p.startedAt = startedAt
	return nil
}
