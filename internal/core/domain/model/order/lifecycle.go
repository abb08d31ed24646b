package order

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/metrics"
	"production/internal/core/domain/model/pause"
	"production/internal/pkg/errs"
)

// ClosingInputs are the figures an operator may enter when finishing an order.
// A nil field falls back to the value derived from the counters; a non-nil field,
// zero included, is taken as given.
type ClosingInputs struct {
	GoodUnits        *int
	BadUnits         *int
	RejectedUnits    *int
	WeightScaleTotal *int
	FinalCutNumber   *int
}

func (c ClosingInputs) Validate() error {
	return errors.Join(
		countInRangePtr("closing good units", c.GoodUnits),
		countInRangePtr("closing bad units", c.BadUnits),
		countInRangePtr("rejected units", c.RejectedUnits),
		countInRangePtr("weight scale total", c.WeightScaleTotal),
		countInRangePtr("final cut number", c.FinalCutNumber),
	)
}

// Calculator derives the metrics snapshot of an order being finished.
type Calculator interface {
	Compute(o *Order, ledger pause.Ledger, closing ClosingInputs, now time.Time) (metrics.Snapshot, error)
}

// DetailsUpdate lists the editable fields of an unfinished order. Nil fields are kept.
type DetailsUpdate struct {
	ProductName *string
	Details     *Details
	TargetUnits *int
	TargetBoxes *int
	UnitsPerBox *int
}

// Start moves a Created or Paused order to Started. When resuming, openPause is
// closed at now and its duration is added to the paused minutes if it counts as
// downtime. The start time is only set on the first start.
func (o *Order) Start(openPause *pause.Pause, now time.Time) error {
	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	if openPause != nil {
		if o.status != Paused {
			return errs.NewValueIsInvalidErrorWithCause("open pause", fmt.Errorf("order is %s", o.status))
		}
		if err = o.closePause(openPause, now); err != nil {
			return err
		}
	}

	if o.startedAt == nil {
		startedAt := now
		o.startedAt = &startedAt
	}
	o.status = newStatus
	return nil
}

// Resume closes the given pause and restarts a Paused order.
func (o *Order) Resume(openPause *pause.Pause, now time.Time) error {
	if o.status != Paused {
		return errs.NewInvalidStateError("resume", o.status.String())
	}
	if openPause == nil {
		return errs.NewValueIsRequiredError("open pause")
	}
	return o.Start(openPause, now)
}

// Pause moves a Started order to Paused and returns the newly opened pause.
func (o *Order) Pause(
	pauseID kernel.UUID,
	pauseType pause.Type,
	countsTowardDowntime bool,
	comment string,
	now time.Time,
) (*pause.Pause, error) {
	newStatus, err := o.status.Pause()
	if err != nil {
		return nil, err
	}

	p, err := pause.Start(pauseID, o.id, pauseType, countsTowardDowntime, comment, now)
	if err != nil {
		return nil, err
	}

	o.status = newStatus
	return p, nil
}

// Finish closes any open pause, lets calc derive the metrics from the full ledger
// and seals the order.
func (o *Order) Finish(ledger pause.Ledger, closing ClosingInputs, calc Calculator, now time.Time) error {
	newStatus, err := o.status.Finish()
	if err != nil {
		return err
	}
	if err = closing.Validate(); err != nil {
		return err
	}

	if o.status == Paused {
		if open := ledger.Open(); open != nil {
			if err = o.closePause(open, now); err != nil {
				return err
			}
		}
	}

	snapshot, err := calc.Compute(o, ledger, closing, now)
	if err != nil {
		return err
	}

	o.counters.GoodUnits = snapshot.GoodUnits
	o.closingGoodUnits = &snapshot.ClosingGoodUnits
	o.closingBadUnits = &snapshot.ClosingBadUnits
	o.repercap.FinalCut = snapshot.FinalCutNumber
	o.weightScale = WeightScale{
		Total:          snapshot.WeightScaleTotal,
		RecoveredUnits: snapshot.RecoveredUnits,
		RecoveryRate:   snapshot.WeightRecoveryRate,
		Recirculation:  metrics.WeightRecirculation(snapshot.WeightScaleTotal, snapshot.TotalUnits),
	}
	o.pausedMinutes = max(0, snapshot.PausedMinutes)
	o.metrics = &snapshot
	o.finishedAt = &now
	o.status = newStatus
	return nil
}

// MaxShiftMinutes is one year.
const MaxShiftMinutes = 365 * 24 * 60

// ShiftStart moves the start time back by the given minutes, making the order look
// as if it had been running longer. Only a Started order can be shifted.
func (o *Order) ShiftStart(minutes int) error {
	if o.status != Started || o.startedAt == nil {
		return errs.NewInvalidStateError("simulate elapsed time", o.status.String())
	}
	if minutes < 1 || minutes > MaxShiftMinutes {
		return errs.NewValueIsOutOfRangeError("minutes", minutes, 1, MaxShiftMinutes)
	}

	shifted := o.startedAt.Add(-time.Duration(minutes) * time.Minute)
	o.startedAt = &shifted
	return nil
}

// UpdateDetails edits the descriptive and planning fields and recomputes the
// estimated hours. Either every field is applied or none is.
func (o *Order) UpdateDetails(u DetailsUpdate, rate metrics.ReferenceRate) error {
	if err := o.status.ValidateEdit(); err != nil {
		return err
	}

	updated := *o
	var errList []error
	if u.ProductName != nil {
		errList = append(errList, updated.setProductName(*u.ProductName))
	}
	if u.Details != nil {
		errList = append(errList, updated.setDetails(*u.Details))
	}
	if u.TargetUnits != nil {
		errList = append(errList, updated.setTargetUnits(*u.TargetUnits))
	}
	if u.TargetBoxes != nil {
		errList = append(errList, updated.setTargetBoxes(*u.TargetBoxes))
	}
	if u.UnitsPerBox != nil {
		errList = append(errList, updated.setUnitsPerBox(u.UnitsPerBox))
	}
	errList = append(errList, rate.Validate())
	if err := errors.Join(errList...); err != nil {
		return err
	}

	updated.estimatedHours = rate.EstimatedHours(updated.targetUnits)
	*o = updated
	return nil
}

func (o *Order) closePause(p *pause.Pause, now time.Time) error {
	if !p.OrderID().IsEqual(o.id) {
		return errs.NewValueIsInvalidErrorWithCause(
			"pause",
			fmt.Errorf("pause %s belongs to order %s", p.ID(), p.OrderID()),
		)
	}

	duration, err := p.End(now)
	if err != nil {
		return err
	}
	if p.CountsAsDowntime() {
		o.pausedMinutes += duration
	}
	return nil
}

func countInRangePtr(name string, value *int) error {
	if value == nil {
		return nil
	}
	return countInRange(name, *value)
}
