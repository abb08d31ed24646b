package order

import (
	"errors"

	"production/internal/core/domain/model/metrics"
	"production/internal/pkg/errs"
)

// Counters are the raw production counts reported by the line.
type Counters struct {
	GoodUnits        int
	Boxes            int
	RejectedUnits    int
	WeightScaleUnits int
	OperatorUnits    int
}

func (c Counters) Validate() error {
	return errors.Join(
		countInRange("good units", c.GoodUnits),
		countInRange("boxes", c.Boxes),
		countInRange("rejected units", c.RejectedUnits),
		countInRange("weight scale units", c.WeightScaleUnits),
		countInRange("operator units", c.OperatorUnits),
	)
}

// WeightScale holds the live figures of the weighing station, refreshed on every
// counter change.
type WeightScale struct {
	// Total is weight-scale units plus rejected units.
	Total          int
	RecoveredUnits int
	RecoveryRate   float64
	Recirculation  int
}

// MaxCount caps every counter and closing figure. It keeps sums and box
// multiplications far from int overflow.
const MaxCount = 1_000_000_000

// IncrementGoodUnits adds amount to the good units. With a known units-per-box the
// box count is raised to floor(good / unitsPerBox) if that is higher; it is never
// lowered.
func (o *Order) IncrementGoodUnits(amount int) error {
	if err := o.checkIncrement("good units", o.counters.GoodUnits, amount); err != nil {
		return err
	}
	o.applyGoodUnits(o.counters.GoodUnits + amount)
	return nil
}

// SetGoodUnits overwrites the good units with the same box rule as IncrementGoodUnits.
func (o *Order) SetGoodUnits(value int) error {
	if err := o.checkSet("good units", value); err != nil {
		return err
	}
	o.applyGoodUnits(value)
	return nil
}

// IncrementBoxes adds amount to the box count. With a known units-per-box the good
// units are overwritten with boxes * unitsPerBox.
func (o *Order) IncrementBoxes(amount int) error {
	if err := o.checkIncrement("boxes", o.counters.Boxes, amount); err != nil {
		return err
	}
	return o.applyBoxes(o.counters.Boxes + amount)
}

// SetBoxes overwrites the box count with the same good-units rule as IncrementBoxes.
func (o *Order) SetBoxes(value int) error {
	if err := o.checkSet("boxes", value); err != nil {
		return err
	}
	return o.applyBoxes(value)
}

func (o *Order) IncrementRejected(amount int) error {
	if err := o.checkIncrement("rejected units", o.counters.RejectedUnits, amount); err != nil {
		return err
	}
	o.counters.RejectedUnits += amount
	o.refreshWeightScale()
	return nil
}

func (o *Order) IncrementWeightScaleUnits(amount int) error {
	if err := o.checkIncrement("weight scale units", o.counters.WeightScaleUnits, amount); err != nil {
		return err
	}
	o.counters.WeightScaleUnits += amount
	o.refreshWeightScale()
	return nil
}

func (o *Order) SetWeightScaleUnits(value int) error {
	if err := o.checkSet("weight scale units", value); err != nil {
		return err
	}
	o.counters.WeightScaleUnits = value
	o.refreshWeightScale()
	return nil
}

func (o *Order) IncrementOperatorUnits(amount int) error {
	if err := o.checkIncrement("operator units", o.counters.OperatorUnits, amount); err != nil {
		return err
	}
	o.counters.OperatorUnits += amount
	o.refreshWeightScale()
	return nil
}

func (o *Order) SetOperatorUnits(value int) error {
	if err := o.checkSet("operator units", value); err != nil {
		return err
	}
	o.counters.OperatorUnits = value
	o.refreshWeightScale()
	return nil
}

func (o *Order) applyGoodUnits(value int) {
	o.counters.GoodUnits = value
	if upb := o.unitsPerBoxValue(); upb > 0 {
		if boxes := value / upb; boxes > o.counters.Boxes {
			o.counters.Boxes = boxes
		}
	}
	o.refreshWeightScale()
}

// applyBoxes leaves the counters untouched when the derived good units would
// exceed MaxCount.
func (o *Order) applyBoxes(value int) error {
	if upb := o.unitsPerBoxValue(); upb > 0 {
		if value > MaxCount/upb {
			return errs.NewValueIsOutOfRangeError("boxes", value, 0, MaxCount/upb)
		}
		o.counters.GoodUnits = value * upb
	}
	o.counters.Boxes = value
	o.refreshWeightScale()
	return nil
}

// refreshWeightScale recomputes the weighing-station figures from the counters.
func (o *Order) refreshWeightScale() {
	total := o.counters.WeightScaleUnits + o.counters.RejectedUnits
	recovered := metrics.RecoveredUnits(total, o.counters.GoodUnits)

	produced := o.counters.GoodUnits
	if o.closingGoodUnits != nil && *o.closingGoodUnits > 0 {
		produced = *o.closingGoodUnits
	}
	if o.closingBadUnits != nil {
		produced += *o.closingBadUnits
	}

	o.weightScale = WeightScale{
		Total:          total,
		RecoveredUnits: recovered,
		RecoveryRate:   metrics.Round6(metrics.Percent(float64(recovered), float64(total))),
		Recirculation:  metrics.WeightRecirculation(total, produced),
	}
}

func (o *Order) checkIncrement(counter string, current, amount int) error {
	if err := o.status.ValidateCounters(); err != nil {
		return err
	}
	if amount < 1 || amount > MaxCount-current {
		return errs.NewValueIsOutOfRangeError(counter+" increment", amount, 1, MaxCount-current)
	}
	return nil
}

func (o *Order) checkSet(counter string, value int) error {
	if err := o.status.ValidateCounters(); err != nil {
		return err
	}
	return countInRange(counter, value)
}

func countInRange(name string, value int) error {
	if value < 0 || value > MaxCount {
		return errs.NewValueIsOutOfRangeError(name, value, 0, MaxCount)
	}
	return nil
}
