package commands

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrAdjustCounterCommandIsNotConstructed = errors.New(
	"AdjustCounterCommand must be created via NewAdjustCounterCommand constructor",
)

// Counter names one of the live production counters.
type Counter int

const (
	UnknownCounter Counter = iota
	GoodUnitsCounter
	BoxesCounter
	RejectedUnitsCounter
	WeightScaleUnitsCounter
	OperatorUnitsCounter
)

func getCounterStrings() map[Counter]string {
	//nolint:exhaustive // UnknownCounter is intentionally excluded as it's invalid
	return map[Counter]string{
		GoodUnitsCounter:        "goodUnits",
		BoxesCounter:            "boxes",
		RejectedUnitsCounter:    "rejectedUnits",
		WeightScaleUnitsCounter: "weightScaleUnits",
		OperatorUnitsCounter:    "operatorUnits",
	}
}

func ParseCounter(s string) (Counter, error) {
	for c, name := range getCounterStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return UnknownCounter, errs.NewValueIsInvalidErrorWithCause("counter", fmt.Errorf("unknown counter %q", s))
}

func (c Counter) String() string {
	if name, ok := getCounterStrings()[c]; ok {
		return name
	}
	return "unknown"
}

// AdjustMode selects between adding to a counter and overwriting it.
type AdjustMode int

const (
	UnknownMode AdjustMode = iota
	IncrementMode
	SetMode
)

func ParseAdjustMode(s string) (AdjustMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "increment":
		return IncrementMode, nil
	case "set":
		return SetMode, nil
	default:
		return UnknownMode, errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("unknown mode %q", s))
	}
}

func (m AdjustMode) String() string {
	switch m {
	case IncrementMode:
		return "increment"
	case SetMode:
		return "set"
	default:
		return "unknown"
	}
}

// AdjustCounterCommand increments or overwrites one counter of a running order.
//
// Example:
//
//	cmd, err := NewAdjustCounterCommand(orderID, BoxesCounter, IncrementMode, 1)
type AdjustCounterCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	counter Counter
	mode    AdjustMode
	amount  int

	guard guard.ConstructorGuard
}

// NewAdjustCounterCommand checks the counter and mode combination. The amount
// limits (at least 1 for increments, not negative for sets) are enforced by the
// order itself.
func NewAdjustCounterCommand(orderID kernel.UUID, counter Counter, mode AdjustMode, amount int) (AdjustCounterCommand, error) {
	cmd := AdjustCounterCommand{guard: guard.NewConstructorGuard()}

	var counterErr, modeErr error
	if _, ok := getCounterStrings()[counter]; !ok {
		counterErr = errs.NewValueIsInvalidError("counter")
	}
	switch {
	case mode != IncrementMode && mode != SetMode:
		modeErr = errs.NewValueIsInvalidError("mode")
	case mode == SetMode && counter == RejectedUnitsCounter:
		modeErr = errs.NewValueIsInvalidErrorWithCause("mode", errors.New("rejected units can only be incremented"))
	}

	if err := errors.Join(orderID.Validate(), counterErr, modeErr); err != nil {
		return AdjustCounterCommand{}, err
	}

	cmd.orderID = orderID
	cmd.counter = counter
	cmd.mode = mode
	cmd.amount = amount
	return cmd, nil
}

func (c AdjustCounterCommand) Validate() error {
	return c.guard.Validate(ErrAdjustCounterCommandIsNotConstructed)
}

func (c AdjustCounterCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdjustCounterCommand) Counter() Counter {
	return c.counter
}

func (c AdjustCounterCommand) Mode() AdjustMode {
	return c.mode
}

func (c AdjustCounterCommand) Amount() int {
	return c.amount
}

func (c AdjustCounterCommand) apply(o *order.Order) error {
	//nolint:exhaustive // unknown combinations are rejected by the constructor
	switch c.mode {
	case IncrementMode:
		switch c.counter {
		case GoodUnitsCounter:
			return o.IncrementGoodUnits(c.amount)
		case BoxesCounter:
			return o.IncrementBoxes(c.amount)
		case RejectedUnitsCounter:
			return o.IncrementRejected(c.amount)
		case WeightScaleUnitsCounter:
			return o.IncrementWeightScaleUnits(c.amount)
		case OperatorUnitsCounter:
			return o.IncrementOperatorUnits(c.amount)
		}
	case SetMode:
		switch c.counter {
		case GoodUnitsCounter:
			return o.SetGoodUnits(c.amount)
		case BoxesCounter:
			return o.SetBoxes(c.amount)
		case WeightScaleUnitsCounter:
			return o.SetWeightScaleUnits(c.amount)
		case OperatorUnitsCounter:
			return o.SetOperatorUnits(c.amount)
		}
	}
	return errs.NewValueIsInvalidError("counter")
}
