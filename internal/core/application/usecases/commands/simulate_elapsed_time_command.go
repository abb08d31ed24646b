package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// DefaultSimulatedMinutes is used when no amount is given.
const DefaultSimulatedMinutes = 60

var ErrSimulateElapsedTimeCommandIsNotConstructed = errors.New(
	"SimulateElapsedTimeCommand must be created via NewSimulateElapsedTimeCommand constructor",
)

// SimulateElapsedTimeCommand moves the start time of a running order back, for
// demos and for testing the metrics without waiting.
type SimulateElapsedTimeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	minutes int

	guard guard.ConstructorGuard
}

func NewSimulateElapsedTimeCommand(orderID kernel.UUID, minutes *int) (SimulateElapsedTimeCommand, error) {
	cmd := SimulateElapsedTimeCommand{
		minutes: DefaultSimulatedMinutes,
		guard:   guard.NewConstructorGuard(),
	}

	var minutesErr error
	if minutes != nil {
		if *minutes < 1 || *minutes > order.MaxShiftMinutes {
			minutesErr = errs.NewValueIsOutOfRangeError("minutes", *minutes, 1, order.MaxShiftMinutes)
		}
		cmd.minutes = *minutes
	}
	if err := errors.Join(orderID.Validate(), minutesErr); err != nil {
		return SimulateElapsedTimeCommand{}, err
	}

	cmd.orderID = orderID
	return cmd, nil
}

func (c SimulateElapsedTimeCommand) Validate() error {
	return c.guard.Validate(ErrSimulateElapsedTimeCommandIsNotConstructed)
}

func (c SimulateElapsedTimeCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SimulateElapsedTimeCommand) Minutes() int {
	return c.minutes
}
