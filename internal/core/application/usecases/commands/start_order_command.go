package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrStartOrderCommandIsNotConstructed = errors.New(
	"StartOrderCommand must be created via NewStartOrderCommand constructor",
)

// StartOrderCommand starts a Created order or resumes a Paused one.
type StartOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartOrderCommand(orderID kernel.UUID) (StartOrderCommand, error) {
	cmd := StartOrderCommand{guard: guard.NewConstructorGuard()}
	if err := orderID.Validate(); err != nil {
		return StartOrderCommand{}, err
	}
	cmd.orderID = orderID
	return cmd, nil
}

func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

func (c StartOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
