package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var ErrFinishOrderCommandIsNotConstructed = errors.New(
	"FinishOrderCommand must be created via NewFinishOrderCommand constructor",
)

// FinishOrderCommand seals an order with the closing figures entered by the
// operator. Nil closing fields fall back to the live counters.
type FinishOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	closing order.ClosingInputs

	guard guard.ConstructorGuard
}

func NewFinishOrderCommand(orderID kernel.UUID, closing order.ClosingInputs) (FinishOrderCommand, error) {
	cmd := FinishOrderCommand{guard: guard.NewConstructorGuard()}
	if err := errors.Join(orderID.Validate(), closing.Validate()); err != nil {
		return FinishOrderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.closing = closing
	return cmd, nil
}

func (c FinishOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinishOrderCommandIsNotConstructed)
}

func (c FinishOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c FinishOrderCommand) Closing() order.ClosingInputs {
	return c.closing
}
