package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
	"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
)

// UpdateOrderDetailsCommand edits the product and planning fields of an unfinished order.
type UpdateOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	update  order.DetailsUpdate

	guard guard.ConstructorGuard
}

func NewUpdateOrderDetailsCommand(orderID kernel.UUID, update order.DetailsUpdate) (UpdateOrderDetailsCommand, error) {
	cmd := UpdateOrderDetailsCommand{guard: guard.NewConstructorGuard()}

	var emptyErr error
	if update == (order.DetailsUpdate{}) {
		emptyErr = errs.NewValueIsRequiredError("order details")
	}
	if err := errors.Join(orderID.Validate(), emptyErr); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}

	cmd.orderID = orderID
	cmd.update = update
	return cmd, nil
}

func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderDetailsCommand) Update() order.DetailsUpdate {
	return c.update
}
