package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrPauseOrderCommandIsNotConstructed = errors.New(
	"PauseOrderCommand must be created via NewPauseOrderCommand constructor",
)

// PauseOrderCommand pauses a Started order. The pause type is checked against the
// catalog by the handler.
type PauseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	pauseType string
	comment   string

	guard guard.ConstructorGuard
}

func NewPauseOrderCommand(orderID kernel.UUID, pauseType, comment string) (PauseOrderCommand, error) {
	cmd := PauseOrderCommand{guard: guard.NewConstructorGuard()}

	var typeErr error
	if strings.TrimSpace(pauseType) == "" {
		typeErr = errs.NewValueIsRequiredError("pause type")
	}
	if err := errors.Join(orderID.Validate(), typeErr); err != nil {
		return PauseOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.pauseType = strings.TrimSpace(pauseType)
	cmd.comment = strings.TrimSpace(comment)
	return cmd, nil
}

func (c PauseOrderCommand) Validate() error {
	return c.guard.Validate(ErrPauseOrderCommandIsNotConstructed)
}

func (c PauseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PauseOrderCommand) PauseType() string {
	return c.pauseType
}

func (c PauseOrderCommand) Comment() string {
	return c.comment
}
