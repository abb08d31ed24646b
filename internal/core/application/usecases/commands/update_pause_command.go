package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrUpdatePauseCommandIsNotConstructed = errors.New(
	"UpdatePauseCommand must be created via NewUpdatePauseCommand constructor",
)

// UpdatePauseCommand edits the comment and, on an open pause, the type.
// Nil fields are left unchanged; at least one must be given.
type UpdatePauseCommand struct { //nolint:recvcheck //using for validation
	pauseID   kernel.UUID
	comment   *string
	pauseType *string

	guard guard.ConstructorGuard
}

func NewUpdatePauseCommand(pauseID kernel.UUID, comment, pauseType *string) (UpdatePauseCommand, error) {
	cmd := UpdatePauseCommand{guard: guard.NewConstructorGuard()}

	var fieldsErr error
	switch {
	case comment == nil && pauseType == nil:
		fieldsErr = errs.NewValueIsRequiredError("comment or pause type")
	case pauseType != nil && strings.TrimSpace(*pauseType) == "":
		fieldsErr = errs.NewValueIsRequiredError("pause type")
	}
	if err := errors.Join(pauseID.Validate(), fieldsErr); err != nil {
		return UpdatePauseCommand{}, err
	}

	cmd.pauseID = pauseID
	if comment != nil {
		c := strings.TrimSpace(*comment)
		cmd.comment = &c
	}
	if pauseType != nil {
		t := strings.TrimSpace(*pauseType)
		cmd.pauseType = &t
	}
	return cmd, nil
}

func (c UpdatePauseCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePauseCommandIsNotConstructed)
}

func (c UpdatePauseCommand) PauseID() kernel.UUID {
	return c.pauseID
}

func (c UpdatePauseCommand) Comment() *string {
	return c.comment
}

func (c UpdatePauseCommand) PauseType() *string {
	return c.pauseType
}
