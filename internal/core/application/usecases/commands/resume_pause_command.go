package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrResumePauseCommandIsNotConstructed = errors.New(
	"ResumePauseCommand must be created via NewResumePauseCommand constructor",
)

// ResumePauseCommand ends a specific open pause and restarts its order.
type ResumePauseCommand struct { //nolint:recvcheck //using for validation
	pauseID kernel.UUID

	guard guard.ConstructorGuard
}

func NewResumePauseCommand(pauseID kernel.UUID) (ResumePauseCommand, error) {
	cmd := ResumePauseCommand{guard: guard.NewConstructorGuard()}
	if err := pauseID.Validate(); err != nil {
		return ResumePauseCommand{}, err
	}
	cmd.pauseID = pauseID
	return cmd, nil
}

func (c ResumePauseCommand) Validate() error {
	return c.guard.Validate(ErrResumePauseCommandIsNotConstructed)
}

func (c ResumePauseCommand) PauseID() kernel.UUID {
	return c.pauseID
}
