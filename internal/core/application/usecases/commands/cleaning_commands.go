package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrCreateCleaningCommandIsNotConstructed = errors.New(
		"CreateCleaningCommand must be created via NewCreateCleaningCommand constructor",
	)
	ErrDescribeCleaningCommandIsNotConstructed = errors.New(
		"DescribeCleaningCommand must be created via NewDescribeCleaningCommand constructor",
	)
	ErrCleaningCommandIsNotConstructed = errors.New(
		"CleaningCommand must be created via NewCleaningCommand constructor",
	)
)

// CreateCleaningCommand registers a cleaning order in Created status.
type CreateCleaningCommand struct { //nolint:recvcheck //using for validation
	cleaningID  kernel.UUID
	description string

	guard guard.ConstructorGuard
}

func NewCreateCleaningCommand(cleaningID kernel.UUID, description string) (CreateCleaningCommand, error) {
	cmd := CreateCleaningCommand{guard: guard.NewConstructorGuard()}
	if err := errors.Join(cleaningID.Validate(), requireDescription(description)); err != nil {
		return CreateCleaningCommand{}, err
	}
	cmd.cleaningID = cleaningID
	cmd.description = description
	return cmd, nil
}

func (c CreateCleaningCommand) Validate() error {
	return c.guard.Validate(ErrCreateCleaningCommandIsNotConstructed)
}

func (c CreateCleaningCommand) CleaningID() kernel.UUID {
	return c.cleaningID
}

func (c CreateCleaningCommand) Description() string {
	return c.description
}

// DescribeCleaningCommand replaces the description of a cleaning order. The
// status is only changed by starting or finishing.
type DescribeCleaningCommand struct { //nolint:recvcheck //using for validation
	cleaningID  kernel.UUID
	description string

	guard guard.ConstructorGuard
}

func NewDescribeCleaningCommand(cleaningID kernel.UUID, description string) (DescribeCleaningCommand, error) {
	cmd := DescribeCleaningCommand{guard: guard.NewConstructorGuard()}
	if err := errors.Join(cleaningID.Validate(), requireDescription(description)); err != nil {
		return DescribeCleaningCommand{}, err
	}
	cmd.cleaningID = cleaningID
	cmd.description = description
	return cmd, nil
}

func (c DescribeCleaningCommand) Validate() error {
	return c.guard.Validate(ErrDescribeCleaningCommandIsNotConstructed)
}

func (c DescribeCleaningCommand) CleaningID() kernel.UUID {
	return c.cleaningID
}

func (c DescribeCleaningCommand) Description() string {
	return c.description
}

// CleaningCommand addresses one cleaning order by id. Start, finish and delete
// need nothing else.
type CleaningCommand struct { //nolint:recvcheck //using for validation
	cleaningID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCleaningCommand(cleaningID kernel.UUID) (CleaningCommand, error) {
	cmd := CleaningCommand{guard: guard.NewConstructorGuard()}
	if err := cleaningID.Validate(); err != nil {
		return CleaningCommand{}, err
	}
	cmd.cleaningID = cleaningID
	return cmd, nil
}

func (c CleaningCommand) Validate() error {
	return c.guard.Validate(ErrCleaningCommandIsNotConstructed)
}

func (c CleaningCommand) CleaningID() kernel.UUID {
	return c.cleaningID
}

func requireDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return errs.NewValueIsRequiredError("description")
	}
	return nil
}
