package commands_test

import (
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCleaningCommand(t *testing.T) {
	t.Run("blank description", func(t *testing.T) {
		_, err := commands.NewCreateCleaningCommand(kernel.NewUUID(), "  ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero command is not constructed", func(t *testing.T) {
		var cmd commands.CreateCleaningCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateCleaningCommandIsNotConstructed)
	})
}

func TestCleaning_CreateStartFinish(t *testing.T) {
	l := newLine(t)
	id := l.createCleaning(t, "Limpieza tolva")

	started, err := l.cleaning.Start(t.Context(), l.cleaningCmd(t, id))
	require.NoError(t, err)
	assert.Equal(t, "Started", started.Status)
	require.NotNil(t, started.StartedAt)
	assert.Equal(t, t0, *started.StartedAt)

	l.clock.Advance(90*time.Second + 999*time.Millisecond)
	finished, err := l.cleaning.Finish(t.Context(), l.cleaningCmd(t, id))
	require.NoError(t, err)
	assert.Equal(t, "Finished", finished.Status)
	require.NotNil(t, finished.DurationSeconds)
	assert.Equal(t, 90, *finished.DurationSeconds)

	assert.Equal(t, []string{
		ports.EventCleaningCreated,
		ports.EventCleaningUpdated,
		ports.EventCleaningUpdated,
	}, l.notifier.Events())
}

func TestCleaning_InvalidTransitions(t *testing.T) {
	l := newLine(t)
	id := l.createCleaning(t, "Limpieza tolva")

	_, err := l.cleaning.Finish(t.Context(), l.cleaningCmd(t, id))
	require.ErrorIs(t, err, errs.ErrInvalidState)

	_, err = l.cleaning.Start(t.Context(), l.cleaningCmd(t, id))
	require.NoError(t, err)

	_, err = l.cleaning.Start(t.Context(), l.cleaningCmd(t, id))
	require.ErrorIs(t, err, errs.ErrInvalidState)

	err = l.cleaning.Delete(t.Context(), l.cleaningCmd(t, id))
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestCleaning_DescribeKeepsStatus(t *testing.T) {
	l := newLine(t)
	id := l.createCleaning(t, "Limpieza tolva")
	_, err := l.cleaning.Start(t.Context(), l.cleaningCmd(t, id))
	require.NoError(t, err)

	cmd, err := commands.NewDescribeCleaningCommand(id, " Limpieza tolva y cinta ")
	require.NoError(t, err)
	view, err := l.cleaning.Describe(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, "Limpieza tolva y cinta", view.Description)
	assert.Equal(t, "Started", view.Status)
}

func TestCleaning_Delete(t *testing.T) {
	l := newLine(t)
	id := l.createCleaning(t, "Limpieza tolva")

	require.NoError(t, l.cleaning.Delete(t.Context(), l.cleaningCmd(t, id)))

	_, err := l.cleaning.Start(t.Context(), l.cleaningCmd(t, id))
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, ports.EventCleaningDeleted, l.notifier.Events()[1])
}

func (l *line) createCleaning(t *testing.T, description string) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateCleaningCommand(id, description)
	require.NoError(t, err)
	_, err = l.cleaning.Create(t.Context(), cmd)
	require.NoError(t, err)
	return id
}

func (l *line) cleaningCmd(t *testing.T, id kernel.UUID) commands.CleaningCommand {
	t.Helper()
	cmd, err := commands.NewCleaningCommand(id)
	require.NoError(t, err)
	return cmd
}
