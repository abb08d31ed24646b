package commands_test

import (
	"sync"
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_StartPauseResumeFinish(t *testing.T) {
	l := newLine(t)
	id := l.createOrder(t, "OF-2025-0042")

	require.NoError(t, l.startOrder(t, id))

	l.clock.Advance(20 * time.Minute)
	result, err := l.pauseOrder(t, id, "Mantenimiento")
	require.NoError(t, err)
	assert.True(t, result.CountsTowardDowntime)
	assert.Equal(t, "Paused", result.Order.Status)

	l.clock.Advance(30 * time.Minute)
	require.NoError(t, l.startOrder(t, id))

	o, pauses := l.loadOrder(t, id)
	assert.Equal(t, order.Started, o.Status())
	assert.Equal(t, 30, o.PausedMinutes())
	require.Len(t, pauses, 1)
	assert.Equal(t, 30, *pauses[0].DurationMinutes())
	assert.Equal(t, t0, *o.StartedAt())

	l.clock.Advance(40 * time.Minute)
	finishCmd, err := commands.NewFinishOrderCommand(id, order.ClosingInputs{GoodUnits: intPtr(3000), BadUnits: intPtr(0)})
	require.NoError(t, err)
	view, err := l.finish.Handle(t.Context(), finishCmd)
	require.NoError(t, err)

	assert.Equal(t, "Finished", view.Status)
	require.NotNil(t, view.Metrics)
	assert.Equal(t, 90, view.Metrics.TotalMinutes)
	assert.Equal(t, 30, view.Metrics.PausedMinutes)
	assert.Equal(t, 60, view.Metrics.ActiveMinutes)
	assert.InDelta(t, 0.666667, view.Metrics.Availability, 1e-9)
	assert.InDelta(t, 0.75, view.Metrics.Performance, 1e-9)
	assert.InDelta(t, 1.0, view.Metrics.Quality, 1e-9)
	assert.InDelta(t, 0.5, view.Metrics.OEE, 1e-9)
	require.NotNil(t, view.FinishedAt)
	assert.Equal(t, t0.Add(90*time.Minute), *view.FinishedAt)

	assert.Equal(t, []string{
		ports.EventOrderCreated,
		ports.EventOrderUpdated,
		ports.EventOrderUpdated,
		ports.EventOrderUpdated,
		ports.EventOrderUpdated,
	}, l.notifier.Events())

	_, err = l.finish.Handle(t.Context(), finishCmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestLifecycle_ShiftChangeDoesNotCount(t *testing.T) {
	l := newLine(t)
	id := l.createOrder(t, "OF-1")
	require.NoError(t, l.startOrder(t, id))

	result, err := l.pauseOrder(t, id, "cambio_turno")
	require.NoError(t, err)
	assert.False(t, result.CountsTowardDowntime)

	l.clock.Advance(480 * time.Minute)
	require.NoError(t, l.startOrder(t, id))

	o, _ := l.loadOrder(t, id)
	assert.Zero(t, o.PausedMinutes())
}

func TestLifecycle_FinishWhilePaused(t *testing.T) {
	l := newLine(t)
	id := l.createOrder(t, "OF-1")
	require.NoError(t, l.startOrder(t, id))
	l.clock.Advance(60 * time.Minute)
	_, err := l.pauseOrder(t, id, "Falta de Material")
	require.NoError(t, err)
	l.clock.Advance(15 * time.Minute)

	cmd, err := commands.NewFinishOrderCommand(id, order.ClosingInputs{})
	require.NoError(t, err)
	view, err := l.finish.Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, 15, view.PausedMinutes)
	require.Len(t, view.Pauses, 1)
	require.NotNil(t, view.Pauses[0].EndedAt)
	assert.Equal(t, 15, *view.Pauses[0].DurationMinutes)

	_, pauses := l.loadOrder(t, id)
	require.Len(t, pauses, 1)
	assert.False(t, pauses[0].IsOpen())
}

func TestLifecycle_FinishWithoutStart(t *testing.T) {
	l := newLine(t)
	id := l.createOrder(t, "OF-1")

	cmd, err := commands.NewFinishOrderCommand(id, order.ClosingInputs{})
	require.NoError(t, err)
	view, err := l.finish.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "Finished", view.Status)
	assert.Zero(t, view.Metrics.TotalMinutes)
	assert.Zero(t, view.Metrics.OEE)
}

func TestStartOrder_OnlyOneOrderRunsAtATime(t *testing.T) {
	l := newLine(t)
	first := l.createOrder(t, "OF-1")
	second := l.createOrder(t, "OF-2")

	require.NoError(t, l.startOrder(t, first))
	require.ErrorIs(t, l.startOrder(t, second), errs.ErrConflict)

	_, err := l.pauseOrder(t, first, "Verificación Calidad")
	require.NoError(t, err)
	require.NoError(t, l.startOrder(t, second))

	require.ErrorIs(t, l.startOrder(t, first), errs.ErrConflict)
}

func TestStartOrder_ConcurrentStartsAdmitExactlyOne(t *testing.T) {
	l := newLine(t)
	const n = 8
	ids := make([]kernel.UUID, n)
	for i := range ids {
		ids[i] = l.createOrder(t, "OF-"+string(rune('A'+i)))
	}

	var wg sync.WaitGroup
	results := make([]error, n)
	for i, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, _ := commands.NewStartOrderCommand(id)
			_, results[i] = l.start.Handle(t.Context(), cmd)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)
}

func TestStartOrder_Errors(t *testing.T) {
	l := newLine(t)

	err := l.startOrder(t, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	id := l.createOrder(t, "OF-1")
	require.NoError(t, l.startOrder(t, id))
	require.ErrorIs(t, l.startOrder(t, id), errs.ErrInvalidState)
}

func TestPauseOrder_Errors(t *testing.T) {
	l := newLine(t)
	id := l.createOrder(t, "OF-1")

	_, err := l.pauseOrder(t, id, "Mantenimiento")
	require.ErrorIs(t, err, errs.ErrInvalidState)

	require.NoError(t, l.startOrder(t, id))
	_, err = l.pauseOrder(t, id, "Coffee break")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewPauseOrderCommand(id, " ", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
