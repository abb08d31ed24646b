package order_test

import (
	"fmt"
	"testing"

	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Created))
	assert.Equal(t, 2, int(order.Started))
	assert.Equal(t, 3, int(order.Paused))
	assert.Equal(t, 4, int(order.Finished))
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range []order.Status{order.Created, order.Started, order.Paused, order.Finished} {
		t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	t.Run("should reject Unknown and out of range", func(t *testing.T) {
		require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
		require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
		assert.Equal(t, "Unknown", order.Status(99).String())
	})
}

func TestParseStatus(t *testing.T) {
	status, err := order.ParseStatus("paused")
	require.NoError(t, err)
	assert.Equal(t, order.Paused, status)

	_, err = order.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	type transition func(order.Status) (order.Status, error)

	start := func(s order.Status) (order.Status, error) { return s.Start() }
	pause := func(s order.Status) (order.Status, error) { return s.Pause() }
	finish := func(s order.Status) (order.Status, error) { return s.Finish() }

	testCases := []struct {
		name    string
		from    order.Status
		apply   transition
		want    order.Status
		wantErr bool
	}{
		{name: "start from created", from: order.Created, apply: start, want: order.Started},
		{name: "resume from paused", from: order.Paused, apply: start, want: order.Started},
		{name: "start twice", from: order.Started, apply: start, wantErr: true},
		{name: "start finished", from: order.Finished, apply: start, wantErr: true},
		{name: "pause started", from: order.Started, apply: pause, want: order.Paused},
		{name: "pause created", from: order.Created, apply: pause, wantErr: true},
		{name: "pause paused", from: order.Paused, apply: pause, wantErr: true},
		{name: "finish created", from: order.Created, apply: finish, want: order.Finished},
		{name: "finish started", from: order.Started, apply: finish, want: order.Finished},
		{name: "finish paused", from: order.Paused, apply: finish, want: order.Finished},
		{name: "finish twice", from: order.Finished, apply: finish, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.apply(tc.from)
			if tc.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidState)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStatus_Guards(t *testing.T) {
	require.NoError(t, order.Started.ValidateCounters())
	require.NoError(t, order.Paused.ValidateCounters())
	require.ErrorIs(t, order.Created.ValidateCounters(), errs.ErrInvalidState)
	require.ErrorIs(t, order.Finished.ValidateCounters(), errs.ErrInvalidState)

	require.NoError(t, order.Created.ValidateDelete())
	require.ErrorIs(t, order.Started.ValidateDelete(), errs.ErrInvalidState)

	require.NoError(t, order.Paused.ValidateEdit())
	require.ErrorIs(t, order.Finished.ValidateEdit(), errs.ErrInvalidState)
}
