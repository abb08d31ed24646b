package telemetry_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"production/internal/adapters/out/telemetry"
	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/metrics"
	"production/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecorder(t *testing.T) *telemetry.Recorder {
	t.Helper()
	r, err := telemetry.NewRecorder()
	require.NoError(t, err)
	return r
}

func liveView(code string, oee float64) dto.LiveMetricsView {
	return dto.LiveMetricsView{
		Code:   code,
		Status: "Started",
		Snapshot: metrics.Snapshot{
			GoodUnits:    2000,
			Availability: 1,
			Performance:  oee,
			Quality:      1,
			OEE:          oee,
		},
	}
}

func TestRecorder_CountsEveryEvent(t *testing.T) {
	r := newRecorder(t)

	r.Emit(ports.EventOrderCreated, dto.OrderView{Code: "OF-1", Status: "Created"})
	r.Emit(ports.EventOrderCreated, dto.OrderView{Code: "OF-2", Status: "Created"})
	r.Emit(ports.EventPauseUpdated, dto.PauseView{})
	r.Emit("custom", nil)

	expected := `
# HELP production_events_total Notifications published, by event name
# TYPE production_events_total counter
production_events_total{event="custom"} 1
production_events_total{event="order:created"} 2
production_events_total{event="pause:updated"} 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "production_events_total"))
}

func TestRecorder_ObservesFinishedOrder(t *testing.T) {
	r := newRecorder(t)

	r.Emit(ports.EventOrderUpdated, dto.OrderView{Code: "OF-1", Status: "Started"})
	r.Emit(ports.EventOrderUpdated, dto.OrderView{
		Code:    "OF-1",
		Status:  "Finished",
		Metrics: &metrics.Snapshot{OEE: 0.5, Quality: 1},
	})

	count, err := testutil.GatherAndCount(r.Registry(), "production_order_oee_ratio")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	finished, err := testutil.GatherAndCount(r.Registry(), "production_orders_finished_total")
	require.NoError(t, err)
	assert.Equal(t, 1, finished)
}

func TestRecorder_MirrorsLiveMetricsUntilFinished(t *testing.T) {
	r := newRecorder(t)

	r.Emit(ports.EventOrderLiveMetrics, liveView("OF-1", 0.4))
	r.Emit(ports.EventOrderLiveMetrics, liveView("OF-1", 0.5))

	expected := `
# HELP production_live_good_units Good units counted so far on running orders
# TYPE production_live_good_units gauge
production_live_good_units{order_code="OF-1"} 2000
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "production_live_good_units"))

	ratios, err := testutil.GatherAndCount(r.Registry(), "production_live_ratio")
	require.NoError(t, err)
	assert.Equal(t, 4, ratios)

	r.Emit(ports.EventOrderUpdated, dto.OrderView{Code: "OF-1", Status: "Finished", Metrics: &metrics.Snapshot{OEE: 0.5}})

	ratios, err = testutil.GatherAndCount(r.Registry(), "production_live_ratio", "production_live_good_units")
	require.NoError(t, err)
	assert.Zero(t, ratios)
}

func TestRecorder_IgnoresUnexpectedPayload(t *testing.T) {
	r := newRecorder(t)

	assert.NotPanics(t, func() {
		r.Emit(ports.EventOrderLiveMetrics, "not a view")
		r.Emit(ports.EventOrderUpdated, nil)
	})
}

func TestRecorder_Handler(t *testing.T) {
	r := newRecorder(t)
	r.Emit(ports.EventOrderCreated, dto.OrderView{Code: "OF-1"})

	server := httptest.NewServer(r.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `production_events_total{event="order:created"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
