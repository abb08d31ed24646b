package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"production/cmd"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/metrics"
	"production/internal/core/domain/model/pause"
	"production/internal/jobs"
	"production/internal/pkg/clock"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

var t0 = time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

// APITestSuite drives the whole application over HTTP with the in-memory
// store and a manual clock.
type APITestSuite struct {
	suite.Suite
	clock *clock.Manual
	app   *cmd.CompositionRoot
	e     *echo.Echo
}

func (s *APITestSuite) SetupTest() {
	s.clock = clock.NewManual(t0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := cmd.NewCompositionRoot(cmd.Config{
		StorageDriver:       cmd.StorageDriverMemory,
		ReferenceRate:       metrics.DefaultReferenceRate,
		LiveMetricsSchedule: jobs.DefaultLiveMetricsSchedule,
		LogLevel:            "info",
	}, nil, s.clock, logger)
	s.Require().NoError(err)
	s.app = app

	s.e, err = app.NewRouter(s.T().Context())
	s.Require().NoError(err)
}

func (s *APITestSuite) TearDownTest() {
	s.app.Close()
}

func (s *APITestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *APITestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *APITestSuite) createOrder(code string) dto.OrderView {
	rec := s.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"code":        code,
		"articleCode": "ART-118",
		"productName": "Gel hidroalcohólico 500ml",
		"targetUnits": "4000",
		"targetBoxes": 167,
		"unitsPerBox": "24",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var view dto.OrderView
	s.decode(rec, &view)
	return view
}

func (s *APITestSuite) startOrder(id string) {
	rec := s.do(http.MethodPost, "/api/v1/orders/"+id+"/start", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *APITestSuite) TestFullShift() {
	created := s.createOrder("OF-2025-0042")
	s.Equal("Created", created.Status)
	s.InDelta(1.0, created.EstimatedHours, 1e-9)

	s.startOrder(created.ID)

	s.clock.Advance(20 * time.Minute)
	rec := s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/pause", map[string]string{
		"type":    string(pause.Maintenance),
		"comment": "rodillo",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var paused commands.PauseOrderResult
	s.decode(rec, &paused)
	s.True(paused.CountsTowardDowntime)
	s.Equal("Paused", paused.Order.Status)

	s.clock.Advance(30 * time.Minute)
	rec = s.do(http.MethodPost, "/api/v1/pauses/"+paused.Pause.ID+"/resume", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var resumed dto.OrderView
	s.decode(rec, &resumed)
	s.Equal("Started", resumed.Status)
	s.Equal(30, resumed.PausedMinutes)

	s.clock.Advance(40 * time.Minute)
	rec = s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/finish", map[string]int{
		"goodUnits": 3000,
		"badUnits":  0,
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var finished dto.OrderView
	s.decode(rec, &finished)
	s.Equal("Finished", finished.Status)
	s.Require().NotNil(finished.Metrics)
	s.InDelta(0.5, finished.Metrics.OEE, 1e-9)
	s.Require().NotNil(finished.FinishedAt)
	s.True(t0.Add(90 * time.Minute).Equal(*finished.FinishedAt))

	rec = s.do(http.MethodGet, "/api/v1/orders/"+created.ID+"/metrics", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var summary dto.MetricsView
	s.decode(rec, &summary)
	s.Equal("OF-2025-0042", summary.Code)
	s.InDelta(0.666667, summary.Snapshot.Availability, 1e-9)
	s.InDelta(0.75, summary.Snapshot.Performance, 1e-9)

	rec = s.do(http.MethodGet, "/api/v1/orders/"+created.ID+"/pauses/statistics", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var stats dto.PauseStatisticsView
	s.decode(rec, &stats)
	s.Equal(1, stats.TotalPauses)
	s.Equal(30, stats.PausedMinutes)

	rec = s.do(http.MethodDelete, "/api/v1/orders/"+created.ID, nil)
	s.Equal(http.StatusBadRequest, rec.Code, "finished orders cannot be deleted")
}

func (s *APITestSuite) TestCreateOrder_ReportsEveryInvalidField() {
	rec := s.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"code":        " ",
		"targetUnits": "many",
	})

	s.Equal(http.StatusBadRequest, rec.Code)
	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	s.decode(rec, &body)
	s.Equal(http.StatusBadRequest, body.Code)
	s.Contains(body.Message, "order code")
	s.Contains(body.Message, "target units")
}

func (s *APITestSuite) TestCreateOrder_RejectsWrongJSONTypes() {
	rec := s.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"code":        "OF-1",
		"targetUnits": true,
	})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "targetUnits")
}

func (s *APITestSuite) TestCreateOrder_DuplicateCode() {
	s.createOrder("OF-1")

	rec := s.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"code": "OF-1", "articleCode": "A", "productName": "P", "targetUnits": 10, "targetBoxes": 1,
	})

	s.Equal(http.StatusConflict, rec.Code, rec.Body.String())
}

func (s *APITestSuite) TestStart_SecondOrderConflicts() {
	first := s.createOrder("OF-1")
	second := s.createOrder("OF-2")
	s.startOrder(first.ID)

	rec := s.do(http.MethodPost, "/api/v1/orders/"+second.ID+"/start", nil)

	s.Equal(http.StatusConflict, rec.Code, rec.Body.String())
}

func (s *APITestSuite) TestOrderIDs() {
	rec := s.do(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/orders/6f1f8f4e-2f7e-4f59-9a53-0d1d2d6b8f10", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestAdjustCounter() {
	created := s.createOrder("OF-1")

	rec := s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/counters/goodUnits", map[string]any{"mode": "increment", "amount": 48})
	s.Equal(http.StatusBadRequest, rec.Code, "counters are frozen before start")

	s.startOrder(created.ID)
	rec = s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/counters/goodUnits", map[string]any{"mode": "increment", "amount": 48})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var view dto.OrderView
	s.decode(rec, &view)
	s.Equal(48, view.GoodUnits)
	s.Equal(2, view.Boxes)

	rec = s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/counters/rejectedUnits", map[string]any{"mode": "set", "amount": 3})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/counters/pallets", map[string]any{"mode": "increment", "amount": 1})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestAdjustCounter_CannotOverflow() {
	created := s.createOrder("OF-1")
	s.startOrder(created.ID)
	path := "/api/v1/orders/" + created.ID + "/counters/"

	rec := s.do(http.MethodPost, path+"boxes", `{"mode":"set","amount":4611686018427387903}`)
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, path+"goodUnits", map[string]any{"mode": "set", "amount": 1_000_000_000})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, path+"goodUnits", map[string]any{"mode": "increment", "amount": 1})
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, path+"boxes", map[string]any{"mode": "set", "amount": 50_000_000})
	s.Equal(http.StatusBadRequest, rec.Code, "50M boxes of 24 units pass the cap")

	rec = s.do(http.MethodGet, "/api/v1/orders/"+created.ID, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var view dto.OrderView
	s.decode(rec, &view)
	s.Equal(1_000_000_000, view.GoodUnits)
	s.Equal(41_666_666, view.Boxes)
}

func (s *APITestSuite) TestPause_UnknownType() {
	created := s.createOrder("OF-1")
	s.startOrder(created.ID)

	rec := s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/pause", map[string]string{"type": "Café"})

	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
}

func (s *APITestSuite) TestUpdatePause() {
	created := s.createOrder("OF-1")
	s.startOrder(created.ID)
	rec := s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/pause", map[string]string{"type": string(pause.Setup)})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var paused commands.PauseOrderResult
	s.decode(rec, &paused)

	rec = s.do(http.MethodPatch, "/api/v1/pauses/"+paused.Pause.ID, map[string]string{"type": string(pause.ShiftChange), "comment": "relevo"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var view dto.PauseView
	s.decode(rec, &view)
	s.Equal(string(pause.ShiftChange), view.Type)
	s.False(view.CountsTowardDowntime)
	s.Equal("relevo", view.Comment)

	rec = s.do(http.MethodGet, "/api/v1/pauses/"+paused.Pause.ID, nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/orders/"+created.ID+"/pauses", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var pauses []dto.PauseView
	s.decode(rec, &pauses)
	s.Len(pauses, 1)
}

func (s *APITestSuite) TestUpdateAndDeleteOrder() {
	created := s.createOrder("OF-1")

	rec := s.do(http.MethodPatch, "/api/v1/orders/"+created.ID, map[string]any{"productName": "Gel 1L", "targetUnits": 8000})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var view dto.OrderView
	s.decode(rec, &view)
	s.Equal("Gel 1L", view.ProductName)
	s.InDelta(2.0, view.EstimatedHours, 1e-9)

	rec = s.do(http.MethodDelete, "/api/v1/orders/"+created.ID, nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/orders/"+created.ID, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestCleaningOrders() {
	rec := s.do(http.MethodPost, "/api/v1/cleaning-orders", map[string]any{"description": "Limpieza tolva"})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created dto.CleaningView
	s.decode(rec, &created)
	s.Equal("Created", created.Status)
	s.True(t0.Equal(created.CreatedAt))

	path := "/api/v1/cleaning-orders/" + created.ID

	rec = s.do(http.MethodPost, path+"/finish", nil)
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, path+"/start", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodDelete, path, nil)
	s.Equal(http.StatusBadRequest, rec.Code, "a started cleaning cannot be deleted")

	rec = s.do(http.MethodPatch, path, map[string]any{"description": "Limpieza tolva y cinta"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	s.clock.Advance(90 * time.Second)
	rec = s.do(http.MethodPost, path+"/finish", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var finished dto.CleaningView
	s.decode(rec, &finished)
	s.Equal("Finished", finished.Status)
	s.Equal("Limpieza tolva y cinta", finished.Description)
	s.Require().NotNil(finished.DurationSeconds)
	s.Equal(90, *finished.DurationSeconds)

	rec = s.do(http.MethodPost, "/api/v1/cleaning-orders", map[string]any{"description": "Limpieza cinta"})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var second dto.CleaningView
	s.decode(rec, &second)

	rec = s.do(http.MethodGet, "/api/v1/cleaning-orders?status=finished", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var list []dto.CleaningView
	s.decode(rec, &list)
	s.Require().Len(list, 1)
	s.Equal(created.ID, list[0].ID)

	rec = s.do(http.MethodDelete, "/api/v1/cleaning-orders/"+second.ID, nil)
	s.Equal(http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, "/api/v1/cleaning-orders/"+second.ID, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestCleaningOrders_RequireDescription() {
	rec := s.do(http.MethodPost, "/api/v1/cleaning-orders", map[string]any{"description": "   "})
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/cleaning-orders", map[string]any{})
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
}

func (s *APITestSuite) TestListOrders() {
	s.createOrder("OF-1")
	s.clock.Advance(time.Minute)
	second := s.createOrder("OF-2")
	s.startOrder(second.ID)

	rec := s.do(http.MethodGet, "/api/v1/orders", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var all []dto.OrderView
	s.decode(rec, &all)
	s.Require().Len(all, 2)
	s.Equal("OF-2", all[0].Code)

	rec = s.do(http.MethodGet, "/api/v1/orders?status=started", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var started []dto.OrderView
	s.decode(rec, &started)
	s.Require().Len(started, 1)
	s.Equal("OF-2", started[0].Code)

	rec = s.do(http.MethodGet, "/api/v1/orders?status=sleeping", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestSimulateTimeAndLiveMetrics() {
	created := s.createOrder("OF-1")
	s.startOrder(created.ID)

	rec := s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/simulate-time", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var view dto.OrderView
	s.decode(rec, &view)
	s.Require().NotNil(view.StartedAt)
	s.True(t0.Add(-time.Hour).Equal(*view.StartedAt))

	rec = s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/simulate-time", map[string]int{"minutes": 600_000})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/live-metrics", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var live []dto.LiveMetricsView
	s.decode(rec, &live)
	s.Require().Len(live, 1)
	s.Equal(60, live[0].Snapshot.TotalMinutes)

	rec = s.do(http.MethodGet, "/api/v1/live-metrics?orderId="+created.ID, nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/live-metrics?orderId=nope", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestPauseTypes() {
	rec := s.do(http.MethodGet, "/api/v1/pauses/types", nil)

	s.Require().Equal(http.StatusOK, rec.Code)
	var entries []pause.CatalogEntry
	s.decode(rec, &entries)
	s.Len(entries, 12)
}

func (s *APITestSuite) TestOperationalEndpoints() {
	rec := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"storage":"memory"`)

	rec = s.do(http.MethodGet, "/openapi.yaml", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "openapi: 3.0.3")

	s.createOrder("OF-1")
	rec = s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `production_events_total{event="order:created"} 1`)

	rec = s.do(http.MethodGet, "/swagger/index.html", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *APITestSuite) TestWebsocketReceivesEvents() {
	server := httptest.NewServer(s.e)
	defer server.Close()

	conn, _, err := ws.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	s.Require().NoError(err)
	defer conn.Close()

	var msg struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	s.Require().NoError(conn.ReadJSON(&msg))
	s.Equal("server:status", msg.Event)

	s.createOrder("OF-1")

	s.Require().NoError(conn.ReadJSON(&msg))
	s.Equal("order:created", msg.Event)
	s.Contains(string(msg.Data), `"code":"OF-1"`)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
