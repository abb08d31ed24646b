package http

import (
	"log/slog"
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	StartOrder         commands.StartOrderCommandHandler
	PauseOrder         commands.PauseOrderCommandHandler
	FinishOrder        commands.FinishOrderCommandHandler
	ResumePause        commands.ResumePauseCommandHandler
	UpdatePause        commands.UpdatePauseCommandHandler
	UpdateOrderDetails commands.UpdateOrderDetailsCommandHandler
	DeleteOrder        commands.DeleteOrderCommandHandler
	AdjustCounter      commands.AdjustCounterCommandHandler
	SimulateTime       commands.SimulateElapsedTimeCommandHandler
	Cleaning           commands.CleaningCommandHandler

	GetOrder       queries.GetOrderQueryHandler
	ListOrders     queries.ListOrdersQueryHandler
	GetOrderMetric queries.GetOrderMetricsQueryHandler
	LiveMetrics    queries.GetLiveMetricsQueryHandler
	Pauses         queries.PauseQueryHandler
	Cleanings      queries.CleaningQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
	}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	query, err := queries.NewListOrdersQuery(c.QueryParam("status"))
	if err != nil {
		return s.fail(c, err)
	}

	orders, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), req.input())
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateOrderDetails handles PATCH /api/v1/orders/{id}.
func (s *Server) UpdateOrderDetails(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req updateOrderRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(id, req.update())
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.UpdateOrderDetails.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.h.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// StartOrder handles POST /api/v1/orders/{id}/start.
func (s *Server) StartOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewStartOrderCommand(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.StartOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// PauseOrder handles POST /api/v1/orders/{id}/pause.
func (s *Server) PauseOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req pauseOrderRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewPauseOrderCommand(id, req.Type, req.Comment)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.h.PauseOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// FinishOrder handles POST /api/v1/orders/{id}/finish.
func (s *Server) FinishOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req finishOrderRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewFinishOrderCommand(id, req.closing())
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.FinishOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// AdjustCounter handles POST /api/v1/orders/{id}/counters/{counter}.
func (s *Server) AdjustCounter(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	counter, err := commands.ParseCounter(c.Param("counter"))
	if err != nil {
		return s.fail(c, err)
	}

	var req adjustCounterRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	mode, err := commands.ParseAdjustMode(req.Mode)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAdjustCounterCommand(id, counter, mode, req.Amount)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.AdjustCounter.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// SimulateElapsedTime handles POST /api/v1/orders/{id}/simulate-time.
func (s *Server) SimulateElapsedTime(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req simulateTimeRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewSimulateElapsedTimeCommand(id, req.Minutes)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.SimulateTime.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetOrderMetrics handles GET /api/v1/orders/{id}/metrics.
func (s *Server) GetOrderMetrics(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderMetricsQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.GetOrderMetric.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// ListPauses handles GET /api/v1/orders/{id}/pauses.
func (s *Server) ListPauses(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListPausesQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	pauses, err := s.h.Pauses.List(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, pauses)
}

// GetPauseStatistics handles GET /api/v1/orders/{id}/pauses/statistics.
func (s *Server) GetPauseStatistics(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetPauseStatisticsQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	stats, err := s.h.Pauses.Statistics(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetLiveMetrics handles GET /api/v1/live-metrics.
func (s *Server) GetLiveMetrics(c echo.Context) error {
	var orderID *uuid.UUID
	err := runtime.BindQueryParameter("form", true, false, "orderId", c.QueryParams(), &orderID)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	var filter *kernel.UUID
	if orderID != nil {
		id, err := kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return s.fail(c, err)
		}
		filter = &id
	}

	query, err := queries.NewGetLiveMetricsQuery(filter)
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.h.LiveMetrics.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// ListPauseTypes handles GET /api/v1/pauses/types.
func (s *Server) ListPauseTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, s.h.Pauses.Types())
}

// GetPause handles GET /api/v1/pauses/{pauseId}.
func (s *Server) GetPause(c echo.Context) error {
	id, err := pathUUID(c, "pauseId")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetPauseQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.Pauses.Get(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdatePause handles PATCH /api/v1/pauses/{pauseId}.
func (s *Server) UpdatePause(c echo.Context) error {
	id, err := pathUUID(c, "pauseId")
	if err != nil {
		return s.fail(c, err)
	}

	var req updatePauseRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdatePauseCommand(id, req.Comment, req.Type)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.UpdatePause.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// ResumePause handles POST /api/v1/pauses/{pauseId}/resume.
func (s *Server) ResumePause(c echo.Context) error {
	id, err := pathUUID(c, "pauseId")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewResumePauseCommand(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.ResumePause.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// pathUUID binds a UUID path parameter the way generated servers do.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}
