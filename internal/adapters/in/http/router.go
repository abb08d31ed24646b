package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const apiPrefix = "/api/v1"

// RouterOptions carries the non-API endpoints mounted next to the REST routes.
type RouterOptions struct {
	Logger *slog.Logger
	// Metrics serves /metrics. Optional.
	Metrics http.Handler
	// Events serves the websocket endpoint /ws. Optional.
	Events http.Handler
	// Health reports extra fields for /health. Optional.
	Health func() map[string]any
}

// NewRouter builds the echo instance with logging, request validation and every route.
func NewRouter(ctx context.Context, server *Server, opts RouterOptions) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(opts.Logger))
	e.Use(middleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		body := map[string]any{"status": "Healthy"}
		if opts.Health != nil {
			for k, v := range opts.Health() {
				body[k] = v
			}
		}
		return c.JSON(http.StatusOK, body)
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", OpenAPIDocument())
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics))
	}
	if opts.Events != nil {
		e.GET("/ws", echo.WrapHandler(opts.Events))
	}

	api := e.Group(apiPrefix, validator)

	api.GET("/orders", server.ListOrders)
	api.POST("/orders", server.CreateOrder)
	api.GET("/orders/:id", server.GetOrder)
	api.PATCH("/orders/:id", server.UpdateOrderDetails)
	api.DELETE("/orders/:id", server.DeleteOrder)
	api.POST("/orders/:id/start", server.StartOrder)
	api.POST("/orders/:id/pause", server.PauseOrder)
	api.POST("/orders/:id/finish", server.FinishOrder)
	api.POST("/orders/:id/counters/:counter", server.AdjustCounter)
	api.POST("/orders/:id/simulate-time", server.SimulateElapsedTime)
	api.GET("/orders/:id/metrics", server.GetOrderMetrics)
	api.GET("/orders/:id/pauses", server.ListPauses)
	api.GET("/orders/:id/pauses/statistics", server.GetPauseStatistics)

	api.GET("/live-metrics", server.GetLiveMetrics)

	api.GET("/pauses/types", server.ListPauseTypes)
	api.GET("/pauses/:pauseId", server.GetPause)
	api.PATCH("/pauses/:pauseId", server.UpdatePause)
	api.POST("/pauses/:pauseId/resume", server.ResumePause)

	api.GET("/cleaning-orders", server.ListCleanings)
	api.POST("/cleaning-orders", server.CreateCleaning)
	api.GET("/cleaning-orders/:id", server.GetCleaning)
	api.PATCH("/cleaning-orders/:id", server.UpdateCleaning)
	api.DELETE("/cleaning-orders/:id", server.DeleteCleaning)
	api.POST("/cleaning-orders/:id/start", server.StartCleaning)
	api.POST("/cleaning-orders/:id/finish", server.FinishCleaning)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				logger.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	})
}
