package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpadapter "production/internal/adapters/in/http"
	"production/internal/adapters/out/memory"
	"production/internal/adapters/out/notify"
	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/telemetry"
	"production/internal/adapters/out/websocket"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/metrics"
	"production/internal/core/domain/model/pause"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	logger     *slog.Logger
	clock      ports.Clock
	rate       metrics.ReferenceRate
	engine     *services.MetricsEngine
	catalog    *pause.Catalog
	uowFactory ports.UnitOfWorkFactory

	hub      *websocket.Hub
	recorder *telemetry.Recorder
	notifier ports.Notifier
}

// NewCompositionRoot wires the application. gormDB is only used, and then
// required, with the postgres storage driver.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, clock ports.Clock, logger *slog.Logger) (*CompositionRoot, error) {
	rate, err := metrics.NewReferenceRate(configs.ReferenceRate)
	if err != nil {
		return nil, err
	}
	engine, err := services.NewMetricsEngine(rate)
	if err != nil {
		return nil, err
	}

	var uowFactory ports.UnitOfWorkFactory
	switch configs.StorageDriver {
	case StorageDriverMemory:
		store := memory.NewStore()
		uowFactory = FuncUnitOfWorkFactory(func() ports.UnitOfWork {
			return store.UnitOfWork()
		})
	case StorageDriverPostgres:
		if gormDB == nil {
			return nil, errors.New("postgres storage driver needs a database connection")
		}
		uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	default:
		return nil, errors.New("unknown storage driver " + configs.StorageDriver)
	}

	recorder, err := telemetry.NewRecorder()
	if err != nil {
		return nil, err
	}
	hub := websocket.NewHub(logger)

	return &CompositionRoot{
		configs:    configs,
		logger:     logger,
		clock:      clock,
		rate:       rate,
		engine:     engine,
		catalog:    pause.DefaultCatalog(),
		uowFactory: uowFactory,
		hub:        hub,
		recorder:   recorder,
		notifier:   notify.NewFanout(logger, hub, recorder, notify.NewLog(logger)),
	}, nil
}

func (c *CompositionRoot) Hub() *websocket.Hub {
	return c.hub
}

func (c *CompositionRoot) Recorder() *telemetry.Recorder {
	return c.recorder
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.rate, c.clock, c.notifier)
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() commands.StartOrderCommandHandler {
	return commands.NewStartOrderCommandHandler(c.fullUoWFactory(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreatePauseOrderCommandHandler() commands.PauseOrderCommandHandler {
	return commands.NewPauseOrderCommandHandler(c.fullUoWFactory(), c.catalog, c.clock, c.notifier)
}

func (c *CompositionRoot) CreateFinishOrderCommandHandler() commands.FinishOrderCommandHandler {
	return commands.NewFinishOrderCommandHandler(c.fullUoWFactory(), c.engine, c.clock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateResumePauseCommandHandler() commands.ResumePauseCommandHandler {
	return commands.NewResumePauseCommandHandler(c.fullUoWFactory(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateUpdatePauseCommandHandler() commands.UpdatePauseCommandHandler {
	return commands.NewUpdatePauseCommandHandler(c.fullUoWFactory(), c.catalog, c.notifier)
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	return commands.NewUpdateOrderDetailsCommandHandler(c.orderUoWFactory(), c.rate, c.notifier)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAdjustCounterCommandHandler() commands.AdjustCounterCommandHandler {
	return commands.NewAdjustCounterCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateSimulateElapsedTimeCommandHandler() commands.SimulateElapsedTimeCommandHandler {
	return commands.NewSimulateElapsedTimeCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCleaningCommandHandler() commands.CleaningCommandHandler {
	return commands.NewCleaningCommandHandler(c.cleaningUoWFactory(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderMetricsQueryHandler() queries.GetOrderMetricsQueryHandler {
	return queries.NewGetOrderMetricsQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateGetLiveMetricsQueryHandler() queries.GetLiveMetricsQueryHandler {
	return queries.NewGetLiveMetricsQueryHandler(c.readUoWFactory(), c.engine, c.clock)
}

func (c *CompositionRoot) CreatePauseQueryHandler() queries.PauseQueryHandler {
	return queries.NewPauseQueryHandler(c.readUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateCleaningQueryHandler() queries.CleaningQueryHandler {
	return queries.NewCleaningQueryHandler(c.readUoWFactory())
}

// NewRouter builds the HTTP entry point with the API, /ws, /metrics and /health.
func (c *CompositionRoot) NewRouter(ctx context.Context) (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		StartOrder:         c.CreateStartOrderCommandHandler(),
		PauseOrder:         c.CreatePauseOrderCommandHandler(),
		FinishOrder:        c.CreateFinishOrderCommandHandler(),
		ResumePause:        c.CreateResumePauseCommandHandler(),
		UpdatePause:        c.CreateUpdatePauseCommandHandler(),
		UpdateOrderDetails: c.CreateUpdateOrderDetailsCommandHandler(),
		DeleteOrder:        c.CreateDeleteOrderCommandHandler(),
		AdjustCounter:      c.CreateAdjustCounterCommandHandler(),
		SimulateTime:       c.CreateSimulateElapsedTimeCommandHandler(),
		Cleaning:           c.CreateCleaningCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		GetOrderMetric:     c.CreateGetOrderMetricsQueryHandler(),
		LiveMetrics:        c.CreateGetLiveMetricsQueryHandler(),
		Pauses:             c.CreatePauseQueryHandler(),
		Cleanings:          c.CreateCleaningQueryHandler(),
	}, c.logger)

	return httpadapter.NewRouter(ctx, server, httpadapter.RouterOptions{
		Logger:  c.logger,
		Metrics: c.recorder.Handler(),
		Events:  c.hub,
		Health: func() map[string]any {
			return map[string]any{
				"storage": c.configs.StorageDriver,
				"clients": c.hub.ClientCount(),
			}
		},
	})
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	liveMetrics := c.CreateGetLiveMetricsQueryHandler()
	return jobs.NewJobManager(
		jobs.NewLiveMetricsJob(liveMetrics, c.notifier, c.configs.LiveMetricsSchedule, c.logger),
	)
}

// Close disconnects websocket clients.
func (c *CompositionRoot) Close() {
	c.hub.Close()
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cleaningUoWFactory() commands.CleaningUoWFactory {
	return FuncCleaningUoWFactory(func() commands.CleaningUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) readUoWFactory() queries.ReadUoWFactory {
	return FuncReadUoWFactory(func() queries.ReadUoW {
		return c.uowFactory.Create()
	})
}

type FuncUnitOfWorkFactory func() ports.UnitOfWork

func (f FuncUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncCleaningUoWFactory func() commands.CleaningUoW

func (f FuncCleaningUoWFactory) Create() commands.CleaningUoW {
	return f()
}

type FuncReadUoWFactory func() queries.ReadUoW

func (f FuncReadUoWFactory) Create() queries.ReadUoW {
	return f()
}
