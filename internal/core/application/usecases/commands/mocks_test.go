package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"production/internal/adapters/out/memory"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/metrics"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pause"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetStarted(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, status *order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct {
	MockOrderUoW
}

func (m *MockUoW) PauseRepository() ports.PauseRepository {
	args := m.Called()
	return args.Get(0).(ports.PauseRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Emit(event string, payload any) {
	m.Called(event, payload)
}

// recordingNotifier keeps every event for tests that run against the memory store.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Emit(event string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type memoryUoWFactory struct{ store *memory.Store }

func (f memoryUoWFactory) Create() commands.UoW { return f.store.UnitOfWork() }

type memoryOrderUoWFactory struct{ store *memory.Store }

func (f memoryOrderUoWFactory) Create() commands.OrderUoW { return f.store.UnitOfWork() }

type memoryCleaningUoWFactory struct{ store *memory.Store }

func (f memoryCleaningUoWFactory) Create() commands.CleaningUoW { return f.store.UnitOfWork() }

// line bundles every handler over one memory store, one manual clock and one notifier.
type line struct {
	store    *memory.Store
	clock    *clock.Manual
	notifier *recordingNotifier

	create   commands.CreateOrderCommandHandler
	start    commands.StartOrderCommandHandler
	pause    commands.PauseOrderCommandHandler
	finish   commands.FinishOrderCommandHandler
	resume   commands.ResumePauseCommandHandler
	edit     commands.UpdatePauseCommandHandler
	delete   commands.DeleteOrderCommandHandler
	details  commands.UpdateOrderDetailsCommandHandler
	adjust   commands.AdjustCounterCommandHandler
	simulate commands.SimulateElapsedTimeCommandHandler
	cleaning commands.CleaningCommandHandler
}

func newLine(t *testing.T) *line {
	t.Helper()

	rate, err := metrics.NewReferenceRate(metrics.DefaultReferenceRate)
	require.NoError(t, err)
	engine, err := services.NewMetricsEngine(rate)
	require.NoError(t, err)

	l := &line{
		store:    memory.NewStore(),
		clock:    clock.NewManual(t0),
		notifier: &recordingNotifier{},
	}
	uows := memoryUoWFactory{store: l.store}
	orderUoWs := memoryOrderUoWFactory{store: l.store}
	catalog := pause.DefaultCatalog()

	l.create = commands.NewCreateOrderCommandHandler(orderUoWs, rate, l.clock, l.notifier)
	l.start = commands.NewStartOrderCommandHandler(uows, l.clock, l.notifier)
	l.pause = commands.NewPauseOrderCommandHandler(uows, catalog, l.clock, l.notifier)
	l.finish = commands.NewFinishOrderCommandHandler(uows, engine, l.clock, l.notifier, discardLogger())
	l.resume = commands.NewResumePauseCommandHandler(uows, l.clock, l.notifier)
	l.edit = commands.NewUpdatePauseCommandHandler(uows, catalog, l.notifier)
	l.delete = commands.NewDeleteOrderCommandHandler(uows, l.notifier)
	l.details = commands.NewUpdateOrderDetailsCommandHandler(orderUoWs, rate, l.notifier)
	l.adjust = commands.NewAdjustCounterCommandHandler(orderUoWs, l.notifier)
	l.simulate = commands.NewSimulateElapsedTimeCommandHandler(orderUoWs, l.notifier)
	l.cleaning = commands.NewCleaningCommandHandler(memoryCleaningUoWFactory{store: l.store}, l.clock, l.notifier)
	return l
}

func (l *line) createOrder(t *testing.T, code string) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, commands.CreateOrderInput{
		Code:        code,
		ArticleCode: "ART-118",
		ProductName: "Gel 500ml",
		TargetUnits: "4000",
		TargetBoxes: "167",
		UnitsPerBox: "24",
	})
	require.NoError(t, err)
	_, err = l.create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return id
}

func (l *line) startOrder(t *testing.T, id kernel.UUID) error {
	t.Helper()
	cmd, err := commands.NewStartOrderCommand(id)
	require.NoError(t, err)
	_, err = l.start.Handle(t.Context(), cmd)
	return err
}

func (l *line) pauseOrder(t *testing.T, id kernel.UUID, pauseType string) (commands.PauseOrderResult, error) {
	t.Helper()
	cmd, err := commands.NewPauseOrderCommand(id, pauseType, "")
	require.NoError(t, err)
	return l.pause.Handle(t.Context(), cmd)
}

func (l *line) loadOrder(t *testing.T, id kernel.UUID) (*order.Order, []*pause.Pause) {
	t.Helper()
	ctx := t.Context()
	uow := l.store.UnitOfWork()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	o, err := uow.OrderRepository().Get(ctx, id)
	require.NoError(t, err)
	pauses, err := uow.PauseRepository().ListByOrder(ctx, id)
	require.NoError(t, err)
	return o, pauses
}

func intPtr(v int) *int { return &v }
