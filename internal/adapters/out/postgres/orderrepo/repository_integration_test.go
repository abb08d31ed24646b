package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/metrics"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pause"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var t0 = time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite runs the order repository against a
// real PostgreSQL so the partial unique indexes are exercised.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	rate       metrics.ReferenceRate
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.rate, err = metrics.NewReferenceRate(metrics.DefaultReferenceRate)
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrips() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("OF-1")

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.ID().IsEqual(loaded.ID()))
	suite.Equal("OF-1", loaded.Code())
	suite.Equal(order.Created, loaded.Status())
	suite.Equal(4000, loaded.TargetUnits())
	suite.Require().NotNil(loaded.UnitsPerBox())
	suite.Equal(24, *loaded.UnitsPerBox())
	suite.InDelta(1.0, loaded.EstimatedHours(), 1e-9)
	suite.True(t0.Equal(loaded.CreatedAt()))
	suite.Nil(loaded.Metrics())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateCode_Conflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("OF-1")))

	err := suite.repository.Add(ctx, suite.createTestOrder("OF-1"))

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
	suite.Contains(err.Error(), "OF-1")
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder_Rejected() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCountersAndStatus() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("OF-1")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Start(nil, t0))
	suite.Require().NoError(testOrder.SetGoodUnits(480))
	suite.Require().NoError(testOrder.IncrementRejected(7))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Started, loaded.Status())
	suite.Require().NotNil(loaded.StartedAt())
	suite.True(t0.Equal(*loaded.StartedAt()))
	suite.Equal(480, loaded.Counters().GoodUnits)
	suite.Equal(20, loaded.Counters().Boxes)
	suite.Equal(7, loaded.Counters().RejectedUnits)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesZeroValues() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("OF-1")
	suite.Require().NoError(testOrder.Start(nil, t0))
	suite.Require().NoError(testOrder.SetGoodUnits(48))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.SetGoodUnits(0))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(0, loaded.Counters().GoodUnits)
	suite.Equal(0, loaded.Counters().Boxes)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_NotFound() {
	err := suite.repository.Update(context.Background(), suite.createTestOrder("OF-1"))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_SecondStartedOrder_Conflict() {
	ctx := context.Background()
	first := suite.createTestOrder("OF-1")
	second := suite.createTestOrder("OF-2")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	suite.Require().NoError(first.Start(nil, t0))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Start(nil, t0))
	err := suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Contains(err.Error(), "already started")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFinishedOrder_KeepsMetricsSnapshot() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("OF-1")
	suite.Require().NoError(testOrder.Start(nil, t0))
	suite.Require().NoError(testOrder.SetGoodUnits(2000))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	engine, err := services.NewMetricsEngine(suite.rate)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.Finish(pause.NewLedger(nil), order.ClosingInputs{}, engine, t0.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Finished, loaded.Status())
	suite.Require().NotNil(loaded.Metrics())
	suite.Equal(*testOrder.Metrics(), *loaded.Metrics())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetStarted() {
	ctx := context.Background()

	started, err := suite.repository.GetStarted(ctx)
	suite.Require().NoError(err)
	suite.Nil(started)

	idle := suite.createTestOrder("OF-1")
	running := suite.createTestOrder("OF-2")
	suite.Require().NoError(running.Start(nil, t0))
	suite.Require().NoError(suite.repository.Add(ctx, idle))
	suite.Require().NoError(suite.repository.Add(ctx, running))

	started, err = suite.repository.GetStarted(ctx)
	suite.Require().NoError(err)
	suite.Require().NotNil(started)
	suite.True(running.ID().IsEqual(started.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_NewestFirstWithStatusFilter() {
	ctx := context.Background()
	older := suite.createTestOrderAt("OF-1", t0)
	newer := suite.createTestOrderAt("OF-2", t0.Add(time.Minute))
	suite.Require().NoError(newer.Start(nil, t0.Add(2*time.Minute)))
	suite.Require().NoError(suite.repository.Add(ctx, older))
	suite.Require().NoError(suite.repository.Add(ctx, newer))

	all, err := suite.repository.List(ctx, nil)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal("OF-2", all[0].Code())
	suite.Equal("OF-1", all[1].Code())

	created := order.Created
	filtered, err := suite.repository.List(ctx, &created)
	suite.Require().NoError(err)
	suite.Require().Len(filtered, 1)
	suite.Equal("OF-1", filtered[0].Code())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("OF-1")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(suite.repository.Delete(ctx, testOrder.ID()))
	suite.assertOrderCount(0)

	err := suite.repository.Delete(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_InvalidID() {
	_, err := suite.repository.Get(context.Background(), kernel.UUID{})

	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(code string) *order.Order {
	return suite.createTestOrderAt(code, t0)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderAt(code string, createdAt time.Time) *order.Order {
	unitsPerBox := 24
	o, err := order.NewOrder(kernel.NewUUID(), order.Params{
		Code:        code,
		ArticleCode: "ART-118",
		ProductName: "Gel hidroalcohólico 500ml",
		TargetUnits: 4000,
		TargetBoxes: 167,
		UnitsPerBox: &unitsPerBox,
	}, suite.rate, createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
