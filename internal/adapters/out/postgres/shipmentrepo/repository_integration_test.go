package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/adapters/out/postgres/shipmentrepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ShipmentRepositoryIntegrationTestSuite verifies shipment persistence against
// a PostgreSQL container, including the optimistic version check and the
// cutoff-based sweep queries.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&shipmentrepo.ShipmentDTO{}))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAddAndGetRoundTrip() {
	ctx := context.Background()

	sh := suite.bookShipment(shipment.COD, decimal.NewFromInt(1499))
	suite.Require().NoError(suite.repository.Add(ctx, sh))

	loaded, err := suite.repository.Get(ctx, sh.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(sh))
	suite.Equal(sh.AWB().String(), loaded.AWB().String())
	suite.Equal(shipment.Pending, loaded.Status())
	suite.Equal(shipment.PaymentPending, loaded.PaymentStatus())
	suite.True(loaded.CODAmount().Equal(decimal.NewFromInt(1499)))

	byAWB, err := suite.repository.GetByAWB(ctx, sh.AWB())
	suite.Require().NoError(err)
	suite.True(byAWB.IsEqual(sh))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_UnknownID_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflicts() {
	ctx := context.Background()

	sh := suite.bookShipment(shipment.Prepaid, decimal.Zero)
	suite.Require().NoError(suite.repository.Add(ctx, sh))

	// Two clients load the same row.
	first, err := suite.repository.Get(ctx, sh.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, sh.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(first.AssignPickup(kernel.NewUUID(), now))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.AssignPickup(kernel.NewUUID(), now))
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_BumpsStoredVersion() {
	ctx := context.Background()

	sh := suite.bookShipment(shipment.Prepaid, decimal.Zero)
	suite.Require().NoError(suite.repository.Add(ctx, sh))

	suite.Require().NoError(sh.AssignPickup(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, sh))

	loaded, err := suite.repository.Get(ctx, sh.ID())
	suite.Require().NoError(err)
	suite.Equal(2, loaded.Version())
	suite.Equal(shipment.PickupAssigned, loaded.Status())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetAllByAWBs_SkipsUnknownNumbers() {
	ctx := context.Background()

	known := suite.bookShipment(shipment.Prepaid, decimal.Zero)
	suite.Require().NoError(suite.repository.Add(ctx, known))

	unknown := shipment.NewAWB()

	found, err := suite.repository.GetAllByAWBs(ctx, []shipment.AWB{known.AWB(), unknown})

	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.True(found[0].IsEqual(known))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestSweepQueries_RespectCutoffs() {
	ctx := context.Background()
	now := time.Now().UTC()

	oldPending := suite.bookShipmentAt(now.Add(-30 * time.Hour))
	freshPending := suite.bookShipmentAt(now.Add(-1 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, oldPending))
	suite.Require().NoError(suite.repository.Add(ctx, freshPending))

	pending, err := suite.repository.GetAllPendingOlderThan(ctx, now.Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].IsEqual(oldPending))

	inDelivery, err := suite.repository.GetAllInDeliveryOlderThan(ctx, now.Add(-72*time.Hour))
	suite.Require().NoError(err)
	suite.Empty(inDelivery)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) bookShipment(
	method shipment.PaymentMethod,
	codAmount decimal.Decimal,
) *shipment.Shipment {
	sh, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(),
		"Asha Rao", "9876543210", "12 Lake View Road",
		method, codAmount,
		nil, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return sh
}

func (suite *ShipmentRepositoryIntegrationTestSuite) bookShipmentAt(createdAt time.Time) *shipment.Shipment {
	sh, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(),
		"Asha Rao", "9876543210", "12 Lake View Road",
		shipment.Prepaid, decimal.Zero,
		nil, createdAt,
	)
	suite.Require().NoError(err)
	return sh
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
