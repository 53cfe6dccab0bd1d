package queries_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/adapters/out/postgres/shipmentrepo"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type SLAQueryHandlersTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	statsHandler queries.GetSLAStatisticsQueryHandler
	checkHandler queries.CheckShipmentSLAQueryHandler
	repo         *shipmentrepo.GormShipmentRepository
}

func (suite *SLAQueryHandlersTestSuite) SetupSuite() {
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

	policy, err := services.NewSLAPolicy(24*time.Hour, 72*time.Hour, 48*time.Hour)
	suite.Require().NoError(err)

	suite.statsHandler = queries.NewGetSLAStatisticsQueryHandler(db, policy)
	suite.checkHandler = queries.NewCheckShipmentSLAQueryHandler(db, policy)
	suite.repo = shipmentrepo.NewGormShipmentRepository(db, noopTracker{})
}

func (suite *SLAQueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments").Error)
}

func (suite *SLAQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SLAQueryHandlersTestSuite) TestStatistics_CountsEachBreachingBucket() {
	ctx := context.Background()
	now := time.Now().UTC()

	// Breaching rows.
	suite.seed(shipmentSeed{status: shipment.Pending, createdAt: now.Add(-30 * time.Hour)})
	suite.seed(shipmentSeed{
		status:    shipment.OutForDelivery,
		hub:       "MAA-01",
		createdAt: now.Add(-80 * time.Hour),
		updatedAt: now.Add(-1 * time.Hour),
	})
	// Old and silent: counts against delivery and staleness at once.
	suite.seed(shipmentSeed{
		status:    shipment.InTransit,
		createdAt: now.Add(-100 * time.Hour),
		updatedAt: now.Add(-50 * time.Hour),
	})

	// Healthy rows that must not be counted.
	suite.seed(shipmentSeed{status: shipment.Pending, createdAt: now.Add(-2 * time.Hour)})
	suite.seed(shipmentSeed{
		status:    shipment.InTransit,
		createdAt: now.Add(-10 * time.Hour),
		updatedAt: now.Add(-1 * time.Hour),
	})
	delivered := now.Add(-90 * time.Hour)
	suite.seed(shipmentSeed{
		status:    shipment.Delivered,
		createdAt: now.Add(-120 * time.Hour),
		updatedAt: delivered,
		delivered: &delivered,
	})

	query, err := queries.NewGetSLAStatisticsQuery(now)
	suite.Require().NoError(err)

	resp, err := suite.statsHandler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(1, resp.PickupOverdue)
	suite.Equal(2, resp.DeliveryOverdue)
	suite.Equal(1, resp.InTransitStale)
	suite.Equal(4, resp.TotalBreaching())
	suite.Equal(now, resp.GeneratedAt)
}

func (suite *SLAQueryHandlersTestSuite) TestCheck_ReportsEveryViolatedRule() {
	ctx := context.Background()
	now := time.Now().UTC()

	stale := suite.seed(shipmentSeed{
		status:    shipment.InTransit,
		createdAt: now.Add(-100 * time.Hour),
		updatedAt: now.Add(-50 * time.Hour),
	})

	query, err := queries.NewCheckShipmentSLAQuery(stale.AWB(), now)
	suite.Require().NoError(err)

	resp, err := suite.checkHandler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(stale.AWB().String(), resp.AWB)
	suite.Equal("in_transit", resp.Status)
	suite.Require().Len(resp.Violations, 2)

	rules := make([]string, 0, len(resp.Violations))
	for _, v := range resp.Violations {
		rules = append(rules, v.Rule)
		suite.Positive(v.Overdue)
	}
	suite.ElementsMatch([]string{"delivery_overdue", "in_transit_stale"}, rules)
}

func (suite *SLAQueryHandlersTestSuite) TestCheck_HealthyShipmentHasNoViolations() {
	ctx := context.Background()
	now := time.Now().UTC()

	fresh := suite.seed(shipmentSeed{status: shipment.Pending, createdAt: now.Add(-1 * time.Hour)})

	query, err := queries.NewCheckShipmentSLAQuery(fresh.AWB(), now)
	suite.Require().NoError(err)

	resp, err := suite.checkHandler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.NotNil(resp.Violations)
	suite.Empty(resp.Violations)
}

func (suite *SLAQueryHandlersTestSuite) TestCheck_LeavesTheRowUntouched() {
	ctx := context.Background()
	now := time.Now().UTC()

	stale := suite.seed(shipmentSeed{
		status:    shipment.InTransit,
		createdAt: now.Add(-100 * time.Hour),
		updatedAt: now.Add(-50 * time.Hour),
	})

	query, err := queries.NewCheckShipmentSLAQuery(stale.AWB(), now)
	suite.Require().NoError(err)
	_, err = suite.checkHandler.Handle(ctx, query)
	suite.Require().NoError(err)

	stored, err := suite.repo.Get(ctx, stale.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.InTransit, stored.Status())
	suite.Equal(1, stored.Version())
}

func (suite *SLAQueryHandlersTestSuite) seed(s shipmentSeed) *shipment.Shipment {
	sh := restoreSeedShipment(suite.T(), s)
	suite.Require().NoError(suite.repo.Add(context.Background(), sh))
	return sh
}

func TestSLAQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(SLAQueryHandlersTestSuite))
}
