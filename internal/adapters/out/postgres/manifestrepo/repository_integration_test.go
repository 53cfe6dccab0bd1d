package manifestrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/adapters/out/postgres/manifestrepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/pkg/errs"

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

// ManifestRepositoryIntegrationTestSuite verifies manifest persistence against
// a PostgreSQL container, including the day-scoped number allocation.
type ManifestRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *manifestrepo.GormManifestRepository
	tracker    *MockAggregateTracker
}

func (suite *ManifestRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&manifestrepo.ManifestDTO{}))
}

func (suite *ManifestRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE manifests").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = manifestrepo.NewGormManifestRepository(suite.db, suite.tracker)
}

func (suite *ManifestRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ManifestRepositoryIntegrationTestSuite) TestAddAndGetRoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC()

	mf := suite.dispatchManifest(manifest.FormatNumber(now, 1), now)
	suite.Require().NoError(suite.repository.Add(ctx, mf))

	loaded, err := suite.repository.Get(ctx, mf.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(mf))
	suite.Equal(manifest.InTransit, loaded.Status())
	suite.Equal(mf.Number(), loaded.Number())

	byNumber, err := suite.repository.GetByNumber(ctx, mf.Number())
	suite.Require().NoError(err)
	suite.True(byNumber.IsEqual(mf))
}

func (suite *ManifestRepositoryIntegrationTestSuite) TestGetByNumber_Unknown_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetByNumber(ctx, manifest.FormatNumber(time.Now().UTC(), 999))

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ManifestRepositoryIntegrationTestSuite) TestNextNumberForDay_StartsAtOne() {
	ctx := context.Background()
	now := time.Now().UTC()

	number, err := suite.repository.NextNumberForDay(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(manifest.FormatNumber(now, 1), number)
}

func (suite *ManifestRepositoryIntegrationTestSuite) TestNextNumberForDay_IsGaplessWithinDay() {
	ctx := context.Background()
	now := time.Now().UTC()

	for seq := 1; seq <= 3; seq++ {
		number, err := suite.repository.NextNumberForDay(ctx, now)
		suite.Require().NoError(err)
		suite.Equal(manifest.FormatNumber(now, seq), number)

		mf := suite.dispatchManifest(number, now)
		suite.Require().NoError(suite.repository.Add(ctx, mf))
	}
}

func (suite *ManifestRepositoryIntegrationTestSuite) TestNextNumberForDay_ResetsAcrossDays() {
	ctx := context.Background()
	today := time.Now().UTC()

	number, err := suite.repository.NextNumberForDay(ctx, today)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, suite.dispatchManifest(number, today)))

	tomorrow := today.Add(24 * time.Hour)
	next, err := suite.repository.NextNumberForDay(ctx, tomorrow)

	suite.Require().NoError(err)
	suite.Equal(manifest.FormatNumber(tomorrow, 1), next)
}

func (suite *ManifestRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflicts() {
	ctx := context.Background()
	now := time.Now().UTC()

	mf := suite.dispatchManifest(manifest.FormatNumber(now, 1), now)
	suite.Require().NoError(suite.repository.Add(ctx, mf))

	first, err := suite.repository.Get(ctx, mf.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, mf.ID())
	suite.Require().NoError(err)

	result := manifest.Reconcile(nil, nil)
	suite.Require().NoError(first.Receive(result, now))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Receive(result, now))
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *ManifestRepositoryIntegrationTestSuite) dispatchManifest(
	number string,
	now time.Time,
) *manifest.Manifest {
	origin, err := kernel.NewHubCode("BLR-01")
	suite.Require().NoError(err)
	destination, err := kernel.NewHubCode("MAA-01")
	suite.Require().NoError(err)

	mf, err := manifest.NewManifest(kernel.NewUUID(), number, origin, destination, 5, now)
	suite.Require().NoError(err)
	return mf
}

func TestManifestRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ManifestRepositoryIntegrationTestSuite))
}
