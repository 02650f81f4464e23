package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

type GetShipmentQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetShipmentQueryHandler
	shipmentRepo *shipmentrepo.GormShipmentRepository
}

func (suite *GetShipmentQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetShipmentQueryHandler(db)
	suite.shipmentRepo = shipmentrepo.NewGormShipmentRepository(db)
}

func (suite *GetShipmentQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetShipmentQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments").Error)
}

func (suite *GetShipmentQueryHandlerTestSuite) newShipment(ownerID kernel.UUID) *shipment.Shipment {
	location, err := kernel.NewGeoPoint(30.0444, 31.2357)
	suite.Require().NoError(err)

	aggregate, err := shipment.NewShipment(
		kernel.NewUUID(), ownerID, "laptop",
		"John Smith", "Egypt", "12 Tahrir Square, Cairo", 2.5, location)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandle_ReturnsShipmentByTrackingID() {
	ctx := context.Background()
	ownerID := kernel.NewUUID()
	aggregate := suite.newShipment(ownerID)
	suite.Require().NoError(suite.shipmentRepo.Add(ctx, aggregate))

	query, err := queries.NewGetShipmentQuery(aggregate.TrackingID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), result.ID)
	suite.Equal(aggregate.TrackingID().String(), result.TrackingID)
	suite.Equal(ownerID, result.OwnerID)
	suite.Nil(result.DriverID)
	suite.Equal("laptop", result.Title)
	suite.Equal("John Smith", result.ReceiverName)
	suite.Equal("Egypt", result.ReceiverCountry)
	suite.Equal("12 Tahrir Square, Cairo", result.ReceiverAddress)
	suite.InDelta(2.5, result.Weight, 1e-9)
	suite.Equal(shipment.Pending.String(), result.State)
	suite.Nil(result.ScheduledAt)
	suite.Nil(result.EstimatedShippingDate)
	suite.InDelta(30.0444, result.Lat, 1e-9)
	suite.InDelta(31.2357, result.Lon, 1e-9)
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandle_ScheduledShipmentCarriesTimestamps() {
	ctx := context.Background()
	aggregate := suite.newShipment(kernel.NewUUID())
	driverID := kernel.NewUUID()

	scheduledAt := time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)
	suite.Require().NoError(aggregate.Schedule(scheduledAt, 3.5))
	suite.Require().NoError(aggregate.AssignDriver(driverID))
	suite.Require().NoError(suite.shipmentRepo.Add(ctx, aggregate))

	query, err := queries.NewGetShipmentQuery(aggregate.TrackingID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(shipment.Scheduled.String(), result.State)
	suite.Require().NotNil(result.DriverID)
	suite.Equal(driverID, *result.DriverID)
	suite.Require().NotNil(result.ScheduledAt)
	suite.True(scheduledAt.Equal(result.ScheduledAt.UTC()))
	suite.Require().NotNil(result.EstimatedShippingDate)
	suite.Equal("2020-05-04", result.EstimatedShippingDate.UTC().Format("2006-01-02"))
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandle_UnknownTrackingID() {
	query, err := queries.NewGetShipmentQuery(kernel.NewTrackingID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandle_InvalidQuery() {
	_, err := suite.handler.Handle(context.Background(), queries.GetShipmentQuery{})

	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetShipmentQueryIsNotConstructed)
}

func TestGetShipmentQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetShipmentQueryHandlerTestSuite))
}
