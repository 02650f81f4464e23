package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/deliveryrepo"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/adapters/out/postgres/subscriptionrepo"
	"shipping/internal/core/domain/model/delivery"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/subscription"
	"shipping/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite verifies that a shipment state change and
// the webhook task it enqueues commit or roll back as one transaction.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&subscriptionrepo.SubscriptionDTO{},
		&deliveryrepo.DeliveryDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments, subscriptions, deliveries").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) newShipment() *shipment.Shipment {
	location, err := kernel.NewGeoPoint(30.0444, 31.2357)
	suite.Require().NoError(err)

	aggregate, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(), "laptop",
		"John Smith", "Egypt", "12 Tahrir Square, Cairo", 2.5, location)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) newTask(sub *subscription.Subscription) *delivery.Delivery {
	task, err := delivery.NewDelivery(kernel.NewUUID(), sub,
		json.RawMessage(`{"state": "SCHEDULED"}`), time.Now().UTC())
	suite.Require().NoError(err)
	return task
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	aggregate := suite.newShipment()
	sub, err := subscription.NewSubscription(
		kernel.NewUUID(), aggregate.OwnerID(), subscription.ShipmentStateChanged,
		"https://hooks.example.com/shipping", nil, 1)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.SubscriptionRepository().Upsert(ctx, sub))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, suite.newTask(sub)))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	loaded, err := verify.ShipmentRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(aggregate))

	claimed, err := verify.DeliveryRepository().ClaimDue(ctx, time.Now().UTC(), 10)
	suite.Require().NoError(err)
	suite.Len(claimed, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsStateChangeAndTask() {
	ctx := context.Background()
	aggregate := suite.newShipment()
	sub, err := subscription.NewSubscription(
		kernel.NewUUID(), aggregate.OwnerID(), subscription.ShipmentStateChanged,
		"https://hooks.example.com/shipping", nil, 1)
	suite.Require().NoError(err)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.ShipmentRepository().Add(ctx, aggregate))
	suite.Require().NoError(setup.SubscriptionRepository().Upsert(ctx, sub))
	suite.Require().NoError(setup.Commit(ctx))

	// transition and enqueue, then roll back
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(aggregate.Schedule(time.Now().UTC(), 2))
	suite.Require().NoError(uow.ShipmentRepository().Update(ctx, aggregate))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, suite.newTask(sub)))
	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	loaded, err := verify.ShipmentRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Pending, loaded.State())

	claimed, err := verify.DeliveryRepository().ClaimDue(ctx, time.Now().UTC(), 10)
	suite.Require().NoError(err)
	suite.Empty(claimed)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesOutsideTransaction() {
	// without Begin the repositories fall back to the main connection
	ctx := context.Background()
	uow := suite.factory.Create()

	aggregate := suite.newShipment()
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, aggregate))

	_, err := uow.ShipmentRepository().Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
