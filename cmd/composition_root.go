package cmd

import (
	"log/slog"

	"shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/estimation"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/webhook"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/services"
	"shipping/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use case handlers.
// All dependency construction happens here so the rest of the code stays
// free of wiring concerns.
type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	estimator     *estimation.LinearEstimator
	webhookSender *webhook.Sender
	retryPolicy   services.RetryPolicy
}

// NewCompositionRoot builds the object graph from the configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	store, err := config.StoreLocation()
	if err != nil {
		return CompositionRoot{}, err
	}
	systemLoad, err := config.SystemLoadValue()
	if err != nil {
		return CompositionRoot{}, err
	}

	estimator, err := estimation.NewLinearEstimator(store, systemLoad)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		estimator:     estimator,
		webhookSender: webhook.NewSender(),
		retryPolicy:   services.NewRetryPolicy(),
	}, nil
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateScheduleShipmentCommandHandler() commands.ScheduleShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewScheduleShipmentCommandHandler(f, c.estimator)
}

func (c *CompositionRoot) CreateUpdateShipmentStateCommandHandler() commands.UpdateShipmentStateCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipmentStateCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateSubscribeEventCommandHandler() commands.SubscribeEventCommandHandler {
	var f commands.SubscriptionUoWFactory = FuncSubscriptionUoWFactory(func() commands.SubscriptionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubscribeEventCommandHandler(f)
}

func (c *CompositionRoot) CreateUnsubscribeEventCommandHandler() commands.UnsubscribeEventCommandHandler {
	var f commands.SubscriptionUoWFactory = FuncSubscriptionUoWFactory(func() commands.SubscriptionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUnsubscribeEventCommandHandler(f)
}

func (c *CompositionRoot) CreateProcessDeliveryQueueCommandHandler() commands.ProcessDeliveryQueueCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessDeliveryQueueCommandHandler(f, c.webhookSender, c.retryPolicy)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentsQueryHandler() queries.GetShipmentsQueryHandler {
	return queries.NewGetShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSubscriptionsQueryHandler() queries.GetSubscriptionsQueryHandler {
	return queries.NewGetSubscriptionsQueryHandler(c.gormDB)
}

// CreateJobManager assembles the background job manager.
func (c *CompositionRoot) CreateJobManager(
	batchSize int, workers int, logger *slog.Logger,
) (*jobs.JobManager, error) {
	return jobs.NewJobManager(c.CreateProcessDeliveryQueueCommandHandler(), batchSize, workers, logger)
}

// CreateHTTPServer assembles the REST server with every handler wired in.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateShipmentCommandHandler(),
		c.CreateScheduleShipmentCommandHandler(),
		c.CreateUpdateShipmentStateCommandHandler(),
		c.CreateAssignDriverCommandHandler(),
		c.CreateSubscribeEventCommandHandler(),
		c.CreateUnsubscribeEventCommandHandler(),
		c.CreateGetShipmentQueryHandler(),
		c.CreateGetShipmentsQueryHandler(),
		c.CreateGetSubscriptionsQueryHandler(),
	)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncSubscriptionUoWFactory func() commands.SubscriptionUoW

func (f FuncSubscriptionUoWFactory) Create() commands.SubscriptionUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
