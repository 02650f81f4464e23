package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/delivery"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/subscription"
	"shipping/internal/core/ports"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*shipment.Shipment, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

type MockSubscriptionRepository struct{ mock.Mock }

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, aggregate *subscription.Subscription) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, ownerID kernel.UUID, eventKind subscription.EventKind) error {
	args := m.Called(ctx, ownerID, eventKind)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByOwnerAndKind(ctx context.Context, ownerID kernel.UUID, eventKind subscription.EventKind) (*subscription.Subscription, error) {
	args := m.Called(ctx, ownerID, eventKind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

// MockUoW satisfies every unit of work interface the command handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) SubscriptionRepository() ports.SubscriptionRepository {
	args := m.Called()
	return args.Get(0).(ports.SubscriptionRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockSubscriptionUoWFactory struct{ mock.Mock }

func (m *MockSubscriptionUoWFactory) Create() commands.SubscriptionUoW {
	args := m.Called()
	return args.Get(0).(commands.SubscriptionUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockDeliveryEstimator struct{ mock.Mock }

func (m *MockDeliveryEstimator) EstimateDays(ctx context.Context, destination kernel.GeoPoint) (float64, error) {
	args := m.Called(ctx, destination)
	return args.Get(0).(float64), args.Error(1)
}

type MockWebhookSender struct{ mock.Mock }

func (m *MockWebhookSender) Send(ctx context.Context, task *delivery.Delivery) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}
