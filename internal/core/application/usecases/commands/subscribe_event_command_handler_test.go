package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/subscription"
	"shipping/internal/pkg/errs"
)

func TestSubscribeEventCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()

	cmd, err := commands.NewSubscribeEventCommand(ownerID,
		subscription.ShipmentStateChanged, "https://hooks.example.com/shipping",
		map[string]string{"Authorization": "Bearer abc"}, 3)
	require.NoError(t, err)

	repo := new(MockSubscriptionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SubscriptionRepository").Return(repo).Once(),
		repo.On("Upsert", mock.Anything, mock.AnythingOfType("*subscription.Subscription")).
			Run(func(args mock.Arguments) {
				aggregate := args.Get(1).(*subscription.Subscription)
				assert.Equal(t, ownerID, aggregate.OwnerID())
				assert.Equal(t, "https://hooks.example.com/shipping", aggregate.URL())
				assert.Equal(t, 3, aggregate.MaxRetry())
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubscriptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubscribeEventCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubscribeEventCommandHandler_Handle_InvalidURL(t *testing.T) {
	ctx := t.Context()

	// the URL passes the command's presence check but fails aggregate validation
	cmd, err := commands.NewSubscribeEventCommand(kernel.NewUUID(),
		subscription.ShipmentStateChanged, "not-a-url", nil, 1)
	require.NoError(t, err)

	factory := new(MockSubscriptionUoWFactory)
	h := commands.NewSubscribeEventCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestNewSubscribeEventCommand_Validation(t *testing.T) {
	_, err := commands.NewSubscribeEventCommand(kernel.UUID{},
		subscription.ShipmentStateChanged, "https://example.com/hook", nil, 1)
	require.Error(t, err)

	_, err = commands.NewSubscribeEventCommand(kernel.NewUUID(),
		subscription.EventKind("NOPE"), "https://example.com/hook", nil, 1)
	require.Error(t, err)

	_, err = commands.NewSubscribeEventCommand(kernel.NewUUID(),
		subscription.ShipmentStateChanged, "", nil, 1)
	require.Error(t, err)

	_, err = commands.NewSubscribeEventCommand(kernel.NewUUID(),
		subscription.ShipmentStateChanged, "https://example.com/hook", nil, -1)
	require.Error(t, err)
}

func TestUnsubscribeEventCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()

	cmd, err := commands.NewUnsubscribeEventCommand(ownerID, subscription.ShipmentStateChanged)
	require.NoError(t, err)

	repo := new(MockSubscriptionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SubscriptionRepository").Return(repo).Once(),
		repo.On("Delete", mock.Anything, ownerID, subscription.ShipmentStateChanged).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubscriptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUnsubscribeEventCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
}

func TestUnsubscribeEventCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()

	cmd, err := commands.NewUnsubscribeEventCommand(ownerID, subscription.ShipmentStateChanged)
	require.NoError(t, err)

	repo := new(MockSubscriptionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SubscriptionRepository").Return(repo).Once(),
		repo.On("Delete", mock.Anything, ownerID, subscription.ShipmentStateChanged).
			Return(errs.NewObjectNotFoundError("subscription", ownerID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubscriptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUnsubscribeEventCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
