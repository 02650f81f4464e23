// Package subscriptionrepo provides data transfer objects and mapping
// functions for webhook subscription persistence.
package subscriptionrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/subscription"
)

// SubscriptionDTO represents the database structure for persisting webhook
// subscriptions. The unique index on (owner_id, event_kind) enforces one
// subscription per owner and event kind; headers are stored as JSON text,
// already validated at write time.
type SubscriptionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_subscriptions_owner_kind"`
	EventKind string    `gorm:"type:varchar(64);uniqueIndex:idx_subscriptions_owner_kind"`
	URL       string
	Headers   string `gorm:"type:text"`
	MaxRetry  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for subscription entities.
func (SubscriptionDTO) TableName() string {
	return "subscriptions"
}

func fromDomain(aggregate *subscription.Subscription) (SubscriptionDTO, error) {
	rawHeaders, err := json.Marshal(aggregate.Headers())
	if err != nil {
		return SubscriptionDTO{}, err
	}

	return SubscriptionDTO{
		ID:        aggregate.ID().Bytes(),
		OwnerID:   aggregate.OwnerID().Bytes(),
		EventKind: aggregate.EventKind().String(),
		URL:       aggregate.URL(),
		Headers:   string(rawHeaders),
		MaxRetry:  aggregate.MaxRetry(),
	}, nil
}

func toDomain(dto SubscriptionDTO) (*subscription.Subscription, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	if dto.Headers != "" {
		if err = json.Unmarshal([]byte(dto.Headers), &headers); err != nil {
			return nil, err
		}
	}

	return subscription.RestoreSubscription(
		id,
		ownerID,
		subscription.EventKind(dto.EventKind),
		dto.URL,
		headers,
		dto.MaxRetry,
	)
}
