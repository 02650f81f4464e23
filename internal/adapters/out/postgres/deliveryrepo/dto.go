// Package deliveryrepo provides data transfer objects and mapping functions
// for the webhook delivery queue. The queue lives in the same database as
// the aggregates that feed it, so enqueueing a task shares the transaction
// of the state change that produced it.
package deliveryrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"shipping/internal/core/domain/model/delivery"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/subscription"
)

// DeliveryDTO represents the database structure for persisting webhook
// delivery tasks. The composite index on (status, next_attempt_at) backs the
// dispatcher's due-task scan.
type DeliveryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventKind string    `gorm:"type:varchar(64)"`
	URL       string
	Headers   string `gorm:"type:text"`
	Payload   string `gorm:"type:text"`

	MaxRetry      int
	Attempts      int
	Status        string    `gorm:"type:varchar(16);index:idx_deliveries_due"`
	NextAttemptAt time.Time `gorm:"index:idx_deliveries_due"`
	LastError     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for delivery queue entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(aggregate *delivery.Delivery) (DeliveryDTO, error) {
	rawHeaders, err := json.Marshal(aggregate.Headers())
	if err != nil {
		return DeliveryDTO{}, err
	}

	return DeliveryDTO{
		ID:            aggregate.ID().Bytes(),
		EventKind:     aggregate.EventKind().String(),
		URL:           aggregate.URL(),
		Headers:       string(rawHeaders),
		Payload:       string(aggregate.Payload()),
		MaxRetry:      aggregate.MaxRetry(),
		Attempts:      aggregate.Attempts(),
		Status:        aggregate.Status().String(),
		NextAttemptAt: aggregate.NextAttemptAt(),
		LastError:     aggregate.LastError(),
	}, nil
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	if dto.Headers != "" {
		if err = json.Unmarshal([]byte(dto.Headers), &headers); err != nil {
			return nil, err
		}
	}

	return delivery.RestoreDelivery(
		id,
		subscription.EventKind(dto.EventKind),
		dto.URL,
		headers,
		json.RawMessage(dto.Payload),
		dto.MaxRetry,
		dto.Attempts,
		delivery.Status(dto.Status),
		dto.NextAttemptAt,
		dto.LastError,
	)
}
