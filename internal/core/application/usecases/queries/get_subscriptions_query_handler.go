package queries

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipping/internal/core/domain/model/kernel"
)

// GetSubscriptionsQueryHandler lists the webhook subscriptions of one owner.
type GetSubscriptionsQueryHandler struct {
	db *gorm.DB
}

// NewGetSubscriptionsQueryHandler creates a handler for subscription
// listings. Requires a GORM database connection for query execution.
func NewGetSubscriptionsQueryHandler(db *gorm.DB) GetSubscriptionsQueryHandler {
	return GetSubscriptionsQueryHandler{db: db}
}

// Handle executes the listing query.
// Headers are stored as JSON text and decoded per row.
func (h GetSubscriptionsQueryHandler) Handle(
	ctx context.Context,
	query GetSubscriptionsQuery,
) ([]SubscriptionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			event_kind,
			url,
			headers,
			max_retry
		FROM subscriptions
		WHERE owner_id = ?
		ORDER BY event_kind
	`, query.OwnerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscriptions := make([]SubscriptionQueryResponse, 0)
	for rows.Next() {
		var (
			resp       SubscriptionQueryResponse
			id         uuid.UUID
			rawHeaders string
		)

		err = rows.Scan(
			&id,
			&resp.EventKind,
			&resp.URL,
			&rawHeaders,
			&resp.MaxRetry,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		resp.Headers = make(map[string]string)
		if rawHeaders != "" {
			if err = json.Unmarshal([]byte(rawHeaders), &resp.Headers); err != nil {
				return nil, err
			}
		}

		subscriptions = append(subscriptions, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return subscriptions, nil
}
