package ports

import (
	"context"

	"shipping/internal/core/domain/model/delivery"
)

// WebhookSender performs a single webhook delivery attempt over the wire.
// A nil error means the endpoint acknowledged the notification with a
// success status; any other outcome (connection failure, timeout, non-2xx
// response) is an error describing the failure reason.
type WebhookSender interface {
	Send(ctx context.Context, task *delivery.Delivery) error
}
