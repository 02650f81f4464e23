package delivery

import (
	"strings"

	"shipping/internal/pkg/errs"
)

// Status is the lifecycle status of a webhook delivery task.
type Status string

const (
	// StatusPending marks a task still awaiting a successful attempt.
	StatusPending Status = "PENDING"
	// StatusDelivered marks a task acknowledged by the subscriber endpoint.
	StatusDelivered Status = "DELIVERED"
	// StatusDead marks a task that exhausted its retry budget.
	StatusDead Status = "DEAD"
)

func statuses() []Status {
	return []Status{StatusPending, StatusDelivered, StatusDead}
}

// ParseStatus converts a raw string into a known Status.
// Matching is case-insensitive.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(raw))
	if err := status.Validate(); err != nil {
		return "", err
	}

	return status, nil
}

// Validate checks that the Status is one of the known statuses.
func (s Status) Validate() error {
	for _, known := range statuses() {
		if s == known {
			return nil
		}
	}

	return errs.NewValueIsInvalidError("status")
}

// String returns the storage representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the task will never be attempted again.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusDead
}
