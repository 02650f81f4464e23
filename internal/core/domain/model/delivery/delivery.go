package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/subscription"
	"shipping/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New(
		"Delivery must be created via NewDelivery or RestoreDelivery")

	// ErrDeliveryIsFinished is returned when an attempt is recorded against a
	// task already in a terminal status.
	ErrDeliveryIsFinished = errors.New("delivery task is already in a terminal status")
)

// Delivery is a queued webhook delivery task.
//
// A task is enqueued in the same transaction as the state change that
// produced it, carrying a frozen copy of the subscription's endpoint,
// headers, and retry budget plus the event payload. Later edits to the
// subscription never affect tasks already queued.
//
// Attempt accounting: a task with retry budget N is attempted at most N+1
// times. Each failed attempt either schedules the next one or, once the
// budget is spent, moves the task to StatusDead.
type Delivery struct {
	id        kernel.UUID
	eventKind subscription.EventKind
	url       string
	headers   map[string]string
	payload   json.RawMessage

	maxRetry      int
	attempts      int
	status        Status
	nextAttemptAt time.Time
	lastError     string

	isConstructed bool
}

// NewDelivery creates a pending Delivery task due immediately.
// The endpoint, headers, and retry budget are copied from the subscription
// that matched the event.
func NewDelivery(
	id kernel.UUID,
	sub *subscription.Subscription,
	payload json.RawMessage,
	now time.Time,
) (*Delivery, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	task := &Delivery{
		eventKind:     sub.EventKind(),
		url:           sub.URL(),
		headers:       sub.Headers(),
		maxRetry:      sub.MaxRetry(),
		status:        StatusPending,
		nextAttemptAt: now,
		isConstructed: true,
	}

	if err := errors.Join(
		task.setID(id),
		task.setPayload(payload),
	); err != nil {
		return nil, err
	}

	return task, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
// Used by repository adapters only.
func RestoreDelivery(
	id kernel.UUID,
	eventKind subscription.EventKind,
	url string,
	headers map[string]string,
	payload json.RawMessage,
	maxRetry int,
	attempts int,
	status Status,
	nextAttemptAt time.Time,
	lastError string,
) (*Delivery, error) {
	task := &Delivery{
		url:           url,
		headers:       headers,
		maxRetry:      maxRetry,
		attempts:      attempts,
		nextAttemptAt: nextAttemptAt,
		lastError:     lastError,
		isConstructed: true,
	}

	if err := errors.Join(
		task.setID(id),
		task.setEventKind(eventKind),
		task.setPayload(payload),
		task.setStatus(status),
	); err != nil {
		return nil, err
	}

	if maxRetry < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("max_retry",
			fmt.Errorf("%d is negative", maxRetry))
	}

	return task, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}

	return nil
}

// RecordSuccess marks the current attempt as acknowledged by the endpoint.
func (d *Delivery) RecordSuccess() error {
	if d.status.IsTerminal() {
		return ErrDeliveryIsFinished
	}

	d.attempts++
	d.status = StatusDelivered
	d.lastError = ""
	return nil
}

// RecordFailure marks the current attempt as failed.
//
// While the retry budget lasts the task stays pending and becomes due at
// nextAttemptAt; once attempts exceed the budget the task moves to
// StatusDead and is never attempted again.
func (d *Delivery) RecordFailure(reason string, nextAttemptAt time.Time) error {
	if d.status.IsTerminal() {
		return ErrDeliveryIsFinished
	}

	d.attempts++
	d.lastError = reason

	if d.attempts > d.maxRetry {
		d.status = StatusDead
		return nil
	}

	d.nextAttemptAt = nextAttemptAt
	return nil
}

// IsDue reports whether the task should be attempted at the given time.
func (d *Delivery) IsDue(now time.Time) bool {
	return d.status == StatusPending && !d.nextAttemptAt.After(now)
}

// IsEqual compares two delivery tasks by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the task's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// EventKind returns the event kind this task notifies about.
func (d *Delivery) EventKind() subscription.EventKind {
	return d.eventKind
}

// URL returns the destination endpoint frozen at enqueue time.
func (d *Delivery) URL() string {
	return d.url
}

// Headers returns a copy of the custom headers frozen at enqueue time.
func (d *Delivery) Headers() map[string]string {
	headers := make(map[string]string, len(d.headers))
	for name, value := range d.headers {
		headers[name] = value
	}
	return headers
}

// Payload returns the serialized event payload.
func (d *Delivery) Payload() json.RawMessage {
	return d.payload
}

// MaxRetry returns the retry budget frozen at enqueue time.
func (d *Delivery) MaxRetry() int {
	return d.maxRetry
}

// Attempts returns the number of attempts performed so far.
func (d *Delivery) Attempts() int {
	return d.attempts
}

// Status returns the task's current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// NextAttemptAt returns the time the task next becomes due.
func (d *Delivery) NextAttemptAt() time.Time {
	return d.nextAttemptAt
}

// LastError returns the failure reason of the most recent failed attempt.
func (d *Delivery) LastError() string {
	return d.lastError
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setEventKind(eventKind subscription.EventKind) error {
	if err := eventKind.Validate(); err != nil {
		return err
	}
	d.eventKind = eventKind
	return nil
}

func (d *Delivery) setPayload(payload json.RawMessage) error {
	if len(payload) == 0 {
		return errs.NewValueIsRequiredError("payload")
	}
	if !json.Valid(payload) {
		return errs.NewValueIsInvalidError("payload")
	}
	d.payload = payload
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
