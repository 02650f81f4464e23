package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shipping/internal/core/domain/model/delivery"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// ProcessDeliveryQueueCommandHandler performs one dispatch pass over the
// webhook delivery queue.
//
// A pass claims a batch of due tasks inside a transaction, locking the rows
// so concurrent dispatchers never pick up the same task. Claimed tasks are
// attempted concurrently by a bounded worker pool; each task gets exactly one
// attempt per pass. Results are written back and committed together, which
// releases the row locks.
//
// Failed attempts reschedule the task through the retry policy. A task whose
// retry budget is spent is marked dead and logged with the full delivery
// context so an operator can replay it by hand.
type ProcessDeliveryQueueCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	sender      ports.WebhookSender
	retryPolicy services.RetryPolicy
	now         func() time.Time
}

// NewProcessDeliveryQueueCommandHandler creates a handler for queue dispatch
// passes.
func NewProcessDeliveryQueueCommandHandler(
	uowFactory DeliveryUoWFactory,
	sender ports.WebhookSender,
	retryPolicy services.RetryPolicy,
) ProcessDeliveryQueueCommandHandler {
	return NewProcessDeliveryQueueCommandHandlerWithClock(uowFactory, sender, retryPolicy,
		func() time.Time {
			return time.Now().UTC()
		})
}

// NewProcessDeliveryQueueCommandHandlerWithClock creates a handler with an
// explicit clock. Used in tests to pin retry scheduling.
func NewProcessDeliveryQueueCommandHandlerWithClock(
	uowFactory DeliveryUoWFactory,
	sender ports.WebhookSender,
	retryPolicy services.RetryPolicy,
	now func() time.Time,
) ProcessDeliveryQueueCommandHandler {
	return ProcessDeliveryQueueCommandHandler{
		uowFactory:  uowFactory,
		sender:      sender,
		retryPolicy: retryPolicy,
		now:         now,
	}
}

// Handle processes one dispatch pass.
// Returns nil when no tasks are due.
func (h ProcessDeliveryQueueCommandHandler) Handle(ctx context.Context, cmd ProcessDeliveryQueueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	tasks, err := deliveryRepo.ClaimDue(ctx, h.now(), cmd.BatchSize())
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}

	h.attemptAll(ctx, tasks, cmd.Workers())

	// transaction is single-threaded, write results back after the pool drains
	for _, task := range tasks {
		if err = deliveryRepo.Update(ctx, task); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h ProcessDeliveryQueueCommandHandler) attemptAll(ctx context.Context, tasks []*delivery.Delivery, workers int) {
	queue := make(chan *delivery.Delivery)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				h.attempt(ctx, task)
			}
		}()
	}

	for _, task := range tasks {
		queue <- task
	}
	close(queue)
	wg.Wait()
}

func (h ProcessDeliveryQueueCommandHandler) attempt(ctx context.Context, task *delivery.Delivery) {
	sendErr := h.sender.Send(ctx, task)
	if sendErr == nil {
		if err := task.RecordSuccess(); err != nil {
			slog.Error("record webhook delivery success",
				slog.String("delivery_id", task.ID().String()),
				slog.Any("error", err))
		}
		return
	}

	nextAttemptAt := h.retryPolicy.NextAttemptAt(h.now(), task.Attempts()+1)
	if err := task.RecordFailure(sendErr.Error(), nextAttemptAt); err != nil {
		slog.Error("record webhook delivery failure",
			slog.String("delivery_id", task.ID().String()),
			slog.Any("error", err))
		return
	}

	if task.Status() == delivery.StatusDead {
		slog.Error("webhook delivery dead-lettered",
			slog.String("delivery_id", task.ID().String()),
			slog.String("event", task.EventKind().String()),
			slog.String("url", task.URL()),
			slog.Any("headers", task.Headers()),
			slog.String("payload", string(task.Payload())),
			slog.Int("attempts", task.Attempts()),
			slog.String("last_error", task.LastError()))
	}
}
