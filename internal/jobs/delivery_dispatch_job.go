package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveryDispatchJob manages the scheduled dispatch of pending webhook
// deliveries. Runs every second to claim due tasks and send them out.
type DeliveryDispatchJob struct {
	handler commands.ProcessDeliveryQueueCommandHandler
	command commands.ProcessDeliveryQueueCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryDispatchJob creates a new job for dispatching webhook deliveries.
// batchSize bounds how many tasks one pass may claim; workers bounds how many
// endpoints are contacted concurrently.
func NewDeliveryDispatchJob(
	handler commands.ProcessDeliveryQueueCommandHandler,
	batchSize int,
	workers int,
	logger *slog.Logger,
) (*DeliveryDispatchJob, error) {
	command, err := commands.NewProcessDeliveryQueueCommand(batchSize, workers)
	if err != nil {
		return nil, err
	}

	return &DeliveryDispatchJob{
		handler: handler,
		command: command,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delivery_dispatch_job"),
	}, nil
}

// Start begins the delivery dispatch job to run every second.
func (j *DeliveryDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		if err := j.handler.Handle(ctx, j.command); err != nil {
			j.logger.ErrorContext(ctx, "Delivery dispatch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery dispatch job started (running every second)")
	return nil
}

// Stop stops the delivery dispatch job.
func (j *DeliveryDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery dispatch job stopped")
}
