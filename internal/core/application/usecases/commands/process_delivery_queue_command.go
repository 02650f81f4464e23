package commands

import (
	"errors"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrProcessDeliveryQueueCommandIsNotConstructed = errors.New(
	"ProcessDeliveryQueueCommand must be created via NewProcessDeliveryQueueCommand constructor",
)

// ProcessDeliveryQueueCommand represents a request to run one dispatch pass
// over the webhook delivery queue.
type ProcessDeliveryQueueCommand struct { //nolint:recvcheck //using for validation
	batchSize int
	workers   int

	guard guard.ConstructorGuard
}

// NewProcessDeliveryQueueCommand creates a command for one dispatch pass.
// batchSize caps how many due tasks are claimed; workers caps how many
// webhook requests run in flight at once.
func NewProcessDeliveryQueueCommand(batchSize int, workers int) (ProcessDeliveryQueueCommand, error) {
	command := ProcessDeliveryQueueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchSize(batchSize),
		command.setWorkers(workers),
	); err != nil {
		return ProcessDeliveryQueueCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessDeliveryQueueCommand) Validate() error {
	return c.guard.Validate(ErrProcessDeliveryQueueCommandIsNotConstructed)
}

// BatchSize returns the maximum number of tasks claimed per pass.
func (c ProcessDeliveryQueueCommand) BatchSize() int {
	return c.batchSize
}

// Workers returns the maximum number of concurrent webhook requests.
func (c ProcessDeliveryQueueCommand) Workers() int {
	return c.workers
}

func (c *ProcessDeliveryQueueCommand) setBatchSize(batchSize int) error {
	if batchSize <= 0 {
		return errs.NewValueIsInvalidError("batch_size")
	}
	c.batchSize = batchSize
	return nil
}

func (c *ProcessDeliveryQueueCommand) setWorkers(workers int) error {
	if workers <= 0 {
		return errs.NewValueIsInvalidError("workers")
	}
	c.workers = workers
	return nil
}
