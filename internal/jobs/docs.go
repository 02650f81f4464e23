// Package jobs provides scheduled background tasks for the shipping system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for webhook delivery.
//
// # Available Jobs
//
// 1. DeliveryDispatchJob - Runs every second to claim due delivery tasks and
// push them to subscriber endpoints
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(processQueueHandler, batchSize, workers, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatch job uses the cron expression "* * * * * *" which means it runs
// every second. This frequency keeps webhook latency low while the retry
// schedule spaces out failing endpoints.
//
// # Error Handling
//
// An empty queue is not an error; the dispatch job logs only real failures
// (database errors, claim failures). Per-task delivery failures are handled
// inside the queue processor and never abort a pass.
package jobs
