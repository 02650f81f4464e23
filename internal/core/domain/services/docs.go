// Package services provides domain services that implement business logic
// spanning multiple aggregates of the shipping system.
//
// The package includes:
//   - RetryPolicy: backoff scheduling for failed webhook delivery attempts
package services
