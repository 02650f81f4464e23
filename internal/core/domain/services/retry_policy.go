package services

import (
	"math/rand/v2"
	"time"
)

// defaultSchedule spaces retries roughly geometrically so transient endpoint
// hiccups resolve within seconds while persistent outages back off to a
// ten-minute cadence.
func defaultSchedule() []time.Duration {
	return []time.Duration{
		1 * time.Second,
		4 * time.Second,
		16 * time.Second,
		1 * time.Minute,
		4 * time.Minute,
		10 * time.Minute,
	}
}

const defaultJitterPct = 0.25

// RetryPolicy is a domain service that decides when a failed webhook delivery
// attempt should run next.
//
// The delay is taken from a fixed schedule indexed by the number of attempts
// already performed; attempts beyond the schedule reuse its last entry. A
// random jitter spreads retries of tasks that failed together, so a recovered
// endpoint is not hammered by a synchronized burst.
type RetryPolicy struct {
	schedule  []time.Duration
	jitterPct float64
}

// NewRetryPolicy creates a RetryPolicy with the default schedule and jitter.
func NewRetryPolicy() RetryPolicy {
	return RetryPolicy{
		schedule:  defaultSchedule(),
		jitterPct: defaultJitterPct,
	}
}

// NewRetryPolicyWithSchedule creates a RetryPolicy with a custom schedule.
// A non-positive jitterPct disables jitter. An empty schedule falls back to
// the default one.
func NewRetryPolicyWithSchedule(schedule []time.Duration, jitterPct float64) RetryPolicy {
	if len(schedule) == 0 {
		schedule = defaultSchedule()
	}
	if jitterPct < 0 {
		jitterPct = 0
	}

	return RetryPolicy{
		schedule:  schedule,
		jitterPct: jitterPct,
	}
}

// NextAttemptAt returns the time the next attempt should run, given the
// number of attempts already performed (at least 1, the one that just
// failed).
func (p RetryPolicy) NextAttemptAt(now time.Time, attempts int) time.Time {
	return now.Add(p.Delay(attempts))
}

// Delay returns the backoff duration after the given number of performed
// attempts, with jitter applied.
func (p RetryPolicy) Delay(attempts int) time.Duration {
	idx := attempts - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.schedule) {
		idx = len(p.schedule) - 1
	}

	base := p.schedule[idx]
	if p.jitterPct == 0 {
		return base
	}

	// uniform in [base*(1-jitterPct), base*(1+jitterPct)]
	spread := 1 - p.jitterPct + 2*p.jitterPct*rand.Float64()
	return time.Duration(float64(base) * spread)
}
