// Package ratelimit spaces out requests to the venue sites LocalPulse
// scrapes. Small local venues run on small servers; one request per
// interval per host is plenty.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// HostLimiter enforces a minimum interval between requests to the same
// host, with exponential backoff after repeated failures.
type HostLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	hosts       map[string]*hostState
}

type hostState struct {
	lastRequest  time.Time
	requestCount int64
	errorCount   int64
	backoffUntil time.Time
}

// NewHostLimiter creates a limiter with the given per-host interval.
func NewHostLimiter(minInterval time.Duration) *HostLimiter {
	return &HostLimiter{
		minInterval: minInterval,
		hosts:       make(map[string]*hostState),
	}
}

// Wait blocks until it is polite to hit the host again.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	for {
		l.mu.Lock()
		state, ok := l.hosts[host]
		if !ok {
			state = &hostState{}
			l.hosts[host] = state
		}

		now := time.Now()
		next := state.lastRequest.Add(l.minInterval)
		if state.backoffUntil.After(next) {
			next = state.backoffUntil
		}
		if !now.Before(next) {
			state.lastRequest = now
			state.requestCount++
			l.mu.Unlock()
			return nil
		}
		wait := next.Sub(now)
		l.mu.Unlock()

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RecordError counts a failed request. More than three consecutive
// failures puts the host into backoff, up to five minutes.
func (l *HostLimiter) RecordError(host string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.hosts[host]
	if !ok {
		state = &hostState{}
		l.hosts[host] = state
	}
	state.errorCount++
	if state.errorCount > 3 {
		backoff := time.Duration(state.errorCount) * 30 * time.Second
		if backoff > 5*time.Minute {
			backoff = 5 * time.Minute
		}
		state.backoffUntil = time.Now().Add(backoff)
	}
}

// RecordSuccess clears the host's consecutive error count.
func (l *HostLimiter) RecordSuccess(host string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if state, ok := l.hosts[host]; ok {
		state.errorCount = 0
	}
}

// HostStats is a snapshot of one host's request history.
type HostStats struct {
	RequestCount int64
	ErrorCount   int64
	LastRequest  time.Time
	InBackoff    bool
}

// Stats returns a snapshot per host.
func (l *HostLimiter) Stats() map[string]HostStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := make(map[string]HostStats, len(l.hosts))
	now := time.Now()
	for host, state := range l.hosts {
		stats[host] = HostStats{
			RequestCount: state.requestCount,
			ErrorCount:   state.errorCount,
			LastRequest:  state.lastRequest,
			InBackoff:    now.Before(state.backoffUntil),
		}
	}
	return stats
}
