// Package ratelimit implements a sliding-window request counter keyed by
// (endpoint scope, caller). Timestamps outside the window are pruned lazily
// on each check; there is no background sweep.
package ratelimit

import (
	"sync"
	"time"
)

// Policy is the per-endpoint window configuration.
type Policy struct {
	Window time.Duration
	Max    int
}

// Limiter tracks request timestamps per scope key. Keys are never removed,
// only pruned; the map lives for the process lifetime.
type Limiter struct {
	mu      sync.Mutex
	records map[string][]time.Time
}

func New() *Limiter {
	return &Limiter{records: make(map[string][]time.Time)}
}

// Allow records the attempt and reports whether it fits inside the window.
// The attempt's timestamp is retained even when rejected, so hammering a
// limited endpoint keeps the caller locked out.
func (l *Limiter) Allow(scope, caller string, p Policy, now time.Time) bool {
	key := scope + ":" + caller

	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-p.Window)
	fresh := l.records[key][:0]
	for _, ts := range l.records[key] {
		if ts.After(cutoff) {
			fresh = append(fresh, ts)
		}
	}
	fresh = append(fresh, now)
	l.records[key] = fresh

	return len(fresh) <= p.Max
}

// AllowNow is Allow at the current time.
func (l *Limiter) AllowNow(scope, caller string, p Policy) bool {
	return l.Allow(scope, caller, p, time.Now())
}
