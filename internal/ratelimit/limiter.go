// Package ratelimit implements the per-user sliding-window interaction gate.
package ratelimit

import "time"

const (
	// DefaultWindow is the rolling window interactions are counted over.
	DefaultWindow = 24 * time.Hour
	// DefaultMax is the number of interactions allowed per user per window.
	DefaultMax = 5
)

// Limiter holds the window configuration. It is stateless; the timestamps
// live in the persisted document and the caller supplies the current time.
type Limiter struct {
	Window time.Duration
	Max    int
}

// NewLimiter returns a limiter with the given window and per-window maximum,
// falling back to the defaults for zero values.
func NewLimiter(window time.Duration, max int) Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMax
	}
	return Limiter{Window: window, Max: max}
}

// Decision is the outcome of a rate-limit check. Pruned holds the entries
// still inside the window; the caller persists it (plus the consumed
// timestamp on success) so the table does not grow without bound.
type Decision struct {
	Allowed   bool
	Remaining int
	Pruned    []time.Time
}

// Check prunes entries outside the closed interval [now-Window, now] and
// decides whether another interaction fits. An entry counts until it ages
// strictly past the window. An unknown user has zero prior interactions and
// is fully allowed.
func (l Limiter) Check(entries []time.Time, now time.Time) Decision {
	cutoff := now.Add(-l.Window)

	pruned := make([]time.Time, 0, len(entries))
	for _, ts := range entries {
		if !ts.Before(cutoff) && !ts.After(now) {
			pruned = append(pruned, ts)
		}
	}

	remaining := l.Max - len(pruned)
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   remaining > 0,
		Remaining: remaining,
		Pruned:    pruned,
	}
}

// Consume appends the consumed timestamp to the pruned entries. Only valid
// after an allowed Check within the same interaction's processing.
func (l Limiter) Consume(d Decision, now time.Time) []time.Time {
	return append(d.Pruned, now)
}
