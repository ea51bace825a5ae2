package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepEvery bounds how often Allow scans for idle keys.
const sweepEvery = time.Minute

type window struct {
	hits   []time.Time
	length time.Duration
}

// MemoryLimiter is a process-local limiter for single-instance runs and tests.
// Keys with no hits left in their window are dropped so one-off callers do
// not accumulate.
type MemoryLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{windows: map[string]*window{}, now: time.Now}
}

// WithClock swaps the time source.
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
	return l
}

func (l *MemoryLimiter) Allow(ctx context.Context, rule Rule, key string) (Decision, error) {
	k := Key(rule, key)
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w := l.windows[k]
	if w == nil {
		w = &window{length: rule.Window}
		l.windows[k] = w
	}
	w.length = rule.Window
	w.hits = pruned(w.hits, now.Add(-rule.Window))

	if len(w.hits) >= rule.Limit {
		retry := w.hits[0].Add(rule.Window).Sub(now)
		if retry <= 0 {
			retry = time.Second
		}
		return Decision{Allowed: false, RetryAfter: retry}, nil
	}
	w.hits = append(w.hits, now)
	return Decision{Allowed: true, Remaining: rule.Limit - len(w.hits)}, nil
}

func pruned(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, at := range hits {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	return kept
}

// sweep drops keys whose hits have all left the window. Caller holds mu.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepEvery {
		return
	}
	l.lastSweep = now
	for k, w := range l.windows {
		if w.hits = pruned(w.hits, now.Add(-w.length)); len(w.hits) == 0 {
			delete(l.windows, k)
		}
	}
}

// Len reports how many keys are tracked.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

func (l *MemoryLimiter) Reset() {
	l.mu.Lock()
	l.windows = map[string]*window{}
	l.mu.Unlock()
}
