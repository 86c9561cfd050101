package ratelimit

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kailas-cloud/folio/internal/metrics"
)

// Memory is an in-process sliding-window limiter. Each key holds the hit
// timestamps inside the window; idle keys expire from the cache after one
// window.
type Memory struct {
	opts  Options
	mu    sync.Mutex
	table *gocache.Cache
}

var _ Limiter = (*Memory)(nil)

// NewMemory creates an in-process limiter.
func NewMemory(opts Options) *Memory {
	opts = opts.withDefaults()
	return &Memory{
		opts:  opts,
		table: gocache.New(opts.Window, 2*opts.Window),
	}
}

// Allow records a hit for key unless the window is full.
func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.opts.Now()
	cutoff := now.Add(-m.opts.Window)

	m.mu.Lock()
	defer m.mu.Unlock()

	var hits []time.Time
	if v, ok := m.table.Get(key); ok {
		hits = v.([]time.Time)
	}
	live := hits[:0:0]
	for _, h := range hits {
		if h.After(cutoff) {
			live = append(live, h)
		}
	}

	if len(live) >= m.opts.MaxRequests {
		m.table.Set(key, live, m.opts.Window)
		metrics.RateLimitedTotal.WithLabelValues(m.opts.Scope).Inc()
		return Decision{RetryAfter: live[0].Add(m.opts.Window).Sub(now)}, nil
	}

	live = append(live, now)
	m.table.Set(key, live, m.opts.Window)
	return Decision{Allowed: true, Remaining: m.opts.MaxRequests - len(live)}, nil
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	return m.table.ItemCount()
}
