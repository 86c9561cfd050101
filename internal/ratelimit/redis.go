package ratelimit

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/folio/internal/db"
	"github.com/kailas-cloud/folio/internal/metrics"
)

// Redis is a sliding-window limiter shared across instances through a
// db.EventWindow (sorted set per key).
type Redis struct {
	opts  Options
	store db.EventWindow
}

var _ Limiter = (*Redis)(nil)

// NewRedis creates a shared limiter.
func NewRedis(store db.EventWindow, opts Options) *Redis {
	return &Redis{opts: opts.withDefaults(), store: store}
}

// Allow records a hit and rolls it back when it overflows the window, so
// rejected attempts never extend a caller's lockout.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	k := "ratelimit:" + r.opts.Scope + ":" + key
	member, count, err := r.store.WindowAdd(ctx, k, r.opts.Now(), r.opts.Window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit: %w", err)
	}
	if count <= int64(r.opts.MaxRequests) {
		return Decision{Allowed: true, Remaining: r.opts.MaxRequests - int(count)}, nil
	}

	if err := r.store.WindowRemove(ctx, k, member); err != nil {
		return Decision{}, fmt.Errorf("rate limit rollback: %w", err)
	}
	metrics.RateLimitedTotal.WithLabelValues(r.opts.Scope).Inc()
	return Decision{RetryAfter: r.opts.Window}, nil
}
