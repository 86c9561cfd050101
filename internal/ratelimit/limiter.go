// Package ratelimit implements sliding-window request limiting keyed by
// caller (usually the client IP). Memory keeps the window in-process; Redis
// shares it between instances.
package ratelimit

import (
	"context"
	"time"
)

// Defaults applied when a limiter is built with zero values.
const (
	DefaultMaxRequests = 5
	DefaultWindow      = 15 * time.Minute
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits at most a fixed number of hits per key inside a trailing window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Options configures a limiter.
type Options struct {
	MaxRequests int
	Window      time.Duration
	// Scope labels rejections in metrics, e.g. "subscribe" or "contact".
	Scope string
	// Now overrides the clock (tests).
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxRequests <= 0 {
		o.MaxRequests = DefaultMaxRequests
	}
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.Scope == "" {
		o.Scope = "default"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
