package db

import (
	"context"
	"time"
)

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EventWindow keeps timestamped events per key inside a trailing window.
type EventWindow interface {
	// WindowAdd drops events older than at-window, records a new event at at
	// and returns its member id and the number of events now in the window.
	WindowAdd(ctx context.Context, key string, at time.Time, window time.Duration) (member string, count int64, err error)
	// WindowRemove forgets a single event.
	WindowRemove(ctx context.Context, key, member string) error
}

// Store is the shared key-value backend.
type Store interface {
	Pinger
	EventWindow
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
