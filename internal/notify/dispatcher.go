// Package notify runs fire-and-forget side effects (emails after a write)
// outside the request lifecycle and renders the transactional emails.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/logger"
)

// DefaultTaskTimeout bounds a single detached task.
const DefaultTaskTimeout = 10 * time.Minute

// Dispatcher runs detached tasks. Tasks survive request cancellation; their
// errors are logged and never reach the caller.
type Dispatcher struct {
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Tasks without a request logger log to l.
func NewDispatcher(l *zap.Logger) *Dispatcher {
	if l == nil {
		l = zap.NewNop()
	}
	return &Dispatcher{log: l, timeout: DefaultTaskTimeout}
}

// WithTimeout sets the per-task timeout; 0 disables it.
func (d *Dispatcher) WithTimeout(t time.Duration) *Dispatcher {
	d.timeout = t
	return d
}

// Go starts fn on its own goroutine with a context detached from ctx's
// cancellation but keeping its values (request logger, trace span).
func (d *Dispatcher) Go(ctx context.Context, task string, fn func(ctx context.Context) error) {
	ctx = logger.With(context.WithoutCancel(ctx), d.log,
		zap.String("task", task), zap.String("task_id", uuid.NewString()))
	log := logger.FromContext(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		taskCtx, cancel := ctx, context.CancelFunc(func() {})
		if d.timeout > 0 {
			taskCtx, cancel = context.WithTimeout(ctx, d.timeout)
		}
		defer cancel()

		start := time.Now()
		err := run(taskCtx, fn)
		if err != nil {
			log.Error("detached task failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
			return
		}
		log.Debug("detached task done", zap.Duration("elapsed", time.Since(start)))
	}()
}

// Wait blocks until every started task returns or ctx ends.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for detached tasks: %w", ctx.Err())
	}
}

func run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn(ctx)
}
